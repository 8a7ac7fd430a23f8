package question

// DefaultQuestions returns the built-in starter set for a level, used
// to seed a bank file that doesn't exist yet. Levels without a starter
// set return nil.
func DefaultQuestions(level string) []Question {
	switch level {
	case "easy":
		return []Question{
			{
				Text:    "What is the capital of France?",
				Options: []string{"London", "Berlin", "Paris", "Madrid"},
				Answer:  "Paris",
				Level:   "easy",
			},
			{
				Text:    "What is 2 + 2?",
				Options: []string{"3", "4", "5", "6"},
				Answer:  "4",
				Level:   "easy",
			},
			{
				Text:    "Which planet is closest to the Sun?",
				Options: []string{"Venus", "Earth", "Mercury", "Mars"},
				Answer:  "Mercury",
				Level:   "easy",
			},
			{
				Text:    "What color do you get when you mix red and yellow?",
				Options: []string{"Green", "Orange", "Purple", "Blue"},
				Answer:  "Orange",
				Level:   "easy",
			},
			{
				Text:    "How many days are in a week?",
				Options: []string{"5", "6", "7", "8"},
				Answer:  "7",
				Level:   "easy",
			},
		}
	case "medium":
		return []Question{
			{
				Text:    "Who painted the Mona Lisa?",
				Options: []string{"Vincent van Gogh", "Leonardo da Vinci", "Pablo Picasso", "Michelangelo"},
				Answer:  "Leonardo da Vinci",
				Level:   "medium",
			},
			{
				Text:    "What is the square root of 64?",
				Options: []string{"6", "7", "8", "9"},
				Answer:  "8",
				Level:   "medium",
			},
			{
				Text:    "Which element has the chemical symbol 'O'?",
				Options: []string{"Osmium", "Oxygen", "Gold", "Silver"},
				Answer:  "Oxygen",
				Level:   "medium",
			},
			{
				Text:    "In which year did World War II end?",
				Options: []string{"1944", "1945", "1946", "1947"},
				Answer:  "1945",
				Level:   "medium",
			},
			{
				Text:    "What is the largest mammal in the world?",
				Options: []string{"African Elephant", "Blue Whale", "Giraffe", "Polar Bear"},
				Answer:  "Blue Whale",
				Level:   "medium",
			},
		}
	case "hard":
		return []Question{
			{
				Text:    "What is the time complexity of quicksort in the average case?",
				Options: []string{"O(n)", "O(n log n)", "O(n²)", "O(log n)"},
				Answer:  "O(n log n)",
				Level:   "hard",
			},
			{
				Text:    "Which of these is NOT a fundamental force in physics?",
				Options: []string{"Electromagnetic", "Strong nuclear", "Centrifugal", "Gravitational"},
				Answer:  "Centrifugal",
				Level:   "hard",
			},
			{
				Text:    "What is the molecular formula for glucose?",
				Options: []string{"C₆H₁₂O₆", "C₂H₆O", "H₂SO₄", "NaCl"},
				Answer:  "C₆H₁₂O₆",
				Level:   "hard",
			},
			{
				Text:    "In which programming paradigm is 'recursion' most commonly used?",
				Options: []string{"Object-oriented", "Functional", "Procedural", "Assembly"},
				Answer:  "Functional",
				Level:   "hard",
			},
			{
				Text:    "What is the Heisenberg Uncertainty Principle related to?",
				Options: []string{"Thermodynamics", "Quantum mechanics", "Relativity", "Classical mechanics"},
				Answer:  "Quantum mechanics",
				Level:   "hard",
			},
		}
	}
	return nil
}
