package session

import (
	"time"

	"github.com/quizling/quizling/internal/difficulty"
	"github.com/quizling/quizling/internal/question"
)

// basePoints is the score for a correct answer at the lowest level.
const basePoints = 10

// pointsPerLevel is the extra score per level above the lowest.
const pointsPerLevel = 5

// ScoreForLevel returns the points a correct answer earns at the given
// level: 10 at the lowest level, 15 at the next, and so on.
func ScoreForLevel(level difficulty.Level) int {
	return basePoints + pointsPerLevel*int(level)
}

// NextQuestion picks a question for the current level, arms the
// question timer, and clears feedback state from the previous answer.
func NextQuestion(state *State) error {
	q, err := state.Source.Pick(state.Controller.LevelName())
	if err != nil {
		return err
	}

	state.CurrentQuestion = &q
	state.QuestionStartTime = time.Now()
	state.LevelChange = nil
	state.LastGivenAnswer = ""
	state.ShowingFeedback = false
	return nil
}

// HandleAnswer grades the player's answer, updates session tallies,
// and feeds the outcome to the difficulty controller. Points are
// awarded for the level the question was asked at, before any level
// change takes effect. Returns the level transition if the answer
// caused one, nil otherwise.
func HandleAnswer(state *State, givenAnswer string) *difficulty.Transition {
	q := state.CurrentQuestion
	if q == nil {
		return nil
	}

	correct := question.CheckAnswer(givenAnswer, *q)
	state.LastAnswerCorrect = correct
	state.LastGivenAnswer = givenAnswer
	state.TotalQuestions++

	askedAt := state.Controller.Level()
	askedAtName := state.Controller.LevelName()

	if correct {
		state.TotalCorrect++
		state.Score += ScoreForLevel(askedAt)
	}

	tally := state.PerLevel[askedAtName]
	tally.Answered++
	if correct {
		tally.Correct++
	}
	state.PerLevel[askedAtName] = tally

	transition := state.Controller.RecordOutcome(correct)
	state.LevelChange = transition
	if transition != nil {
		switch transition.Direction {
		case difficulty.DirectionPromoted:
			state.Promotions++
		case difficulty.DirectionDemoted:
			state.Demotions++
		}
	}

	return transition
}
