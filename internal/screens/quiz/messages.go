package quiz

import "time"

// nextQuestionMsg requests that the next question be served.
type nextQuestionMsg struct{}

// timerTickMsg is sent every second to refresh the elapsed time.
type timerTickMsg time.Time

// feedbackDoneMsg is sent when the player dismisses answer feedback.
type feedbackDoneMsg struct{}

// sessionEndMsg is sent to trigger the end-of-quiz flow.
type sessionEndMsg struct{}
