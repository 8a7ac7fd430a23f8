package llm

import "context"

type contextKey string

const purposeKey contextKey = "llm_purpose"

// PurposeQuestionGen labels requests that generate quiz questions. It
// shows up in the llm_request_events log and the usage breakdown.
const PurposeQuestionGen = "question-gen"

// WithPurpose attaches a purpose label to the context for event
// logging, e.g. "question-gen".
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}
