package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// eventRepo implements EventRepo over raw SQL. Appends assign each
// event a ULID and the next global sequence number.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO answer_events
		 (id, sequence, session_id, question_id, level, question_text, correct_answer, given_answer, correct, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ulid.Make().String(), seqNum,
		data.SessionID, data.QuestionID, data.Level,
		data.QuestionText, data.CorrectAnswer, data.GivenAnswer,
		boolToInt(data.Correct), now(),
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO session_events
		 (id, sequence, session_id, action, questions_served, correct_answers, score, final_level, duration_secs, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ulid.Make().String(), seqNum,
		data.SessionID, data.Action,
		data.QuestionsServed, data.CorrectAnswers, data.Score,
		data.FinalLevel, data.DurationSecs, now(),
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO llm_request_events
		 (id, sequence, provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message, request_body, response_body, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ulid.Make().String(), seqNum,
		data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs,
		boolToInt(data.Success), data.ErrorMessage,
		data.RequestBody, data.ResponseBody, now(),
	)
	if err != nil {
		return fmt.Errorf("save llm request event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentAnswers(ctx context.Context, limit int) ([]AnswerEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, sequence, session_id, question_id, level, question_text, correct_answer, given_answer, correct, created_at
		 FROM answer_events ORDER BY sequence DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent answers: %w", err)
	}
	defer rows.Close()

	var events []AnswerEvent
	for rows.Next() {
		var (
			ev        AnswerEvent
			correct   int
			createdAt string
		)
		err := rows.Scan(
			&ev.ID, &ev.Sequence, &ev.SessionID, &ev.QuestionID, &ev.Level,
			&ev.QuestionText, &ev.CorrectAnswer, &ev.GivenAnswer, &correct, &createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		ev.Correct = correct != 0
		ev.Timestamp, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse answer timestamp: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (r *eventRepo) LevelBreakdown(ctx context.Context) (map[string]LevelTotals, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT level, COUNT(*), SUM(correct) FROM answer_events GROUP BY level`,
	)
	if err != nil {
		return nil, fmt.Errorf("query level breakdown: %w", err)
	}
	defer rows.Close()

	breakdown := make(map[string]LevelTotals)
	for rows.Next() {
		var (
			level    string
			answered int
			correct  int
		)
		if err := rows.Scan(&level, &answered, &correct); err != nil {
			return nil, fmt.Errorf("scan level breakdown: %w", err)
		}
		breakdown[level] = LevelTotals{Answered: answered, Correct: correct}
	}
	return breakdown, rows.Err()
}

const llmRequestColumns = `id, sequence, provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message, request_body, response_body, created_at`

func (r *eventRepo) RecentLLMRequests(ctx context.Context, limit int) ([]LLMRequestEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+llmRequestColumns+` FROM llm_request_events ORDER BY sequence DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent llm requests: %w", err)
	}
	defer rows.Close()

	var events []LLMRequestEvent
	for rows.Next() {
		ev, err := scanLLMRequest(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *ev)
	}
	return events, rows.Err()
}

func (r *eventRepo) GetLLMRequest(ctx context.Context, id string) (*LLMRequestEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+llmRequestColumns+` FROM llm_request_events WHERE id = ?`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("query llm request: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanLLMRequest(rows)
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMPurposeUsage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT purpose, COUNT(*), SUM(input_tokens), SUM(output_tokens), CAST(AVG(latency_ms) AS INTEGER)
		 FROM llm_request_events GROUP BY purpose ORDER BY COUNT(*) DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query llm usage by purpose: %w", err)
	}
	defer rows.Close()

	var usage []LLMPurposeUsage
	for rows.Next() {
		var u LLMPurposeUsage
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan llm purpose usage: %w", err)
		}
		usage = append(usage, u)
	}
	return usage, rows.Err()
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT model, COUNT(*), SUM(input_tokens), SUM(output_tokens)
		 FROM llm_request_events GROUP BY model ORDER BY COUNT(*) DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query llm usage by model: %w", err)
	}
	defer rows.Close()

	var usage []LLMModelUsage
	for rows.Next() {
		var u LLMModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan llm model usage: %w", err)
		}
		usage = append(usage, u)
	}
	return usage, rows.Err()
}

func scanLLMRequest(rows *sql.Rows) (*LLMRequestEvent, error) {
	var (
		ev        LLMRequestEvent
		success   int
		createdAt string
	)
	err := rows.Scan(
		&ev.ID, &ev.Sequence, &ev.Provider, &ev.Model, &ev.Purpose,
		&ev.InputTokens, &ev.OutputTokens, &ev.LatencyMs,
		&success, &ev.ErrorMessage, &ev.RequestBody, &ev.ResponseBody, &createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan llm request event: %w", err)
	}
	ev.Success = success != 0
	ev.Timestamp, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse llm request timestamp: %w", err)
	}
	return &ev, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
