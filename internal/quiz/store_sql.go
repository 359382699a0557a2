package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

func unixTime(n int64) time.Time { return time.Unix(n, 0).UTC() }

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) PutQuiz(ctx context.Context, q Quiz) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO quizzes
		(id,course_id,title,description,passing_score,time_limit_minutes,is_active,allow_retake,max_attempts,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		q.ID, q.CourseID, q.Title, q.Description, q.PassingScore, q.TimeLimitMinutes,
		q.IsActive, q.AllowRetake, q.MaxAttempts, q.CreatedAt)
	if err != nil {
		return err
	}
	for _, qq := range q.Questions {
		if err := s.AddQuestion(ctx, qq); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLStore) GetQuiz(ctx context.Context, id string) (Quiz, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,course_id,title,description,passing_score,time_limit_minutes,is_active,allow_retake,max_attempts,created_at
		FROM quizzes WHERE id=$1`, id)
	var q Quiz
	if err := row.Scan(&q.ID, &q.CourseID, &q.Title, &q.Description, &q.PassingScore,
		&q.TimeLimitMinutes, &q.IsActive, &q.AllowRetake, &q.MaxAttempts, &q.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Quiz{}, fmt.Errorf("quiz %s: %w", id, ErrNotFound)
		}
		return Quiz{}, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id,quiz_id,qtype,prompt,options_json,correct_json,points,ord,explanation
		FROM quiz_questions WHERE quiz_id=$1 ORDER BY ord ASC, id ASC`, id)
	if err != nil {
		return Quiz{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var qq Question
		var optJSON, corrJSON string
		if err := rows.Scan(&qq.ID, &qq.QuizID, &qq.Type, &qq.Prompt, &optJSON, &corrJSON,
			&qq.Points, &qq.Order, &qq.Explanation); err != nil {
			return Quiz{}, err
		}
		if err := json.Unmarshal([]byte(optJSON), &qq.Options); err != nil {
			return Quiz{}, err
		}
		if err := json.Unmarshal([]byte(corrJSON), &qq.CorrectAnswers); err != nil {
			return Quiz{}, err
		}
		q.Questions = append(q.Questions, qq)
	}
	return q, rows.Err()
}

func (s *SQLStore) AddQuestion(ctx context.Context, q Question) error {
	optJSON, err := json.Marshal(q.Options)
	if err != nil {
		return err
	}
	corrJSON, err := json.Marshal(q.CorrectAnswers)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO quiz_questions
		(id,quiz_id,qtype,prompt,options_json,correct_json,points,ord,explanation)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		q.ID, q.QuizID, q.Type, q.Prompt, string(optJSON), string(corrJSON), q.Points, q.Order, q.Explanation)
	return err
}

func (s *SQLStore) CreateAttempt(ctx context.Context, a Attempt) error {
	// The partial unique index on (quiz_id,user_id) WHERE status='in_progress'
	// rejects a second open attempt; callers resolve the race by re-reading.
	_, err := s.db.ExecContext(ctx, `INSERT INTO quiz_attempts
		(id,quiz_id,user_id,status,score,percentage,passed,started_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		a.ID, a.QuizID, a.UserID, string(a.Status), a.Score, a.Percentage, a.Passed, a.StartedAt.Unix())
	return err
}

const attemptCols = `id,quiz_id,user_id,status,score,percentage,passed,started_at,completed_at`

func scanAttempt(row interface{ Scan(...any) error }) (Attempt, error) {
	var a Attempt
	var status string
	var started int64
	var completed sql.NullInt64
	if err := row.Scan(&a.ID, &a.QuizID, &a.UserID, &status, &a.Score, &a.Percentage,
		&a.Passed, &started, &completed); err != nil {
		return Attempt{}, err
	}
	a.Status = AttemptStatus(status)
	a.StartedAt = unixTime(started)
	if completed.Valid {
		t := unixTime(completed.Int64)
		a.CompletedAt = &t
	}
	return a, nil
}

func (s *SQLStore) GetAttemptForUser(ctx context.Context, attemptID, userID string) (Attempt, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+attemptCols+` FROM quiz_attempts WHERE id=$1 AND user_id=$2`,
		attemptID, userID)
	a, err := scanAttempt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Attempt{}, fmt.Errorf("attempt %s: %w", attemptID, ErrNotFound)
	}
	return a, err
}

func (s *SQLStore) GetInProgressAttempt(ctx context.Context, quizID, userID string) (Attempt, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+attemptCols+` FROM quiz_attempts
		WHERE quiz_id=$1 AND user_id=$2 AND status=$3`, quizID, userID, string(AttemptInProgress))
	a, err := scanAttempt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Attempt{}, ErrNotFound
	}
	return a, err
}

func (s *SQLStore) CountAttempts(ctx context.Context, quizID, userID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM quiz_attempts WHERE quiz_id=$1 AND user_id=$2`,
		quizID, userID).Scan(&n)
	return n, err
}

func (s *SQLStore) FinalizeAttempt(ctx context.Context, a Attempt, answers []Answer) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var completed sql.NullInt64
	if a.CompletedAt != nil {
		completed = sql.NullInt64{Int64: a.CompletedAt.Unix(), Valid: true}
	}
	res, err := tx.ExecContext(ctx, `UPDATE quiz_attempts
		SET status=$1, score=$2, percentage=$3, passed=$4, completed_at=$5
		WHERE id=$6 AND status=$7`,
		string(a.Status), a.Score, a.Percentage, a.Passed, completed, a.ID, string(AttemptInProgress))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// lost the race or already terminal; nothing was graded
		return fmt.Errorf("attempt %s: %w", a.ID, ErrInvalidState)
	}
	for _, ans := range answers {
		buf, err := json.Marshal(ans.Answers)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO quiz_answers
			(id,attempt_id,question_id,answers_json,is_correct,points_earned)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			ans.ID, ans.AttemptID, ans.QuestionID, string(buf), ans.IsCorrect, ans.PointsEarned); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLStore) ListAttempts(ctx context.Context, opts AttemptListOpts) ([]Attempt, error) {
	q := `SELECT ` + attemptCols + ` FROM quiz_attempts WHERE 1=1`
	args := []any{}
	n := 0
	add := func(clause string, v any) {
		n++
		q += fmt.Sprintf(" AND %s=$%d", clause, n)
		args = append(args, v)
	}
	if opts.QuizID != "" {
		add("quiz_id", opts.QuizID)
	}
	if opts.UserID != "" {
		add("user_id", opts.UserID)
	}
	if opts.Status != "" {
		add("status", opts.Status)
	}
	limit := opts.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	q += fmt.Sprintf(" ORDER BY started_at DESC, id DESC LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, limit, opts.Offset)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Attempt{}
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *SQLStore) GetAnswers(ctx context.Context, attemptID string) ([]Answer, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,attempt_id,question_id,answers_json,is_correct,points_earned
		FROM quiz_answers WHERE attempt_id=$1 ORDER BY id ASC`, attemptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Answer{}
	for rows.Next() {
		var ans Answer
		var buf string
		if err := rows.Scan(&ans.ID, &ans.AttemptID, &ans.QuestionID, &buf, &ans.IsCorrect, &ans.PointsEarned); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(buf), &ans.Answers); err != nil {
			return nil, err
		}
		out = append(out, ans)
	}
	return out, rows.Err()
}
