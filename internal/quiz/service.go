package quiz

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/courseloom/quiz-engine/internal/course"
	"github.com/courseloom/quiz-engine/internal/grading"
)

// Publisher receives best-effort lifecycle events. Implementations must
// not block for long; errors are logged, never surfaced to the caller.
type Publisher interface {
	Publish(eventType string, payload any) error
}

const (
	EventAttemptCompleted = "quiz.attempt.completed"
	EventAttemptTimedOut  = "quiz.attempt.timed_out"
)

// AttemptEvent is the payload for attempt lifecycle events.
type AttemptEvent struct {
	AttemptID  string  `json:"attempt_id"`
	QuizID     string  `json:"quiz_id"`
	UserID     string  `json:"user_id"`
	Score      int     `json:"score"`
	Percentage float64 `json:"percentage"`
	Passed     bool    `json:"passed"`
}

type Service struct {
	store   Store
	courses course.Gateway
	policy  *grading.Policy
	events  Publisher
	now     func() time.Time
}

type ServiceOption func(*Service)

func WithPublisher(p Publisher) ServiceOption {
	return func(s *Service) { s.events = p }
}

// WithClock overrides the time source; tests use it to age attempts.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

func NewService(store Store, courses course.Gateway, opts ...ServiceOption) *Service {
	s := &Service{
		store:   store,
		courses: courses,
		policy:  grading.NewPolicy(),
		now:     time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// QuizDraft is an authoring request. Optional fields default when nil:
// passing score 70, time limit 30 minutes, active, retakes off, one
// attempt.
type QuizDraft struct {
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	PassingScore     *int            `json:"passing_score"`
	TimeLimitMinutes *int            `json:"time_limit_minutes"`
	IsActive         *bool           `json:"is_active"`
	AllowRetake      *bool           `json:"allow_retake"`
	MaxAttempts      *int            `json:"max_attempts"`
	Questions        []QuestionDraft `json:"questions"`
}

type QuestionDraft struct {
	Type           QuestionType `json:"type"`
	Prompt         string       `json:"prompt"`
	Options        []string     `json:"options"`
	CorrectAnswers []string     `json:"correct_answers"`
	Points         *int         `json:"points"`
	Order          *int         `json:"order"`
	Explanation    string       `json:"explanation"`
}

func (s *Service) CreateQuiz(ctx context.Context, courseID string, draft QuizDraft, authorID string) (Quiz, error) {
	ok, err := s.courses.Exists(ctx, courseID)
	if err != nil {
		return Quiz{}, err
	}
	if !ok {
		return Quiz{}, fmt.Errorf("course %s: %w", courseID, ErrNotFound)
	}
	owner, err := s.courses.IsOwner(ctx, courseID, authorID)
	if err != nil {
		return Quiz{}, err
	}
	if !owner {
		return Quiz{}, fmt.Errorf("create quiz: %w", ErrForbidden)
	}

	if strings.TrimSpace(draft.Title) == "" {
		return Quiz{}, fmt.Errorf("title is required: %w", ErrValidation)
	}
	q := Quiz{
		ID:               uuid.NewString(),
		CourseID:         courseID,
		Title:            strings.TrimSpace(draft.Title),
		Description:      draft.Description,
		PassingScore:     intOr(draft.PassingScore, 70),
		TimeLimitMinutes: intOr(draft.TimeLimitMinutes, 30),
		IsActive:         boolOr(draft.IsActive, true),
		AllowRetake:      boolOr(draft.AllowRetake, false),
		MaxAttempts:      intOr(draft.MaxAttempts, 1),
		CreatedAt:        s.now().Unix(),
	}
	if q.PassingScore < 0 || q.PassingScore > 100 {
		return Quiz{}, fmt.Errorf("passing_score must be 0..100: %w", ErrValidation)
	}
	if q.TimeLimitMinutes < 0 {
		return Quiz{}, fmt.Errorf("time_limit_minutes must be >= 0: %w", ErrValidation)
	}
	if q.MaxAttempts < -1 {
		return Quiz{}, fmt.Errorf("max_attempts must be -1 or >= 0: %w", ErrValidation)
	}
	for i, qd := range draft.Questions {
		qq, err := buildQuestion(q.ID, qd, i)
		if err != nil {
			return Quiz{}, err
		}
		q.Questions = append(q.Questions, qq)
	}
	if err := s.store.PutQuiz(ctx, q); err != nil {
		return Quiz{}, err
	}
	return q, nil
}

func (s *Service) AddQuestion(ctx context.Context, quizID string, draft QuestionDraft, authorID string) (Question, error) {
	q, err := s.store.GetQuiz(ctx, quizID)
	if err != nil {
		return Question{}, err
	}
	owner, err := s.courses.IsOwner(ctx, q.CourseID, authorID)
	if err != nil {
		return Question{}, err
	}
	if !owner {
		return Question{}, fmt.Errorf("add question: %w", ErrForbidden)
	}
	// default order appends to the end
	qq, err := buildQuestion(quizID, draft, len(q.Questions))
	if err != nil {
		return Question{}, err
	}
	if err := s.store.AddQuestion(ctx, qq); err != nil {
		return Question{}, err
	}
	return qq, nil
}

// GetQuiz returns the quiz with questions in display order. Answer keys
// and explanations are stripped unless the viewer owns the course.
func (s *Service) GetQuiz(ctx context.Context, quizID, viewerID string) (Quiz, error) {
	q, err := s.store.GetQuiz(ctx, quizID)
	if err != nil {
		return Quiz{}, err
	}
	owner, err := s.courses.IsOwner(ctx, q.CourseID, viewerID)
	if err != nil {
		return Quiz{}, err
	}
	if !owner {
		for i := range q.Questions {
			q.Questions[i].CorrectAnswers = nil
			q.Questions[i].Explanation = ""
		}
	}
	return q, nil
}

// StartAttempt opens a new attempt or resumes the caller's in-progress
// one. Inactive or missing quizzes are both "not found"; the attempt
// count (any status) is checked before the resume branch.
func (s *Service) StartAttempt(ctx context.Context, quizID, userID string) (Attempt, error) {
	q, err := s.store.GetQuiz(ctx, quizID)
	if err != nil {
		return Attempt{}, err
	}
	if !q.IsActive {
		return Attempt{}, fmt.Errorf("quiz %s is inactive: %w", quizID, ErrNotFound)
	}

	if q.MaxAttempts > 0 {
		n, err := s.store.CountAttempts(ctx, quizID, userID)
		if err != nil {
			return Attempt{}, err
		}
		if n >= q.MaxAttempts {
			return Attempt{}, fmt.Errorf("quiz %s allows %d attempts: %w", quizID, q.MaxAttempts, ErrAttemptLimitExceeded)
		}
	}

	if a, err := s.store.GetInProgressAttempt(ctx, quizID, userID); err == nil {
		return a, nil
	} else if !isNotFound(err) {
		return Attempt{}, err
	}

	a := Attempt{
		ID:        uuid.NewString(),
		QuizID:    quizID,
		UserID:    userID,
		Status:    AttemptInProgress,
		StartedAt: s.now().UTC(),
	}
	if err := s.store.CreateAttempt(ctx, a); err != nil {
		// a concurrent start may have won the unique-index race; resume theirs
		if existing, e2 := s.store.GetInProgressAttempt(ctx, quizID, userID); e2 == nil {
			return existing, nil
		}
		return Attempt{}, err
	}
	return a, nil
}

// SubmitAttempt grades a submission and finalizes the attempt. A late
// submission consumes the attempt: it is persisted as timed_out before
// ErrTimeLimitExceeded is returned, so a retry sees ErrInvalidState.
func (s *Service) SubmitAttempt(ctx context.Context, attemptID string, submission []SubmittedAnswer, userID string) (Attempt, error) {
	a, err := s.store.GetAttemptForUser(ctx, attemptID, userID)
	if err != nil {
		return Attempt{}, err
	}
	if a.Status != AttemptInProgress {
		return Attempt{}, fmt.Errorf("attempt %s is %s: %w", attemptID, a.Status, ErrInvalidState)
	}
	q, err := s.store.GetQuiz(ctx, a.QuizID)
	if err != nil {
		return Attempt{}, err
	}

	now := s.now().UTC()
	if q.TimeLimitMinutes > 0 {
		if now.Sub(a.StartedAt) > time.Duration(q.TimeLimitMinutes)*time.Minute {
			a.Status = AttemptTimedOut
			a.CompletedAt = &now
			if err := s.store.FinalizeAttempt(ctx, a, nil); err != nil {
				return Attempt{}, err
			}
			s.publish(EventAttemptTimedOut, AttemptEvent{
				AttemptID: a.ID, QuizID: a.QuizID, UserID: a.UserID,
			})
			return Attempt{}, fmt.Errorf("attempt %s: %w", attemptID, ErrTimeLimitExceeded)
		}
	}

	byID := make(map[string]Question, len(q.Questions))
	totalPossible := 0
	for _, qq := range q.Questions {
		byID[qq.ID] = qq
		totalPossible += qq.Points
	}

	var answers []Answer
	graded := make(map[string]bool, len(submission))
	score := 0
	for _, sub := range submission {
		qq, ok := byID[sub.QuestionID]
		if !ok || graded[sub.QuestionID] {
			// unknown question IDs are ignored, duplicates grade once
			continue
		}
		graded[sub.QuestionID] = true
		correct := s.policy.Check(grading.Q{
			Type:           string(qq.Type),
			CorrectAnswers: qq.CorrectAnswers,
			Points:         qq.Points,
		}, sub.Answers)
		earned := 0
		if correct {
			earned = qq.Points
		}
		score += earned
		answers = append(answers, Answer{
			ID:           uuid.NewString(),
			AttemptID:    a.ID,
			QuestionID:   qq.ID,
			Answers:      sub.Answers,
			IsCorrect:    correct,
			PointsEarned: earned,
		})
	}

	percentage := 0.0
	if totalPossible > 0 {
		percentage = float64(score) / float64(totalPossible) * 100
	}

	a.Status = AttemptCompleted
	a.CompletedAt = &now
	a.Score = score
	a.Percentage = percentage
	a.Passed = percentage >= float64(q.PassingScore)
	if err := s.store.FinalizeAttempt(ctx, a, answers); err != nil {
		return Attempt{}, err
	}
	a.Answers = answers
	s.publish(EventAttemptCompleted, AttemptEvent{
		AttemptID: a.ID, QuizID: a.QuizID, UserID: a.UserID,
		Score: a.Score, Percentage: a.Percentage, Passed: a.Passed,
	})
	return a, nil
}

// GetAttempt loads an attempt with its graded answers, scoped to the
// owning user.
func (s *Service) GetAttempt(ctx context.Context, attemptID, userID string) (Attempt, error) {
	a, err := s.store.GetAttemptForUser(ctx, attemptID, userID)
	if err != nil {
		return Attempt{}, err
	}
	answers, err := s.store.GetAnswers(ctx, attemptID)
	if err != nil {
		return Attempt{}, err
	}
	a.Answers = answers
	return a, nil
}

func (s *Service) ListAttempts(ctx context.Context, opts AttemptListOpts) ([]Attempt, error) {
	return s.store.ListAttempts(ctx, opts)
}

func (s *Service) publish(eventType string, payload any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(eventType, payload); err != nil {
		log.Printf("event publish %s: %v", eventType, err)
	}
}

func buildQuestion(quizID string, d QuestionDraft, defaultOrder int) (Question, error) {
	if !d.Type.Valid() {
		return Question{}, fmt.Errorf("unknown question type %q: %w", d.Type, ErrValidation)
	}
	if strings.TrimSpace(d.Prompt) == "" {
		return Question{}, fmt.Errorf("prompt is required: %w", ErrValidation)
	}
	if len(d.CorrectAnswers) == 0 {
		return Question{}, fmt.Errorf("at least one correct answer is required: %w", ErrValidation)
	}
	points := intOr(d.Points, 1)
	if points <= 0 {
		return Question{}, fmt.Errorf("points must be positive: %w", ErrValidation)
	}
	q := Question{
		ID:             uuid.NewString(),
		QuizID:         quizID,
		Type:           d.Type,
		Prompt:         strings.TrimSpace(d.Prompt),
		CorrectAnswers: d.CorrectAnswers,
		Points:         points,
		Order:          intOr(d.Order, defaultOrder),
		Explanation:    d.Explanation,
	}
	if d.Type != QuestionShortAnswer {
		q.Options = d.Options
	}
	return q, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func intOr(p *int, def int) int {
	if p != nil {
		return *p
	}
	return def
}

func boolOr(p *bool, def bool) bool {
	if p != nil {
		return *p
	}
	return def
}
