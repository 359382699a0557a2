package quiz

import "time"

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionTrueFalse      QuestionType = "true_false"
	QuestionShortAnswer    QuestionType = "short_answer"
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionMultipleChoice, QuestionTrueFalse, QuestionShortAnswer:
		return true
	}
	return false
}

type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "in_progress"
	AttemptCompleted  AttemptStatus = "completed"
	AttemptTimedOut   AttemptStatus = "timed_out"
)

// Terminal reports whether no further transition may leave this status.
func (s AttemptStatus) Terminal() bool {
	return s == AttemptCompleted || s == AttemptTimedOut
}

type Quiz struct {
	ID               string     `json:"id"`
	CourseID         string     `json:"course_id"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	PassingScore     int        `json:"passing_score"`      // 0..100 percentage threshold
	TimeLimitMinutes int        `json:"time_limit_minutes"` // 0 = unlimited
	IsActive         bool       `json:"is_active"`
	AllowRetake      bool       `json:"allow_retake"` // informational for clients
	MaxAttempts      int        `json:"max_attempts"` // -1 = unlimited
	Questions        []Question `json:"questions,omitempty"`
	CreatedAt        int64      `json:"created_at,omitempty"`
}

type Question struct {
	ID             string       `json:"id"`
	QuizID         string       `json:"quiz_id"`
	Type           QuestionType `json:"type"`
	Prompt         string       `json:"prompt"`
	Options        []string     `json:"options,omitempty"` // multiple_choice / true_false only
	CorrectAnswers []string     `json:"correct_answers,omitempty"`
	Points         int          `json:"points"`
	Order          int          `json:"order"`
	Explanation    string       `json:"explanation,omitempty"`
}

type Attempt struct {
	ID          string        `json:"id"`
	QuizID      string        `json:"quiz_id"`
	UserID      string        `json:"user_id"`
	Status      AttemptStatus `json:"status"`
	Score       int           `json:"score"`
	Percentage  float64       `json:"percentage"`
	Passed      bool          `json:"passed"`
	StartedAt   time.Time     `json:"started_at"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
	Answers     []Answer      `json:"answers,omitempty"`
}

type Answer struct {
	ID           string   `json:"id"`
	AttemptID    string   `json:"attempt_id"`
	QuestionID   string   `json:"question_id"`
	Answers      []string `json:"answers"`
	IsCorrect    bool     `json:"is_correct"`
	PointsEarned int      `json:"points_earned"`
}

// SubmittedAnswer is one entry of a submission body: the learner's raw
// values for a single question.
type SubmittedAnswer struct {
	QuestionID string   `json:"question_id"`
	Answers    []string `json:"answers"`
}
