package quiz

import "context"

type AttemptListOpts struct {
	QuizID string
	UserID string
	Status string // optional: in_progress|completed|timed_out
	Limit  int
	Offset int
}

// Store is the persistence boundary for quiz definitions, attempts and
// graded answers. Implementations must back two invariants:
//
//   - at most one in_progress attempt per (quiz, user): CreateAttempt
//     fails when one already exists (unique constraint or equivalent);
//   - FinalizeAttempt transitions in_progress -> terminal atomically and
//     returns ErrInvalidState when the attempt is already terminal, so a
//     double submission grades exactly once.
type Store interface {
	PutQuiz(ctx context.Context, q Quiz) error
	// GetQuiz returns the quiz with its questions ordered by ord ascending,
	// answer keys included.
	GetQuiz(ctx context.Context, id string) (Quiz, error)
	AddQuestion(ctx context.Context, q Question) error

	CreateAttempt(ctx context.Context, a Attempt) error
	// GetAttemptForUser loads an attempt scoped to its owner; a foreign
	// attemptID yields ErrNotFound, never ErrForbidden.
	GetAttemptForUser(ctx context.Context, attemptID, userID string) (Attempt, error)
	GetInProgressAttempt(ctx context.Context, quizID, userID string) (Attempt, error)
	// CountAttempts counts attempts of any status for (quiz, user).
	CountAttempts(ctx context.Context, quizID, userID string) (int, error)
	// FinalizeAttempt persists the terminal attempt plus its answer rows in
	// one transaction, guarded on status=in_progress.
	FinalizeAttempt(ctx context.Context, a Attempt, answers []Answer) error
	ListAttempts(ctx context.Context, opts AttemptListOpts) ([]Attempt, error)

	GetAnswers(ctx context.Context, attemptID string) ([]Answer, error)
}
