package quiz

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

type fakeStore struct {
	quizzes  map[string]Quiz
	attempts map[string]Attempt
	answers  map[string][]Answer
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		quizzes:  map[string]Quiz{},
		attempts: map[string]Attempt{},
		answers:  map[string][]Answer{},
	}
}

func (f *fakeStore) PutQuiz(_ context.Context, q Quiz) error {
	f.quizzes[q.ID] = q
	return nil
}

func (f *fakeStore) GetQuiz(_ context.Context, id string) (Quiz, error) {
	q, ok := f.quizzes[id]
	if !ok {
		return Quiz{}, fmt.Errorf("quiz %s: %w", id, ErrNotFound)
	}
	// Return a copy of the questions so callers can't mutate stored state,
	// matching the real store which builds fresh slices per query.
	q.Questions = append([]Question(nil), q.Questions...)
	return q, nil
}

func (f *fakeStore) AddQuestion(_ context.Context, qq Question) error {
	q, ok := f.quizzes[qq.QuizID]
	if !ok {
		return ErrNotFound
	}
	q.Questions = append(q.Questions, qq)
	f.quizzes[qq.QuizID] = q
	return nil
}

func (f *fakeStore) CreateAttempt(_ context.Context, a Attempt) error {
	for _, ex := range f.attempts {
		if ex.QuizID == a.QuizID && ex.UserID == a.UserID && ex.Status == AttemptInProgress {
			return errors.New("unique constraint violation: ux_attempts_open")
		}
	}
	f.attempts[a.ID] = a
	return nil
}

func (f *fakeStore) GetAttemptForUser(_ context.Context, attemptID, userID string) (Attempt, error) {
	a, ok := f.attempts[attemptID]
	if !ok || a.UserID != userID {
		return Attempt{}, fmt.Errorf("attempt %s: %w", attemptID, ErrNotFound)
	}
	return a, nil
}

func (f *fakeStore) GetInProgressAttempt(_ context.Context, quizID, userID string) (Attempt, error) {
	for _, a := range f.attempts {
		if a.QuizID == quizID && a.UserID == userID && a.Status == AttemptInProgress {
			return a, nil
		}
	}
	return Attempt{}, ErrNotFound
}

func (f *fakeStore) CountAttempts(_ context.Context, quizID, userID string) (int, error) {
	n := 0
	for _, a := range f.attempts {
		if a.QuizID == quizID && a.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) FinalizeAttempt(_ context.Context, a Attempt, answers []Answer) error {
	ex, ok := f.attempts[a.ID]
	if !ok {
		return fmt.Errorf("attempt %s: %w", a.ID, ErrNotFound)
	}
	if ex.Status != AttemptInProgress {
		return fmt.Errorf("attempt %s: %w", a.ID, ErrInvalidState)
	}
	a.Answers = nil
	f.attempts[a.ID] = a
	f.answers[a.ID] = answers
	return nil
}

func (f *fakeStore) ListAttempts(_ context.Context, opts AttemptListOpts) ([]Attempt, error) {
	out := []Attempt{}
	for _, a := range f.attempts {
		if opts.QuizID != "" && a.QuizID != opts.QuizID {
			continue
		}
		if opts.UserID != "" && a.UserID != opts.UserID {
			continue
		}
		if opts.Status != "" && string(a.Status) != opts.Status {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeStore) GetAnswers(_ context.Context, attemptID string) ([]Answer, error) {
	return f.answers[attemptID], nil
}

type fakeCourses struct {
	owners map[string]string // courseID -> ownerID
}

func (f *fakeCourses) Exists(_ context.Context, courseID string) (bool, error) {
	_, ok := f.owners[courseID]
	return ok, nil
}

func (f *fakeCourses) IsOwner(_ context.Context, courseID, userID string) (bool, error) {
	return f.owners[courseID] == userID, nil
}

type capturedEvent struct {
	eventType string
	payload   any
}

type fakePublisher struct {
	events []capturedEvent
}

func (f *fakePublisher) Publish(eventType string, payload any) error {
	f.events = append(f.events, capturedEvent{eventType, payload})
	return nil
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func newTestService(t *testing.T) (*Service, *fakeStore, *fakePublisher, *time.Time) {
	t.Helper()
	store := newFakeStore()
	pub := &fakePublisher{}
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	svc := NewService(store, &fakeCourses{owners: map[string]string{"course-1": "teacher-1"}},
		WithPublisher(pub),
		WithClock(func() time.Time { return now }))
	return svc, store, pub, &now
}

func mustCreateQuiz(t *testing.T, svc *Service, draft QuizDraft) Quiz {
	t.Helper()
	q, err := svc.CreateQuiz(context.Background(), "course-1", draft, "teacher-1")
	if err != nil {
		t.Fatalf("CreateQuiz failed: %v", err)
	}
	return q
}

func TestCreateQuizDefaults(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	q := mustCreateQuiz(t, svc, QuizDraft{Title: "Midterm"})

	if q.PassingScore != 70 {
		t.Errorf("default passing score = %d, want 70", q.PassingScore)
	}
	if q.TimeLimitMinutes != 30 {
		t.Errorf("default time limit = %d, want 30", q.TimeLimitMinutes)
	}
	if !q.IsActive {
		t.Error("new quiz should default to active")
	}
	if q.AllowRetake {
		t.Error("allow_retake should default to false")
	}
	if q.MaxAttempts != 1 {
		t.Errorf("default max attempts = %d, want 1", q.MaxAttempts)
	}
}

func TestCreateQuizCourseMissing(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	_, err := svc.CreateQuiz(context.Background(), "no-such-course", QuizDraft{Title: "x"}, "teacher-1")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateQuizNotOwner(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	_, err := svc.CreateQuiz(context.Background(), "course-1", QuizDraft{Title: "x"}, "intruder")
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

func TestCreateQuizValidation(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	cases := []struct {
		name  string
		draft QuizDraft
	}{
		{"missing title", QuizDraft{}},
		{"passing score out of range", QuizDraft{Title: "x", PassingScore: intPtr(101)}},
		{"negative time limit", QuizDraft{Title: "x", TimeLimitMinutes: intPtr(-5)}},
		{"bad max attempts", QuizDraft{Title: "x", MaxAttempts: intPtr(-2)}},
		{"unknown question type", QuizDraft{Title: "x", Questions: []QuestionDraft{
			{Type: "essay", Prompt: "p", CorrectAnswers: []string{"a"}},
		}}},
		{"question without correct answers", QuizDraft{Title: "x", Questions: []QuestionDraft{
			{Type: QuestionTrueFalse, Prompt: "p"},
		}}},
		{"question without prompt", QuizDraft{Title: "x", Questions: []QuestionDraft{
			{Type: QuestionTrueFalse, CorrectAnswers: []string{"true"}},
		}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateQuiz(context.Background(), "course-1", tc.draft, "teacher-1")
			if !errors.Is(err, ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestCreateQuizInlineQuestionOrder(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	q := mustCreateQuiz(t, svc, QuizDraft{Title: "Ordered", Questions: []QuestionDraft{
		{Type: QuestionTrueFalse, Prompt: "first", CorrectAnswers: []string{"true"}},
		{Type: QuestionTrueFalse, Prompt: "second", CorrectAnswers: []string{"false"}},
		{Type: QuestionTrueFalse, Prompt: "third", CorrectAnswers: []string{"true"}, Order: intPtr(9)},
	}})
	if q.Questions[0].Order != 0 || q.Questions[1].Order != 1 {
		t.Errorf("implicit orders = %d,%d, want 0,1", q.Questions[0].Order, q.Questions[1].Order)
	}
	if q.Questions[2].Order != 9 {
		t.Errorf("explicit order = %d, want 9", q.Questions[2].Order)
	}
	if q.Questions[0].Points != 1 {
		t.Errorf("default points = %d, want 1", q.Questions[0].Points)
	}
}

func TestAddQuestionAppendsToEnd(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	q := mustCreateQuiz(t, svc, QuizDraft{Title: "Growing", Questions: []QuestionDraft{
		{Type: QuestionTrueFalse, Prompt: "first", CorrectAnswers: []string{"true"}},
	}})

	added, err := svc.AddQuestion(context.Background(), q.ID,
		QuestionDraft{Type: QuestionShortAnswer, Prompt: "capital of France?", CorrectAnswers: []string{"paris"}},
		"teacher-1")
	if err != nil {
		t.Fatalf("AddQuestion failed: %v", err)
	}
	if added.Order != 1 {
		t.Errorf("appended order = %d, want 1", added.Order)
	}
	if added.Points != 1 {
		t.Errorf("default points = %d, want 1", added.Points)
	}

	_, err = svc.AddQuestion(context.Background(), q.ID,
		QuestionDraft{Type: QuestionTrueFalse, Prompt: "p", CorrectAnswers: []string{"true"}}, "intruder")
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("non-owner err = %v, want ErrForbidden", err)
	}
	_, err = svc.AddQuestion(context.Background(), "no-such-quiz",
		QuestionDraft{Type: QuestionTrueFalse, Prompt: "p", CorrectAnswers: []string{"true"}}, "teacher-1")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("missing quiz err = %v, want ErrNotFound", err)
	}
}

func TestGetQuizStripsAnswerKeysForLearners(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	q := mustCreateQuiz(t, svc, QuizDraft{Title: "Secret", Questions: []QuestionDraft{
		{Type: QuestionTrueFalse, Prompt: "p", CorrectAnswers: []string{"true"}, Explanation: "because"},
	}})

	asLearner, err := svc.GetQuiz(context.Background(), q.ID, "student-1")
	if err != nil {
		t.Fatalf("GetQuiz failed: %v", err)
	}
	if asLearner.Questions[0].CorrectAnswers != nil {
		t.Error("learner view must not carry answer keys")
	}
	if asLearner.Questions[0].Explanation != "" {
		t.Error("learner view must not carry explanations")
	}

	asOwner, err := svc.GetQuiz(context.Background(), q.ID, "teacher-1")
	if err != nil {
		t.Fatalf("GetQuiz failed: %v", err)
	}
	if len(asOwner.Questions[0].CorrectAnswers) == 0 {
		t.Error("owner view must keep answer keys")
	}
}

func TestStartAttemptInactiveQuiz(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	q := mustCreateQuiz(t, svc, QuizDraft{Title: "Hidden", IsActive: boolPtr(false)})
	_, err := svc.StartAttempt(context.Background(), q.ID, "student-1")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestStartAttemptResumeReturnsSameAttempt(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	q := mustCreateQuiz(t, svc, QuizDraft{Title: "Resumable", MaxAttempts: intPtr(-1)})

	first, err := svc.StartAttempt(context.Background(), q.ID, "student-1")
	if err != nil {
		t.Fatalf("StartAttempt failed: %v", err)
	}
	second, err := svc.StartAttempt(context.Background(), q.ID, "student-1")
	if err != nil {
		t.Fatalf("second StartAttempt failed: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("resumed attempt id = %s, want %s", second.ID, first.ID)
	}
}

func TestStartAttemptLimit(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	q := mustCreateQuiz(t, svc, QuizDraft{Title: "One shot", MaxAttempts: intPtr(1), Questions: []QuestionDraft{
		{Type: QuestionTrueFalse, Prompt: "p", CorrectAnswers: []string{"true"}},
	}})

	a, err := svc.StartAttempt(context.Background(), q.ID, "student-1")
	if err != nil {
		t.Fatalf("StartAttempt failed: %v", err)
	}
	if _, err := svc.SubmitAttempt(context.Background(), a.ID,
		[]SubmittedAnswer{{QuestionID: q.Questions[0].ID, Answers: []string{"true"}}}, "student-1"); err != nil {
		t.Fatalf("SubmitAttempt failed: %v", err)
	}

	_, err = svc.StartAttempt(context.Background(), q.ID, "student-1")
	if !errors.Is(err, ErrAttemptLimitExceeded) {
		t.Errorf("err = %v, want ErrAttemptLimitExceeded", err)
	}

	// other users are unaffected
	if _, err := svc.StartAttempt(context.Background(), q.ID, "student-2"); err != nil {
		t.Errorf("second user StartAttempt failed: %v", err)
	}
}

func TestStartAttemptConcurrentDuplicate(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	q := mustCreateQuiz(t, svc, QuizDraft{Title: "Race", MaxAttempts: intPtr(-1)})

	a, err := svc.StartAttempt(context.Background(), q.ID, "student-1")
	if err != nil {
		t.Fatalf("StartAttempt failed: %v", err)
	}
	// simulate the losing side of the insert race: the store refuses a
	// duplicate open attempt, the service must resume the winner's
	if err := store.CreateAttempt(context.Background(), Attempt{
		ID: "dup", QuizID: q.ID, UserID: "student-1", Status: AttemptInProgress,
	}); err == nil {
		t.Fatal("fake store should refuse a second open attempt")
	}
	again, err := svc.StartAttempt(context.Background(), q.ID, "student-1")
	if err != nil {
		t.Fatalf("StartAttempt after race failed: %v", err)
	}
	if again.ID != a.ID {
		t.Errorf("attempt id = %s, want %s", again.ID, a.ID)
	}
}

func TestSubmitHappyPath(t *testing.T) {
	svc, _, pub, _ := newTestService(t)
	q := mustCreateQuiz(t, svc, QuizDraft{Title: "Final", PassingScore: intPtr(70), Questions: []QuestionDraft{
		{Type: QuestionMultipleChoice, Prompt: "pick two", Options: []string{"a", "b", "c"},
			CorrectAnswers: []string{"a", "b"}, Points: intPtr(10)},
	}})

	a, err := svc.StartAttempt(context.Background(), q.ID, "student-1")
	if err != nil {
		t.Fatalf("StartAttempt failed: %v", err)
	}
	got, err := svc.SubmitAttempt(context.Background(), a.ID,
		[]SubmittedAnswer{{QuestionID: q.Questions[0].ID, Answers: []string{"b", "a"}}}, "student-1")
	if err != nil {
		t.Fatalf("SubmitAttempt failed: %v", err)
	}

	if got.Status != AttemptCompleted {
		t.Errorf("status = %s, want %s", got.Status, AttemptCompleted)
	}
	if got.Score != 10 {
		t.Errorf("score = %d, want 10", got.Score)
	}
	if got.Percentage != 100 {
		t.Errorf("percentage = %v, want 100", got.Percentage)
	}
	if !got.Passed {
		t.Error("attempt should pass")
	}
	if got.CompletedAt == nil {
		t.Error("completed_at should be set")
	}
	if len(got.Answers) != 1 || !got.Answers[0].IsCorrect || got.Answers[0].PointsEarned != 10 {
		t.Errorf("answers = %+v, want one correct answer worth 10", got.Answers)
	}
	if len(pub.events) != 1 || pub.events[0].eventType != EventAttemptCompleted {
		t.Errorf("events = %+v, want one %s", pub.events, EventAttemptCompleted)
	}
}

func TestSubmitPartialScore(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	q := mustCreateQuiz(t, svc, QuizDraft{Title: "Half", PassingScore: intPtr(70), Questions: []QuestionDraft{
		{Type: QuestionTrueFalse, Prompt: "q1", CorrectAnswers: []string{"true"}, Points: intPtr(5)},
		{Type: QuestionTrueFalse, Prompt: "q2", CorrectAnswers: []string{"false"}, Points: intPtr(5)},
	}})

	a, _ := svc.StartAttempt(context.Background(), q.ID, "student-1")
	got, err := svc.SubmitAttempt(context.Background(), a.ID, []SubmittedAnswer{
		{QuestionID: q.Questions[0].ID, Answers: []string{"true"}},
		{QuestionID: q.Questions[1].ID, Answers: []string{"true"}},
	}, "student-1")
	if err != nil {
		t.Fatalf("SubmitAttempt failed: %v", err)
	}
	if got.Score != 5 {
		t.Errorf("score = %d, want 5", got.Score)
	}
	if got.Percentage != 50 {
		t.Errorf("percentage = %v, want 50", got.Percentage)
	}
	if got.Passed {
		t.Error("50%% must not pass a 70%% threshold")
	}
}

func TestSubmitUnmatchedQuestionIgnored(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	q := mustCreateQuiz(t, svc, QuizDraft{Title: "Strict", PassingScore: intPtr(50), Questions: []QuestionDraft{
		{Type: QuestionTrueFalse, Prompt: "q1", CorrectAnswers: []string{"true"}, Points: intPtr(10)},
	}})

	a, _ := svc.StartAttempt(context.Background(), q.ID, "student-1")
	got, err := svc.SubmitAttempt(context.Background(), a.ID, []SubmittedAnswer{
		{QuestionID: "ghost-question", Answers: []string{"whatever"}},
		{QuestionID: q.Questions[0].ID, Answers: []string{"true"}},
	}, "student-1")
	if err != nil {
		t.Fatalf("SubmitAttempt failed: %v", err)
	}
	if len(got.Answers) != 1 {
		t.Errorf("answers = %d, want 1 (unmatched id silently dropped)", len(got.Answers))
	}
	if got.Score != 10 || got.Percentage != 100 {
		t.Errorf("score/percentage = %d/%v, want 10/100", got.Score, got.Percentage)
	}
}

func TestSubmitScopedToOwner(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	q := mustCreateQuiz(t, svc, QuizDraft{Title: "Private"})

	a, _ := svc.StartAttempt(context.Background(), q.ID, "student-1")
	_, err := svc.SubmitAttempt(context.Background(), a.ID, nil, "student-2")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign submit err = %v, want ErrNotFound (no existence leak)", err)
	}
}

func TestSubmitTimeout(t *testing.T) {
	svc, store, pub, now := newTestService(t)
	q := mustCreateQuiz(t, svc, QuizDraft{Title: "Timed", TimeLimitMinutes: intPtr(1), MaxAttempts: intPtr(2),
		Questions: []QuestionDraft{
			{Type: QuestionTrueFalse, Prompt: "q1", CorrectAnswers: []string{"true"}},
		}})

	a, err := svc.StartAttempt(context.Background(), q.ID, "student-1")
	if err != nil {
		t.Fatalf("StartAttempt failed: %v", err)
	}

	*now = now.Add(2 * time.Minute)
	_, err = svc.SubmitAttempt(context.Background(), a.ID,
		[]SubmittedAnswer{{QuestionID: q.Questions[0].ID, Answers: []string{"true"}}}, "student-1")
	if !errors.Is(err, ErrTimeLimitExceeded) {
		t.Fatalf("late submit err = %v, want ErrTimeLimitExceeded", err)
	}

	// the attempt is consumed even though nothing was graded
	stored := store.attempts[a.ID]
	if stored.Status != AttemptTimedOut {
		t.Errorf("status = %s, want %s", stored.Status, AttemptTimedOut)
	}
	if len(store.answers[a.ID]) != 0 {
		t.Errorf("timed-out attempt must have no graded answers, got %d", len(store.answers[a.ID]))
	}
	if len(pub.events) != 1 || pub.events[0].eventType != EventAttemptTimedOut {
		t.Errorf("events = %+v, want one %s", pub.events, EventAttemptTimedOut)
	}

	// retry hits the terminal state, not a fresh grading pass
	_, err = svc.SubmitAttempt(context.Background(), a.ID, nil, "student-1")
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("resubmit err = %v, want ErrInvalidState", err)
	}

	// and the timed-out attempt still counts toward the cap
	if _, err := svc.StartAttempt(context.Background(), q.ID, "student-1"); err != nil {
		t.Fatalf("second StartAttempt failed: %v", err)
	}
	// consume the second (and last) slot via another timeout
	second, _ := svc.store.GetInProgressAttempt(context.Background(), q.ID, "student-1")
	*now = now.Add(2 * time.Minute)
	_, _ = svc.SubmitAttempt(context.Background(), second.ID, nil, "student-1")
	_, err = svc.StartAttempt(context.Background(), q.ID, "student-1")
	if !errors.Is(err, ErrAttemptLimitExceeded) {
		t.Errorf("err = %v, want ErrAttemptLimitExceeded after two timeouts", err)
	}
}

func TestSubmitWithinTimeLimit(t *testing.T) {
	svc, _, _, now := newTestService(t)
	q := mustCreateQuiz(t, svc, QuizDraft{Title: "Quick", TimeLimitMinutes: intPtr(5), Questions: []QuestionDraft{
		{Type: QuestionTrueFalse, Prompt: "q1", CorrectAnswers: []string{"true"}},
	}})

	a, _ := svc.StartAttempt(context.Background(), q.ID, "student-1")
	*now = now.Add(4 * time.Minute)
	got, err := svc.SubmitAttempt(context.Background(), a.ID,
		[]SubmittedAnswer{{QuestionID: q.Questions[0].ID, Answers: []string{"true"}}}, "student-1")
	if err != nil {
		t.Fatalf("on-time submit failed: %v", err)
	}
	if got.Status != AttemptCompleted {
		t.Errorf("status = %s, want %s", got.Status, AttemptCompleted)
	}
}

func TestSubmitEmptyQuizGradesZero(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	q := mustCreateQuiz(t, svc, QuizDraft{Title: "Empty"})

	a, _ := svc.StartAttempt(context.Background(), q.ID, "student-1")
	got, err := svc.SubmitAttempt(context.Background(), a.ID, nil, "student-1")
	if err != nil {
		t.Fatalf("SubmitAttempt failed: %v", err)
	}
	if got.Score != 0 || got.Percentage != 0 {
		t.Errorf("score/percentage = %d/%v, want 0/0", got.Score, got.Percentage)
	}
	if got.Passed {
		t.Error("a quiz with no questions cannot be passed")
	}
}

func TestGetAttemptIncludesAnswers(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	q := mustCreateQuiz(t, svc, QuizDraft{Title: "Review", Questions: []QuestionDraft{
		{Type: QuestionTrueFalse, Prompt: "q1", CorrectAnswers: []string{"true"}},
	}})

	a, _ := svc.StartAttempt(context.Background(), q.ID, "student-1")
	if _, err := svc.SubmitAttempt(context.Background(), a.ID,
		[]SubmittedAnswer{{QuestionID: q.Questions[0].ID, Answers: []string{"false"}}}, "student-1"); err != nil {
		t.Fatalf("SubmitAttempt failed: %v", err)
	}

	got, err := svc.GetAttempt(context.Background(), a.ID, "student-1")
	if err != nil {
		t.Fatalf("GetAttempt failed: %v", err)
	}
	if len(got.Answers) != 1 || got.Answers[0].IsCorrect {
		t.Errorf("answers = %+v, want one incorrect answer", got.Answers)
	}

	_, err = svc.GetAttempt(context.Background(), a.ID, "student-2")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign read err = %v, want ErrNotFound", err)
	}
}
