// Package grading holds the per-question-type correctness rules. The
// policy is deterministic and stateless: given the same question and the
// same submitted values it always returns the same verdict.
package grading

import "strings"

// Q is the minimal view of a question the policy needs.
type Q struct {
	Type           string
	CorrectAnswers []string
	Points         int
}

// Strategy decides correctness for a single question type.
type Strategy interface {
	IsCorrect(q Q, submitted []string) bool
}

// Policy routes by question type to the matching Strategy. Unknown types
// grade incorrect rather than erroring, so a bad row can never award
// points.
type Policy struct {
	strategies map[string]Strategy
}

type Option func(*Policy)

// WithStrategy overrides or adds the strategy for a question type.
func WithStrategy(qtype string, s Strategy) Option {
	return func(p *Policy) { p.strategies[qtype] = s }
}

func NewPolicy(opts ...Option) *Policy {
	p := &Policy{strategies: map[string]Strategy{
		"multiple_choice": choiceStrategy{},
		"true_false":      choiceStrategy{},
		"short_answer":    shortAnswerStrategy{},
	}}
	for _, o := range opts {
		o(p)
	}
	return p
}

func (p *Policy) Check(q Q, submitted []string) bool {
	s, ok := p.strategies[q.Type]
	if !ok {
		return false
	}
	return s.IsCorrect(q, submitted)
}

// choiceStrategy grades multiple_choice and true_false: the normalized
// submitted set must equal the normalized correct set. Order-independent,
// and an extra value fails on cardinality.
type choiceStrategy struct{}

func (choiceStrategy) IsCorrect(q Q, submitted []string) bool {
	correct := toSet(q.CorrectAnswers)
	got := toSet(submitted)
	if len(got) != len(correct) || len(correct) == 0 {
		return false
	}
	for k := range correct {
		if _, ok := got[k]; !ok {
			return false
		}
	}
	return true
}

// shortAnswerStrategy grades short_answer with bidirectional substring
// containment: any normalized correct answer contained in any normalized
// submitted value, or vice versa. Known to be loose (correct "ten"
// matches submitted "often"); kept for parity with historical grading.
type shortAnswerStrategy struct{}

func (shortAnswerStrategy) IsCorrect(q Q, submitted []string) bool {
	for _, c := range q.CorrectAnswers {
		nc := normalize(c)
		if nc == "" {
			continue
		}
		for _, s := range submitted {
			ns := normalize(s)
			if ns == "" {
				continue
			}
			if strings.Contains(ns, nc) || strings.Contains(nc, ns) {
				return true
			}
		}
	}
	return false
}

// normalize lower-cases and trims surrounding whitespace. Nothing else:
// interior spacing and punctuation are significant.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func toSet(values []string) map[string]struct{} {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[normalize(v)] = struct{}{}
	}
	return m
}
