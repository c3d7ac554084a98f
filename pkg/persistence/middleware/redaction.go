package middleware

import (
	"context"
	"regexp"

	"github.com/aretw0/cliching/pkg/divination"
	"github.com/aretw0/cliching/pkg/ports"
)

type redactionMiddleware struct {
	next     ports.SessionStore
	patterns []*regexp.Regexp
}

// NewRedactionMiddleware creates a middleware that masks question fragments
// matching the patterns before the session is persisted. Useful when
// questions may contain names or other personal detail that should not
// reach a shared store.
func NewRedactionMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.SessionStore) ports.SessionStore {
		return &redactionMiddleware{next: next, patterns: patterns}
	}
}

func (m *redactionMiddleware) Save(ctx context.Context, sessionID string, session *divination.Session) error {
	// Clone so the in-memory session the caller holds keeps its question.
	cloned := *session
	cloned.Question = mask(cloned.Question, m.patterns)

	return m.next.Save(ctx, sessionID, &cloned)
}

func (m *redactionMiddleware) Load(ctx context.Context, sessionID string) (*divination.Session, error) {
	return m.next.Load(ctx, sessionID)
}

func (m *redactionMiddleware) Delete(ctx context.Context, sessionID string) error {
	return m.next.Delete(ctx, sessionID)
}

func mask(question string, patterns []*regexp.Regexp) string {
	for _, p := range patterns {
		question = p.ReplaceAllString(question, "***")
	}
	return question
}
