package middleware

import (
	"context"
	"fmt"
	"regexp"

	"github.com/aretw0/calinea/pkg/component"
	"github.com/aretw0/calinea/pkg/ports"
	"github.com/aretw0/calinea/pkg/transform"
)

// Mask replaces every redacted match.
const Mask = "***"

type redactMiddleware struct {
	next     ports.ComponentStore
	patterns []*regexp.Regexp
}

// NewRedactMiddleware creates a middleware that masks text matching any of the
// patterns before it reaches the store. Literal text and translation fallbacks
// are masked, arguments included. Trees passed to Save are never modified.
func NewRedactMiddleware(patternStrings []string) (Middleware, error) {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("redact pattern %q: %w", p, err)
		}
		patterns[i] = re
	}
	return func(next ports.ComponentStore) ports.ComponentStore {
		return &redactMiddleware{next: next, patterns: patterns}
	}, nil
}

func (m *redactMiddleware) Save(ctx context.Context, id string, node *component.Node) error {
	masked, err := transform.Map(node, func(c component.Content, s component.Style) (component.Content, component.Style) {
		switch c.Kind() {
		case component.KindText:
			if t := m.mask(c.Text()); t != c.Text() {
				return component.TextContent(t), s
			}
		case component.KindTranslatable:
			if f := m.mask(c.Fallback()); f != c.Fallback() {
				return c.WithFallback(f), s
			}
		}
		return c, s
	})
	if err != nil {
		return fmt.Errorf("redact %s: %w", id, err)
	}
	return m.next.Save(ctx, id, masked)
}

func (m *redactMiddleware) mask(s string) string {
	if s == "" {
		return s
	}
	for _, p := range m.patterns {
		s = p.ReplaceAllString(s, Mask)
	}
	return s
}

func (m *redactMiddleware) Load(ctx context.Context, id string) (*component.Node, error) {
	return m.next.Load(ctx, id)
}

func (m *redactMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *redactMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
