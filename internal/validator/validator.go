// Package validator lints component trees against a resource pack.
package validator

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/aretw0/calinea/pkg/component"
	"github.com/aretw0/calinea/pkg/pack"
	"github.com/aretw0/calinea/pkg/translate"
)

// Severity ranks an Issue.
type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Issue is a single lint finding. Path locates the node: child indexes
// joined by dots, with "args[i]" and "hover" steps into content and tooltips.
type Issue struct {
	Path     string
	Severity Severity
	Message  string
}

func (i Issue) String() string {
	path := i.Path
	if path == "" {
		path = "root"
	}
	return fmt.Sprintf("%s: %s: %s", path, i.Severity, i.Message)
}

// Linter checks trees against the pack data a client would render them with.
// Checks needing pack data are skipped when the pack has none of that kind.
type Linter struct {
	pack       *pack.Pack
	translator *translate.Translator
}

// New creates a linter. A nil pack disables the pack-based checks.
func New(p *pack.Pack, opts ...translate.Option) *Linter {
	if p == nil {
		p = pack.New()
	}
	return &Linter{pack: p, translator: translate.New(p, opts...)}
}

// Lint returns every issue found in root, in document order.
func (l *Linter) Lint(root *component.Node) []Issue {
	var issues []Issue
	if root != nil {
		l.node(root, "", &issues)
	}
	return issues
}

func join(path, step string) string {
	if path == "" {
		return step
	}
	return path + "." + step
}

func (l *Linter) node(n *component.Node, path string, issues *[]Issue) {
	report := func(sev Severity, format string, a ...any) {
		*issues = append(*issues, Issue{Path: path, Severity: sev, Message: fmt.Sprintf(format, a...)})
	}

	c := n.Content()
	switch c.Kind() {
	case component.KindTranslatable:
		l.translatable(c, report)
		for i := 0; i < c.ArgCount(); i++ {
			l.node(c.Arg(i), join(path, fmt.Sprintf("args[%d]", i)), issues)
		}
	case component.KindKeybind:
		if len(l.pack.Keybinds()) > 0 {
			if _, ok := l.pack.KeybindName(c.Key()); !ok {
				report(Warning, "unknown keybind %q", c.Key())
			}
		}
	}

	if font, ok := n.Style().Font(); ok && len(l.pack.Fonts()) > 0 {
		if _, known := l.pack.Font(font); !known {
			report(Warning, "font %q is not in the pack", pack.NormalizeKey(font))
		}
	}

	inter := n.Interaction()
	if click := inter.Click; click != nil {
		if msg := checkClick(click); msg != "" {
			report(Error, "%s", msg)
		}
	}
	if hover := inter.Hover; hover != nil && hover.Text != nil {
		l.node(hover.Text, join(path, "hover"), issues)
	}

	for i := 0; i < n.ChildCount(); i++ {
		l.node(n.Child(i), join(path, strconv.Itoa(i)), issues)
	}
}

func (l *Linter) translatable(c component.Content, report func(Severity, string, ...any)) {
	pattern, found := l.translator.Lookup(c.Key())
	if !found {
		if len(l.pack.Languages()) > 0 && c.Fallback() == "" {
			report(Warning, "translation %q missing for %s", c.Key(), l.translator.Language())
		}
		if c.Fallback() == "" {
			return
		}
		pattern = c.Fallback()
	}
	want, got := translate.ArgCount(pattern), c.ArgCount()
	switch {
	case got < want:
		report(Error, "translation %q needs %d arguments, got %d", c.Key(), want, got)
	case got > want:
		report(Warning, "translation %q ignores %d of its %d arguments", c.Key(), got-want, got)
	}
}

func checkClick(click *component.ClickEvent) string {
	switch click.Action {
	case component.OpenURL:
		u, err := url.Parse(click.Value)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Sprintf("open_url needs an absolute http(s) URL, got %q", click.Value)
		}
	case component.RunCommand, component.SuggestCommand, component.CopyToClipboard:
		if strings.TrimSpace(click.Value) == "" {
			return fmt.Sprintf("%s has an empty value", click.Action)
		}
	case component.ChangePage:
		if n, err := strconv.Atoi(click.Value); err != nil || n < 1 {
			return fmt.Sprintf("change_page needs a positive page number, got %q", click.Value)
		}
	}
	return ""
}

// ErrLint is wrapped by Check when issues of Error severity exist.
var ErrLint = errors.New("lint failed")

// Check returns an error listing the Error-severity issues, or nil.
func Check(issues []Issue) error {
	var errs []string
	for _, i := range issues {
		if i.Severity == Error {
			errs = append(errs, i.String())
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: found %d errors:\n- %s", ErrLint, len(errs), strings.Join(errs, "\n- "))
}
