package markup

import (
	"fmt"
	"strings"

	"github.com/aretw0/calinea/pkg/component"
)

// tagKind groups tags by how the parser treats them.
type tagKind uint8

const (
	kindStyle tagKind = iota
	kindInsert
	kindReset
)

// resolved is the meaning of an opening tag.
type resolved struct {
	kind tagKind
	// canonical is the name a closing tag may use besides the raw one.
	canonical   string
	style       component.Style
	interaction component.Interaction
	insert      *component.Node
}

type tagFunc func(p *parser, name string, args []string) (resolved, error)

var decorationAliases = map[string]component.Decoration{
	"bold":          component.Bold,
	"b":             component.Bold,
	"italic":        component.Italic,
	"i":             component.Italic,
	"em":            component.Italic,
	"underlined":    component.Underlined,
	"u":             component.Underlined,
	"strikethrough": component.Strikethrough,
	"st":            component.Strikethrough,
	"obfuscated":    component.Obfuscated,
	"obf":           component.Obfuscated,
}

var colorAliases = map[string]string{
	"grey":      "gray",
	"dark_grey": "dark_gray",
}

var tags map[string]tagFunc

func init() {
	tags = map[string]tagFunc{
		"color":     colorTag,
		"colour":    colorTag,
		"c":         colorTag,
		"font":      fontTag,
		"click":     clickTag,
		"hover":     hoverTag,
		"lang":      langTag(false),
		"tr":        langTag(false),
		"translate": langTag(false),
		"lang_or":   langTag(true),
		"tr_or":     langTag(true),
		"key":       keyTag,
		"newline":   newlineTag,
		"br":        newlineTag,
		"reset":     resetTag,
	}
}

// lookup resolves a tag name. Colors, decorations and their negations are
// matched before the fixed table.
func lookup(name string) (tagFunc, bool) {
	if fn, ok := tags[name]; ok {
		return fn, true
	}
	if strings.HasPrefix(name, "#") {
		return namedColorTag, true
	}
	if _, ok := decorationAliases[strings.TrimPrefix(name, "!")]; ok {
		return decorationTag, true
	}
	if _, err := component.ParseColor(colorName(name)); err == nil {
		return namedColorTag, true
	}
	return nil, false
}

func colorName(name string) string {
	if alias, ok := colorAliases[name]; ok {
		return alias
	}
	return name
}

// argError marks a known tag with unusable arguments.
type argError struct {
	msg string
}

func (e *argError) Error() string { return e.msg }

func badArg(format string, a ...any) error {
	return &argError{msg: fmt.Sprintf(format, a...)}
}

func styleOf(canonical string, s component.Style) resolved {
	return resolved{kind: kindStyle, canonical: canonical, style: s}
}

func namedColorTag(_ *parser, name string, _ []string) (resolved, error) {
	c, err := component.ParseColor(colorName(name))
	if err != nil {
		return resolved{}, badArg("%v", err)
	}
	return styleOf("color", component.EmptyStyle.WithColor(c)), nil
}

func colorTag(_ *parser, _ string, args []string) (resolved, error) {
	if len(args) != 1 {
		return resolved{}, badArg("color takes one argument")
	}
	c, err := component.ParseColor(colorName(strings.ToLower(args[0])))
	if err != nil {
		return resolved{}, badArg("%v", err)
	}
	return styleOf("color", component.EmptyStyle.WithColor(c)), nil
}

func decorationTag(_ *parser, name string, args []string) (resolved, error) {
	negated := strings.HasPrefix(name, "!")
	d := decorationAliases[strings.TrimPrefix(name, "!")]
	state := component.True
	if negated {
		state = component.False
	}
	if len(args) > 0 {
		switch strings.ToLower(args[0]) {
		case "true":
		case "false":
			state = component.False
		default:
			return resolved{}, badArg("%s takes true or false", d)
		}
	}
	return styleOf(d.String(), component.EmptyStyle.WithDecoration(d, state)), nil
}

func fontTag(_ *parser, _ string, args []string) (resolved, error) {
	font := strings.Join(args, ":")
	if font == "" {
		return resolved{}, badArg("font requires an identifier")
	}
	return styleOf("font", component.EmptyStyle.WithFont(font)), nil
}

func clickTag(_ *parser, _ string, args []string) (resolved, error) {
	if len(args) < 2 {
		return resolved{}, badArg("click requires an action and a value")
	}
	action, err := component.ParseClickAction(strings.ToLower(args[0]))
	if err != nil {
		return resolved{}, badArg("%v", err)
	}
	return resolved{
		kind:        kindStyle,
		canonical:   "click",
		interaction: component.Interaction{Click: &component.ClickEvent{Action: action, Value: strings.Join(args[1:], ":")}},
	}, nil
}

func hoverTag(p *parser, _ string, args []string) (resolved, error) {
	if len(args) < 2 {
		return resolved{}, badArg("hover requires an action and a value")
	}
	action, err := component.ParseHoverAction(strings.ToLower(args[0]))
	if err != nil {
		return resolved{}, badArg("%v", err)
	}
	value := strings.Join(args[1:], ":")
	ev := &component.HoverEvent{Action: action}
	if action == component.ShowText {
		text, err := p.nested(value)
		if err != nil {
			return resolved{}, err
		}
		ev.Text = text
	} else {
		ev.Value = value
	}
	return resolved{kind: kindStyle, canonical: "hover", interaction: component.Interaction{Hover: ev}}, nil
}

func langTag(withFallback bool) tagFunc {
	return func(p *parser, name string, args []string) (resolved, error) {
		if len(args) == 0 || args[0] == "" {
			return resolved{}, badArg("%s requires a key", name)
		}
		b := component.NewBuilder().Translatable(args[0])
		rest := args[1:]
		if withFallback {
			if len(rest) == 0 {
				return resolved{}, badArg("%s requires a fallback", name)
			}
			b.Fallback(rest[0])
			rest = rest[1:]
		}
		for _, a := range rest {
			arg, err := p.nested(a)
			if err != nil {
				return resolved{}, err
			}
			b.Args(arg)
		}
		n, err := b.Build()
		if err != nil {
			return resolved{}, badArg("%v", err)
		}
		return resolved{kind: kindInsert, insert: n}, nil
	}
}

func keyTag(_ *parser, _ string, args []string) (resolved, error) {
	if len(args) == 0 || args[0] == "" {
		return resolved{}, badArg("key requires an identifier")
	}
	return resolved{kind: kindInsert, insert: component.Keybind(strings.Join(args, ":"))}, nil
}

func newlineTag(_ *parser, _ string, _ []string) (resolved, error) {
	return resolved{kind: kindInsert, insert: component.Newline()}, nil
}

func resetTag(_ *parser, _ string, _ []string) (resolved, error) {
	return resolved{kind: kindReset}, nil
}
