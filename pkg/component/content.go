package component

import "fmt"

// ContentKind discriminates the payload of a node.
type ContentKind uint8

const (
	// KindEmpty is a structural marker with no payload of its own.
	KindEmpty ContentKind = iota
	// KindText is a literal string.
	KindText
	// KindTranslatable is a translation key rendered by the client, with
	// positional argument nodes.
	KindTranslatable
	// KindKeybind is a client key binding identifier (e.g. "key.jump").
	KindKeybind
)

var kindNames = map[ContentKind]string{
	KindEmpty:        "empty",
	KindText:         "text",
	KindTranslatable: "translatable",
	KindKeybind:      "keybind",
}

func (k ContentKind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseContentKind resolves a kind by name.
func ParseContentKind(name string) (ContentKind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Content is the payload of a node. The zero value is empty content.
type Content struct {
	kind     ContentKind
	text     string
	key      string
	fallback string
	args     []*Node
}

// EmptyContent returns the structural marker content.
func EmptyContent() Content {
	return Content{}
}

// TextContent returns literal text content.
func TextContent(text string) Content {
	return Content{kind: KindText, text: text}
}

// TranslatableContent returns translatable content. The key must not be
// empty; use NewTranslatableContent to get an error instead of an invalid value.
func TranslatableContent(key string, args ...*Node) Content {
	return Content{kind: KindTranslatable, key: key, args: copyNodes(args)}
}

// NewTranslatableContent validates the key and arguments.
func NewTranslatableContent(key, fallback string, args ...*Node) (Content, error) {
	if key == "" {
		return Content{}, &ContentError{Op: "translatable", Kind: KindTranslatable, Reason: "key is required"}
	}
	for i, a := range args {
		if a == nil {
			return Content{}, &ContentError{Op: "translatable", Kind: KindTranslatable, Reason: fmt.Sprintf("argument %d is nil", i)}
		}
	}
	return Content{kind: KindTranslatable, key: key, fallback: fallback, args: copyNodes(args)}, nil
}

// KeybindContent returns key binding content.
func KeybindContent(key string) Content {
	return Content{kind: KindKeybind, key: key}
}

// Kind returns the content discriminator.
func (c Content) Kind() ContentKind { return c.kind }

// Text returns the literal text of KindText content.
func (c Content) Text() string { return c.text }

// Key returns the translation or keybind key.
func (c Content) Key() string { return c.key }

// Fallback returns the translatable fallback text, if any.
func (c Content) Fallback() string { return c.fallback }

// Args returns a copy of the translatable arguments.
func (c Content) Args() []*Node { return copyNodes(c.args) }

// ArgCount returns the number of translatable arguments.
func (c Content) ArgCount() int { return len(c.args) }

// Arg returns the i-th argument.
func (c Content) Arg(i int) *Node { return c.args[i] }

// IsEmpty reports whether the content is the structural marker.
func (c Content) IsEmpty() bool { return c.kind == KindEmpty }

// WithFallback returns a copy with the fallback text set. It is ignored for
// non-translatable content.
func (c Content) WithFallback(fallback string) Content {
	if c.kind == KindTranslatable {
		c.fallback = fallback
	}
	return c
}

// WithArgs returns a copy with the arguments replaced. Only translatable
// content accepts arguments.
func (c Content) WithArgs(args ...*Node) (Content, error) {
	if c.kind != KindTranslatable {
		return c, &ContentError{Op: "args", Kind: c.kind, Reason: "arguments require translatable content"}
	}
	for i, a := range args {
		if a == nil {
			return c, &ContentError{Op: "args", Kind: c.kind, Reason: fmt.Sprintf("argument %d is nil", i)}
		}
	}
	c.args = copyNodes(args)
	return c, nil
}

// Equal reports structural equality, recursing into arguments.
func (c Content) Equal(o Content) bool {
	if c.kind != o.kind || c.text != o.text || c.key != o.key || c.fallback != o.fallback {
		return false
	}
	return nodesEqual(c.args, o.args)
}

func (c Content) validate() error {
	switch c.kind {
	case KindEmpty, KindText:
		if len(c.args) > 0 {
			return &ContentError{Op: "content", Kind: c.kind, Reason: "arguments require translatable content"}
		}
	case KindTranslatable:
		if c.key == "" {
			return &ContentError{Op: "content", Kind: c.kind, Reason: "key is required"}
		}
	case KindKeybind:
		if c.key == "" {
			return &ContentError{Op: "content", Kind: c.kind, Reason: "key is required"}
		}
		if len(c.args) > 0 {
			return &ContentError{Op: "content", Kind: c.kind, Reason: "arguments require translatable content"}
		}
	default:
		return &ContentError{Op: "content", Kind: c.kind, Reason: "unknown content kind"}
	}
	return nil
}

func (c Content) String() string {
	switch c.kind {
	case KindText:
		return fmt.Sprintf("text(%q)", c.text)
	case KindTranslatable:
		return fmt.Sprintf("translatable(%q, %d args)", c.key, len(c.args))
	case KindKeybind:
		return fmt.Sprintf("keybind(%q)", c.key)
	default:
		return "empty"
	}
}

func copyNodes(nodes []*Node) []*Node {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]*Node, len(nodes))
	copy(out, nodes)
	return out
}
