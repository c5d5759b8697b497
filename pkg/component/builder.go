package component

// Builder stages content, style, interaction and children, then produces
// immutable Node snapshots. A Builder is not safe for concurrent use.
//
// Methods are chainable. A structurally invalid edit (for example arguments on
// literal text) is rejected without touching the staged state; the error is
// available from Err right away and is returned by Build. Further edits are
// ignored until Reset.
type Builder struct {
	content     Content
	style       Style
	interaction Interaction
	children    []child
	err         error
}

// child is either a finished node or a nested builder built on demand.
type child struct {
	node    *Node
	builder *Builder
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// TextBuilder returns a builder seeded with literal text.
func TextBuilder(text string) *Builder {
	return NewBuilder().Text(text)
}

// Err returns the first rejected edit, if any.
func (b *Builder) Err() error {
	return b.err
}

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// WithContent replaces the staged content.
func (b *Builder) WithContent(c Content) *Builder {
	if b.err != nil {
		return b
	}
	if err := c.validate(); err != nil {
		return b.fail(err)
	}
	b.content = c
	return b
}

// Text stages literal text content.
func (b *Builder) Text(text string) *Builder {
	return b.WithContent(TextContent(text))
}

// Translatable stages translatable content with the given key.
func (b *Builder) Translatable(key string) *Builder {
	if b.err != nil {
		return b
	}
	c, err := NewTranslatableContent(key, "")
	if err != nil {
		return b.fail(err)
	}
	b.content = c
	return b
}

// Fallback sets the fallback text of translatable content.
func (b *Builder) Fallback(text string) *Builder {
	if b.err != nil {
		return b
	}
	if b.content.kind != KindTranslatable {
		return b.fail(&ContentError{Op: "fallback", Kind: b.content.kind, Reason: "fallback requires translatable content"})
	}
	b.content = b.content.WithFallback(text)
	return b
}

// Keybind stages key binding content.
func (b *Builder) Keybind(key string) *Builder {
	return b.WithContent(KeybindContent(key))
}

// Args appends positional arguments to translatable content. Any other
// content kind fails with ErrInvalidContentKind.
func (b *Builder) Args(args ...*Node) *Builder {
	if b.err != nil {
		return b
	}
	merged := make([]*Node, 0, len(b.content.args)+len(args))
	merged = append(merged, b.content.args...)
	merged = append(merged, args...)
	c, err := b.content.WithArgs(merged...)
	if err != nil {
		return b.fail(err)
	}
	b.content = c
	return b
}

// WithStyle replaces the staged style.
func (b *Builder) WithStyle(s Style) *Builder {
	if b.err == nil {
		b.style = s
	}
	return b
}

// MergeStyle fills the staged style's unset attributes from s.
func (b *Builder) MergeStyle(s Style) *Builder {
	if b.err == nil {
		b.style = Merge(b.style, s)
	}
	return b
}

// Color sets the color.
func (b *Builder) Color(c Color) *Builder {
	return b.WithStyle(b.style.WithColor(c))
}

// Decorate sets a decoration state.
func (b *Builder) Decorate(d Decoration, state TriState) *Builder {
	return b.WithStyle(b.style.WithDecoration(d, state))
}

// Bold enables bold.
func (b *Builder) Bold() *Builder { return b.Decorate(Bold, True) }

// Italic enables italic.
func (b *Builder) Italic() *Builder { return b.Decorate(Italic, True) }

// Underlined enables underline.
func (b *Builder) Underlined() *Builder { return b.Decorate(Underlined, True) }

// Strikethrough enables strikethrough.
func (b *Builder) Strikethrough() *Builder { return b.Decorate(Strikethrough, True) }

// Obfuscated enables obfuscation.
func (b *Builder) Obfuscated() *Builder { return b.Decorate(Obfuscated, True) }

// Font sets the font identifier.
func (b *Builder) Font(font string) *Builder {
	return b.WithStyle(b.style.WithFont(font))
}

// Click sets the click behavior.
func (b *Builder) Click(action ClickAction, value string) *Builder {
	if b.err == nil {
		b.interaction.Click = &ClickEvent{Action: action, Value: value}
	}
	return b
}

// HoverText shows a rich text tooltip.
func (b *Builder) HoverText(text *Node) *Builder {
	if b.err != nil {
		return b
	}
	if text == nil {
		return b.fail(&ContentError{Op: "hover", Kind: b.content.kind, Reason: "show_text requires a node"})
	}
	b.interaction.Hover = &HoverEvent{Action: ShowText, Text: text}
	return b
}

// Hover sets a hover behavior carrying an opaque value (show_item, show_entity).
func (b *Builder) Hover(action HoverAction, value string) *Builder {
	if b.err != nil {
		return b
	}
	if action == ShowText {
		return b.HoverText(Text(value))
	}
	b.interaction.Hover = &HoverEvent{Action: action, Value: value}
	return b
}

// WithInteraction replaces the click and hover behavior.
func (b *Builder) WithInteraction(i Interaction) *Builder {
	if b.err == nil {
		b.interaction = i.clone()
	}
	return b
}

// AppendChild appends a finished node.
func (b *Builder) AppendChild(n *Node) *Builder {
	if b.err != nil {
		return b
	}
	if n == nil {
		return b.fail(&ContentError{Op: "append", Kind: b.content.kind, Reason: "child is nil"})
	}
	b.children = append(b.children, child{node: n})
	return b
}

// AppendChildren appends finished nodes in order.
func (b *Builder) AppendChildren(nodes ...*Node) *Builder {
	for _, n := range nodes {
		b.AppendChild(n)
	}
	return b
}

// AppendBuilder appends a nested builder. It is built when the parent is.
// Appending a builder that already contains b, or b itself, fails.
func (b *Builder) AppendBuilder(c *Builder) *Builder {
	if b.err != nil {
		return b
	}
	if c == nil {
		return b.fail(&ContentError{Op: "append", Kind: b.content.kind, Reason: "child builder is nil"})
	}
	if c.reaches(b, make(map[*Builder]bool)) {
		return b.fail(&ContentError{Op: "append", Kind: b.content.kind, Reason: "child builder contains its parent"})
	}
	b.children = append(b.children, child{builder: c})
	return b
}

// reaches reports whether target is b or one of its nested builders.
func (b *Builder) reaches(target *Builder, seen map[*Builder]bool) bool {
	if b == target {
		return true
	}
	if seen[b] {
		return false
	}
	seen[b] = true
	for _, c := range b.children {
		if c.builder != nil && c.builder.reaches(target, seen) {
			return true
		}
	}
	return false
}

// Reset clears all staged state and any recorded error.
func (b *Builder) Reset() *Builder {
	*b = Builder{}
	return b
}

// Build snapshots the staged state into an immutable node. Nested builders
// are built depth-first, children before their parent. The builder keeps its
// state and can be reused.
func (b *Builder) Build() (*Node, error) {
	if b.err != nil {
		return nil, b.err
	}
	n := &Node{
		content:     b.content,
		style:       b.style,
		interaction: b.interaction.clone(),
	}
	n.content.args = copyNodes(b.content.args)
	if len(b.children) > 0 {
		n.children = make([]*Node, 0, len(b.children))
		for _, c := range b.children {
			if c.builder == nil {
				n.children = append(n.children, c.node)
				continue
			}
			built, err := c.builder.Build()
			if err != nil {
				return nil, err
			}
			n.children = append(n.children, built)
		}
	}
	return n, nil
}

// MustBuild is like Build but panics on error. Intended for literals in
// tests and package-level declarations.
func (b *Builder) MustBuild() *Node {
	n, err := b.Build()
	if err != nil {
		panic(err)
	}
	return n
}
