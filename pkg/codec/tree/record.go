package tree

import (
	"fmt"

	"github.com/aretw0/calinea/pkg/component"
)

// Record is the encoded form of a node.
type Record struct {
	Content     ContentRecord      `json:"content" yaml:"content"`
	Style       *StyleRecord       `json:"style,omitempty" yaml:"style,omitempty"`
	Children    []Record           `json:"children,omitempty" yaml:"children,omitempty"`
	Interaction *InteractionRecord `json:"interaction,omitempty" yaml:"interaction,omitempty"`
}

// ContentRecord is the tagged content union. Type is one of text,
// translatable, keybind or empty.
type ContentRecord struct {
	Type     string   `json:"type" yaml:"type"`
	Text     string   `json:"text,omitempty" yaml:"text,omitempty"`
	Key      string   `json:"key,omitempty" yaml:"key,omitempty"`
	Fallback string   `json:"fallback,omitempty" yaml:"fallback,omitempty"`
	Args     []Record `json:"args,omitempty" yaml:"args,omitempty"`
}

// StyleRecord holds the seven optional attributes. Absent decorations are
// unset; false is an explicit off.
type StyleRecord struct {
	Color         string `json:"color,omitempty" yaml:"color,omitempty"`
	Bold          *bool  `json:"bold,omitempty" yaml:"bold,omitempty"`
	Italic        *bool  `json:"italic,omitempty" yaml:"italic,omitempty"`
	Underlined    *bool  `json:"underlined,omitempty" yaml:"underlined,omitempty"`
	Strikethrough *bool  `json:"strikethrough,omitempty" yaml:"strikethrough,omitempty"`
	Obfuscated    *bool  `json:"obfuscated,omitempty" yaml:"obfuscated,omitempty"`
	Font          string `json:"font,omitempty" yaml:"font,omitempty"`
}

// InteractionRecord holds click and hover behavior.
type InteractionRecord struct {
	Click *ClickRecord `json:"click,omitempty" yaml:"click,omitempty"`
	Hover *HoverRecord `json:"hover,omitempty" yaml:"hover,omitempty"`
}

// ClickRecord is a click action and its payload.
type ClickRecord struct {
	Action string `json:"action" yaml:"action"`
	Value  string `json:"value" yaml:"value"`
}

// HoverRecord is a hover action. show_text carries Text, the other actions
// carry Value.
type HoverRecord struct {
	Action string  `json:"action" yaml:"action"`
	Text   *Record `json:"text,omitempty" yaml:"text,omitempty"`
	Value  string  `json:"value,omitempty" yaml:"value,omitempty"`
}

// FromNode encodes a node. A nil node encodes as empty content.
func FromNode(n *component.Node) Record {
	if n == nil {
		return Record{Content: ContentRecord{Type: component.KindEmpty.String()}}
	}
	c := n.Content()
	r := Record{
		Content: ContentRecord{
			Type:     c.Kind().String(),
			Text:     c.Text(),
			Key:      c.Key(),
			Fallback: c.Fallback(),
		},
		Style:       styleRecord(n.Style()),
		Interaction: interactionRecord(n.Interaction()),
	}
	for i := 0; i < c.ArgCount(); i++ {
		r.Content.Args = append(r.Content.Args, FromNode(c.Arg(i)))
	}
	for i := 0; i < n.ChildCount(); i++ {
		r.Children = append(r.Children, FromNode(n.Child(i)))
	}
	return r
}

func styleRecord(s component.Style) *StyleRecord {
	if s.IsEmpty() {
		return nil
	}
	out := &StyleRecord{}
	if c, ok := s.Color(); ok {
		out.Color = c.String()
	}
	out.Font, _ = s.Font()
	for _, d := range component.Decorations {
		st := s.Decoration(d)
		if !st.IsSet() {
			continue
		}
		v := st.Bool()
		*out.decoration(d) = &v
	}
	return out
}

func (s *StyleRecord) decoration(d component.Decoration) **bool {
	switch d {
	case component.Bold:
		return &s.Bold
	case component.Italic:
		return &s.Italic
	case component.Underlined:
		return &s.Underlined
	case component.Strikethrough:
		return &s.Strikethrough
	default:
		return &s.Obfuscated
	}
}

func interactionRecord(i component.Interaction) *InteractionRecord {
	if i.IsEmpty() {
		return nil
	}
	out := &InteractionRecord{}
	if i.Click != nil {
		out.Click = &ClickRecord{Action: string(i.Click.Action), Value: i.Click.Value}
	}
	if i.Hover != nil {
		out.Hover = &HoverRecord{Action: string(i.Hover.Action), Value: i.Hover.Value}
		if i.Hover.Text != nil {
			text := FromNode(i.Hover.Text)
			out.Hover.Text = &text
		}
	}
	return out
}

// DecodeError locates an invalid record by its path from the root, for
// example "children[2].content.args[0]".
type DecodeError struct {
	Path   string
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return e.Reason
	}
	return e.Path + ": " + e.Reason
}

// ToNode decodes a record. In strict mode unknown content types, colors and
// actions are errors; otherwise they are dropped.
func (r Record) ToNode(strict bool) (*component.Node, error) {
	d := decoder{strict: strict}
	return d.node(r, "")
}

type decoder struct {
	strict bool
}

func (d *decoder) fail(path, format string, a ...any) error {
	return &DecodeError{Path: path, Reason: fmt.Sprintf(format, a...)}
}

func join(path, field string) string {
	if path == "" {
		return field
	}
	return path + "." + field
}

func (d *decoder) node(r Record, path string) (*component.Node, error) {
	b := component.NewBuilder()
	if err := d.content(b, r.Content, join(path, "content")); err != nil {
		return nil, err
	}
	style, err := d.style(r.Style, join(path, "style"))
	if err != nil {
		return nil, err
	}
	b.WithStyle(style)
	inter, err := d.interaction(r.Interaction, join(path, "interaction"))
	if err != nil {
		return nil, err
	}
	b.WithInteraction(inter)
	for i, c := range r.Children {
		child, err := d.node(c, fmt.Sprintf("%s[%d]", join(path, "children"), i))
		if err != nil {
			return nil, err
		}
		b.AppendChild(child)
	}
	return b.Build()
}

func (d *decoder) content(b *component.Builder, c ContentRecord, path string) error {
	kind, ok := component.ParseContentKind(c.Type)
	if !ok {
		if d.strict {
			return d.fail(path, "unknown content type %q", c.Type)
		}
		kind = inferKind(c)
	}
	switch kind {
	case component.KindText:
		b.Text(c.Text)
	case component.KindKeybind:
		if c.Key == "" {
			if d.strict {
				return d.fail(path, "keybind requires a key")
			}
			return nil
		}
		b.Keybind(c.Key)
	case component.KindTranslatable:
		if c.Key == "" {
			if d.strict {
				return d.fail(path, "translatable requires a key")
			}
			if c.Fallback != "" {
				b.Text(c.Fallback)
			}
			return nil
		}
		b.Translatable(c.Key).Fallback(c.Fallback)
		for i, a := range c.Args {
			arg, err := d.node(a, fmt.Sprintf("%s.args[%d]", path, i))
			if err != nil {
				return err
			}
			b.Args(arg)
		}
	}
	return b.Err()
}

// inferKind reads records without a usable type by their payload.
func inferKind(c ContentRecord) component.ContentKind {
	switch {
	case c.Key != "" && (len(c.Args) > 0 || c.Fallback != ""):
		return component.KindTranslatable
	case c.Text != "":
		return component.KindText
	}
	return component.KindEmpty
}

func (d *decoder) style(s *StyleRecord, path string) (component.Style, error) {
	out := component.EmptyStyle
	if s == nil {
		return out, nil
	}
	if s.Color != "" {
		c, err := component.ParseColor(s.Color)
		switch {
		case err == nil:
			out = out.WithColor(c)
		case d.strict:
			return out, d.fail(join(path, "color"), "%v", err)
		}
	}
	for _, dec := range component.Decorations {
		if v := *s.decoration(dec); v != nil {
			out = out.WithDecoration(dec, component.Of(*v))
		}
	}
	return out.WithFont(s.Font), nil
}

func (d *decoder) interaction(r *InteractionRecord, path string) (component.Interaction, error) {
	var out component.Interaction
	if r == nil {
		return out, nil
	}
	if r.Click != nil {
		action, err := component.ParseClickAction(r.Click.Action)
		switch {
		case err == nil:
			out.Click = &component.ClickEvent{Action: action, Value: r.Click.Value}
		case d.strict:
			return out, d.fail(join(path, "click.action"), "%v", err)
		}
	}
	if r.Hover != nil {
		action, err := component.ParseHoverAction(r.Hover.Action)
		switch {
		case err != nil && d.strict:
			return out, d.fail(join(path, "hover.action"), "%v", err)
		case err != nil:
		case action == component.ShowText:
			if r.Hover.Text == nil {
				if d.strict {
					return out, d.fail(join(path, "hover.text"), "show_text requires text")
				}
				break
			}
			text, err := d.node(*r.Hover.Text, join(path, "hover.text"))
			if err != nil {
				return out, err
			}
			out.Hover = &component.HoverEvent{Action: action, Text: text}
		default:
			out.Hover = &component.HoverEvent{Action: action, Value: r.Hover.Value}
		}
	}
	return out, nil
}
