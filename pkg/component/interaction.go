package component

import "fmt"

// ClickAction is the behavior triggered when text is clicked.
type ClickAction string

const (
	OpenURL         ClickAction = "open_url"
	RunCommand      ClickAction = "run_command"
	SuggestCommand  ClickAction = "suggest_command"
	ChangePage      ClickAction = "change_page"
	CopyToClipboard ClickAction = "copy_to_clipboard"
)

// ClickActions lists the supported click actions.
var ClickActions = []ClickAction{OpenURL, RunCommand, SuggestCommand, ChangePage, CopyToClipboard}

// ParseClickAction validates a click action name.
func ParseClickAction(name string) (ClickAction, error) {
	for _, a := range ClickActions {
		if string(a) == name {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown click action %q", name)
}

// HoverAction is the kind of tooltip shown on hover.
type HoverAction string

const (
	ShowText   HoverAction = "show_text"
	ShowItem   HoverAction = "show_item"
	ShowEntity HoverAction = "show_entity"
)

// ParseHoverAction validates a hover action name.
func ParseHoverAction(name string) (HoverAction, error) {
	switch HoverAction(name) {
	case ShowText, ShowItem, ShowEntity:
		return HoverAction(name), nil
	}
	return "", fmt.Errorf("unknown hover action %q", name)
}

// ClickEvent is a click action with its payload.
type ClickEvent struct {
	Action ClickAction
	Value  string
}

// HoverEvent is a hover action. ShowText carries a rich Text node, the other
// actions carry an opaque Value.
type HoverEvent struct {
	Action HoverAction
	Text   *Node
	Value  string
}

// Equal compares hover events, recursing into the text node.
func (h HoverEvent) Equal(o HoverEvent) bool {
	return h.Action == o.Action && h.Value == o.Value && h.Text.Equal(o.Text)
}

// Interaction groups the optional click and hover behaviors of a node.
type Interaction struct {
	Click *ClickEvent
	Hover *HoverEvent
}

// IsEmpty reports whether no behavior is attached.
func (i Interaction) IsEmpty() bool {
	return i.Click == nil && i.Hover == nil
}

// Equal compares interactions structurally.
func (i Interaction) Equal(o Interaction) bool {
	if (i.Click == nil) != (o.Click == nil) || (i.Hover == nil) != (o.Hover == nil) {
		return false
	}
	if i.Click != nil && *i.Click != *o.Click {
		return false
	}
	if i.Hover != nil && !i.Hover.Equal(*o.Hover) {
		return false
	}
	return true
}

// clone copies the event structs so callers cannot mutate a built node.
func (i Interaction) clone() Interaction {
	out := Interaction{}
	if i.Click != nil {
		c := *i.Click
		out.Click = &c
	}
	if i.Hover != nil {
		h := *i.Hover
		out.Hover = &h
	}
	return out
}
