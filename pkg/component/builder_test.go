package component

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Fluent(t *testing.T) {
	node, err := NewBuilder().
		Text("Hello ").
		Color(Gold).
		Bold().
		Click(RunCommand, "/spawn").
		AppendChild(Text("World", EmptyStyle.WithDecoration(Bold, False))).
		AppendBuilder(TextBuilder("!").Italic()).
		Build()
	require.NoError(t, err)

	assert.Equal(t, KindText, node.Kind())
	assert.Equal(t, "Hello ", node.Content().Text())
	assert.Equal(t, 2, node.ChildCount())
	assert.Equal(t, "World", node.Child(0).Content().Text())
	assert.True(t, node.Child(1).Style().HasDecoration(Italic))
	require.NotNil(t, node.Interaction().Click)
	assert.Equal(t, RunCommand, node.Interaction().Click.Action)
}

func TestBuilder_ArgsOnTextFailsFast(t *testing.T) {
	b := TextBuilder("plain").Color(Red)
	b.Args(Text("x"))

	require.Error(t, b.Err())
	assert.True(t, errors.Is(b.Err(), ErrInvalidContentKind))

	// Edits after the failure are ignored and the staged state is untouched.
	b.Bold()
	_, err := b.Build()
	assert.ErrorIs(t, err, ErrInvalidContentKind)

	var ce *ContentError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "args", ce.Op)
	assert.Equal(t, KindText, ce.Kind)

	b.Reset()
	assert.NoError(t, b.Err())
	n, err := b.Build()
	require.NoError(t, err)
	assert.True(t, n.Equal(Empty()))
}

func TestBuilder_TranslatableRequiresKey(t *testing.T) {
	_, err := NewBuilder().Translatable("").Build()
	assert.ErrorIs(t, err, ErrInvalidContentKind)

	_, err = NewBuilder().Keybind("").Build()
	assert.ErrorIs(t, err, ErrInvalidContentKind)

	_, err = NewBuilder().Text("x").Fallback("y").Build()
	assert.ErrorIs(t, err, ErrInvalidContentKind)
}

func TestBuilder_TranslatableArgs(t *testing.T) {
	n, err := NewBuilder().
		Translatable("chat.type.text").
		Fallback("<%s> %s").
		Args(Text("Steve")).
		Args(Text("hi", NewStyle(Gray))).
		Build()
	require.NoError(t, err)

	c := n.Content()
	assert.Equal(t, "chat.type.text", c.Key())
	assert.Equal(t, "<%s> %s", c.Fallback())
	require.Equal(t, 2, c.ArgCount())
	assert.Equal(t, "Steve", c.Arg(0).Content().Text())
}

func TestBuilder_NilChildRejected(t *testing.T) {
	_, err := NewBuilder().AppendChild(nil).Build()
	assert.ErrorIs(t, err, ErrInvalidContentKind)
}

func TestBuilder_ReusableAfterBuild(t *testing.T) {
	b := TextBuilder("a").AppendChild(Text("b"))
	first := b.MustBuild()

	b.AppendChild(Text("c"))
	second := b.MustBuild()

	assert.Equal(t, 1, first.ChildCount(), "a built node must not see later builder edits")
	assert.Equal(t, 2, second.ChildCount())
}

func TestBuilder_NestedBuildersBuiltDepthFirst(t *testing.T) {
	inner := TextBuilder("inner").Args(Text("bad"))
	_, err := NewBuilder().AppendBuilder(TextBuilder("ok")).AppendBuilder(inner).Build()
	assert.ErrorIs(t, err, ErrInvalidContentKind)
}

func TestBuilder_CyclesRejected(t *testing.T) {
	self := TextBuilder("loop")
	_, err := self.AppendBuilder(self).Build()
	assert.ErrorIs(t, err, ErrInvalidContentKind)

	a := TextBuilder("a")
	b := TextBuilder("b").AppendBuilder(TextBuilder("c").AppendBuilder(a))
	a.AppendBuilder(b)
	_, err = a.Build()
	assert.ErrorIs(t, err, ErrInvalidContentKind)
	assert.Contains(t, err.Error(), "contains its parent")

	shared := TextBuilder("x")
	n, err := NewBuilder().AppendBuilder(shared).AppendBuilder(shared).Build()
	require.NoError(t, err, "a builder may be appended twice without forming a cycle")
	assert.Equal(t, 2, n.ChildCount())
}

func TestNode_ToBuilderRoundTrip(t *testing.T) {
	orig := NewBuilder().Text("x").Underlined().HoverText(Text("tip")).AppendChild(Text("y")).MustBuild()
	copied := orig.ToBuilder().MustBuild()
	assert.True(t, orig.Equal(copied))
	assert.NotSame(t, orig, copied)
}
