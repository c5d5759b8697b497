/*
Package component contains the styled-text tree model used across Calinea.

A Node is an immutable tree element carrying content (literal text, a
translatable key with arguments, a keybind or an empty structural marker), a
Style, an ordered list of children and optional interaction metadata. Nodes are
produced by a Builder, by codec parsers or by transforms, and can be shared
freely between goroutines once built.

# Key Entities

  - Style: seven optional attributes (color, five decorations, font). An unset
    attribute inherits from the parent.
  - Node: the immutable tree element. Equality is structural (Node.Equal).
  - Builder: a mutable staging area that produces Node snapshots.
  - Resolve / WalkEffective: compute effective styles across the ancestor chain.
*/
package component
