// Package codec defines the parse/serialize capability shared by every
// textual format of component trees.
//
// Each format lives in its own subpackage (legacy, markup, tree, markdown)
// and implements Codec. Callers pick a codec by Format, usually through
// registry.Registry.
package codec
