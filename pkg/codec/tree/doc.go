// Package tree implements the generic tree encoding: one record per node
// mirroring the component model, with content, style, children and
// interaction. It is the lossless interchange and storage format.
//
// Records are available as JSON (JSON), YAML (YAML) and CBOR (MarshalCBOR,
// UnmarshalCBOR). Component wraps a node so it can be embedded in larger
// JSON or YAML documents.
package tree
