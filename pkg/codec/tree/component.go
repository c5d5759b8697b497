package tree

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/calinea/pkg/component"
)

// Component wraps a node for embedding in JSON, YAML or CBOR documents.
// Decoding is lenient.
type Component struct {
	Node *component.Node
}

// Wrap returns a Component for n.
func Wrap(n *component.Node) Component {
	return Component{Node: n}
}

// MarshalJSON implements json.Marshaler.
func (c Component) MarshalJSON() ([]byte, error) {
	return json.Marshal(FromNode(c.Node))
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Component) UnmarshalJSON(data []byte) error {
	n, err := NewJSON().Parse(string(data))
	if err != nil {
		return err
	}
	c.Node = n
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (c Component) MarshalYAML() (any, error) {
	return FromNode(c.Node), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Component) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		c.Node = component.Text(value.Value)
		return nil
	}
	var rec Record
	if err := value.Decode(&rec); err != nil {
		return err
	}
	n, err := rec.ToNode(false)
	if err != nil {
		return err
	}
	c.Node = n
	return nil
}

// MarshalCBOR implements cbor.Marshaler.
func (c Component) MarshalCBOR() ([]byte, error) {
	return MarshalCBOR(c.Node)
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (c *Component) UnmarshalCBOR(data []byte) error {
	n, err := UnmarshalCBOR(data)
	if err != nil {
		return err
	}
	c.Node = n
	return nil
}
