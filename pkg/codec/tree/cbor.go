package tree

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/aretw0/calinea/pkg/component"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("tree: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("tree: CBOR decoder initialization failed: " + err.Error())
	}
}

// MarshalCBOR encodes a node as Core Deterministic CBOR: equal trees always
// produce identical bytes.
func MarshalCBOR(n *component.Node) ([]byte, error) {
	return encMode.Marshal(FromNode(n))
}

// UnmarshalCBOR decodes a node written by MarshalCBOR. Records are checked
// strictly since stored data is expected to be well formed.
func UnmarshalCBOR(data []byte) (*component.Node, error) {
	var rec Record
	if err := decMode.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return rec.ToNode(true)
}
