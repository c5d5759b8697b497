package component

// TriState is a boolean that may also be unset. Unset means "inherit from the
// parent", False is an explicit value that overrides an inherited True.
type TriState uint8

const (
	Unset TriState = iota
	True
	False
)

// Of converts a bool into a set TriState.
func Of(b bool) TriState {
	if b {
		return True
	}
	return False
}

// IsSet reports whether the state carries a value.
func (t TriState) IsSet() bool {
	return t != Unset
}

// Bool returns the value, treating Unset as false.
func (t TriState) Bool() bool {
	return t == True
}

func (t TriState) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unset"
	}
}
