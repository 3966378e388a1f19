package creditcard

import "fmt"

// State is the validity of a single form field for its current text.
type State int

const (
	StateEmpty State = iota
	StatePartial
	StateValid
	StateInvalid
)

var stateNames = map[State]string{
	StateEmpty:   "empty",
	StatePartial: "partial",
	StateValid:   "valid",
	StateInvalid: "invalid",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	for state, name := range stateNames {
		if name == string(text) {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown field state %q", text)
}
