package game

import "strconv"

// Action identifies one of the legal choices in a state.
type Action struct {
	Code   int  `json:"code"`
	Random bool `json:"random,omitempty"` // picked by exploration rather than search
}

func NewAction(code int) Action {
	return Action{Code: code}
}

// RandomAction marks code as a randomly selected action.
func RandomAction(code int) Action {
	return Action{Code: code, Random: true}
}

// Equal compares codes only; how the action was selected does not matter.
func (a Action) Equal(other Action) bool {
	return a.Code == other.Code
}

func (a Action) String() string {
	if a.Random {
		return strconv.Itoa(a.Code) + "*"
	}
	return strconv.Itoa(a.Code)
}
