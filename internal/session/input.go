package session

// InputType discriminates the semantic player inputs. Raw pointer and key
// events are decoded into these by the host before they reach a simulator.
type InputType string

const (
	// InputSelect picks a discrete item (card, cell, candidate, symbol slot).
	InputSelect InputType = "select"
	// InputMove steps the player one cell in a direction.
	InputMove InputType = "move"
	// InputPointer reports a normalized pointer position in [0,1]².
	InputPointer InputType = "pointer"
	// InputSubmit commits an assembled guess.
	InputSubmit InputType = "submit"
	// InputReveal requests the next clue in a deduction game.
	InputReveal InputType = "reveal"
)

// Direction is a discrete movement direction.
type Direction string

const (
	DirUp    Direction = "up"
	DirDown  Direction = "down"
	DirLeft  Direction = "left"
	DirRight Direction = "right"
)

// Input is one decoded player action. Which fields are meaningful depends
// on Type; simulators ignore the rest.
type Input struct {
	Type      InputType `json:"type"`
	Index     int       `json:"index,omitempty"`
	Direction Direction `json:"direction,omitempty"`
	X         float64   `json:"x,omitempty"`
	Y         float64   `json:"y,omitempty"`
}
