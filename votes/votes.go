// Package votes holds the pure vote-reconciliation rules shared by the
// community repository and the API layer. The repository applies them inside
// a MongoDB transaction; nothing outside that transaction may touch the
// aggregate counters.
package votes

// Direction is a voter's stance on a community entry.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
	None Direction = ""
)

// Parse validates a wire value. Only "up" and "down" are accepted as
// requested directions; anything else is rejected.
func Parse(s string) (Direction, bool) {
	switch Direction(s) {
	case Up, Down:
		return Direction(s), true
	default:
		return None, false
	}
}

// Next computes the effective next state for a voter: requesting the same
// direction again retracts the vote, anything else switches to it.
func Next(prev, requested Direction) Direction {
	if prev == requested {
		return None
	}
	return requested
}

// AdjustCounts moves the aggregate counters from the prev state to the next
// state. Exactly one unit moves per changed side; counts never go below zero.
func AdjustCounts(prev, next Direction, support, dispute int) (int, int) {
	if prev == Up {
		support--
	}
	if prev == Down {
		dispute--
	}
	if support < 0 {
		support = 0
	}
	if dispute < 0 {
		dispute = 0
	}

	if next == Up {
		support++
	}
	if next == Down {
		dispute++
	}
	return support, dispute
}
