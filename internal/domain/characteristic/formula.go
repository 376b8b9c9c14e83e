package characteristic

import "fmt"

// Formula builds the dice-pool formula for a resolved characteristic: one die
// per point of the final value, plus a flat modifier.
func Formula(r *Resolution, sides, modifier int) string {
	count := 1
	if r != nil {
		count = r.Final
	}
	if sides < 1 {
		sides = 6
	}

	switch {
	case modifier > 0:
		return fmt.Sprintf("%dd%d+%d", count, sides, modifier)
	case modifier < 0:
		return fmt.Sprintf("%dd%d-%d", count, sides, -modifier)
	default:
		return fmt.Sprintf("%dd%d", count, sides)
	}
}
