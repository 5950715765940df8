package shared

import (
	"errors"
	"fmt"
)

// ErrRotationTarget is returned when a rotation target is not in the order.
// This is a bookkeeping bug, not a user error; callers treat it as fatal.
var ErrRotationTarget = errors.New("rotation target not found in player order")

// RotateDealer moves the front player to the back, shifting the deal
// clockwise. No-op on an empty order.
func RotateDealer(order []*Player) []*Player {
	if len(order) == 0 {
		return order
	}
	return append(order[1:], order[0])
}

// RotateToWinner rotates front-to-back until the winner sits at position 0,
// preserving all other relative orderings.
func RotateToWinner(order []*Player, winner *Player) ([]*Player, error) {
	found := false
	for _, p := range order {
		if p == winner {
			found = true
			break
		}
	}
	if !found {
		return order, fmt.Errorf("%w: %s", ErrRotationTarget, winner.Name)
	}
	for order[0] != winner {
		order = append(order[1:], order[0])
	}
	return order, nil
}
