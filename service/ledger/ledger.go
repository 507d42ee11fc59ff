// Package ledger is the pure invariant engine behind every stock change.
// Given an action and a user-supplied magnitude it computes the signed delta
// actually applied, validates that stock never goes negative, and synthesizes
// the movement note. No side effects; everything here is deterministic.
package ledger

import (
	"fmt"
	"strings"

	"toolledger.GO/core/apperr"
	toolEntity "toolledger.GO/model/entity/tool"
)

// NoteInitialStock is the note recorded for the synthetic IN movement
// emitted when a tool is created with a non-zero quantity.
const NoteInitialStock = "initial stock"

// ComputeTransition turns a requested action into the signed delta and the
// resulting quantity. For IN/OUT the magnitude is the amount to add/remove
// (must be > 0); for ADJUST it is the absolute target quantity (must be >= 0).
//
// Fails fast with no partial state:
//   - INVALID_DELTA for a malformed magnitude,
//   - INSUFFICIENT_STOCK when the result would go negative,
//   - NO_CHANGE when the computed delta is zero.
func ComputeTransition(action toolEntity.Action, magnitude, current int64) (delta, newQty int64, err error) {
	switch action {
	case toolEntity.ActionIn, toolEntity.ActionOut:
		if magnitude <= 0 {
			return 0, 0, apperr.InvalidDelta("IN/OUT requires delta > 0")
		}
	case toolEntity.ActionAdjust:
		if magnitude < 0 {
			return 0, 0, apperr.InvalidDelta("ADJUST requires delta >= 0 (target quantity)")
		}
	default:
		return 0, 0, apperr.BadRequest(apperr.CodeInvalidAction, fmt.Sprintf("unknown action %q", action))
	}

	switch action {
	case toolEntity.ActionIn:
		delta = magnitude
		newQty = current + magnitude
	case toolEntity.ActionOut:
		delta = -magnitude
		newQty = current - magnitude
	case toolEntity.ActionAdjust:
		// magnitude is the target quantity
		newQty = magnitude
		delta = newQty - current
	}

	if newQty < 0 {
		return 0, 0, apperr.InsufficientStock(current, magnitude)
	}
	if delta == 0 {
		return 0, 0, apperr.NoChange()
	}
	return delta, newQty, nil
}

// BuildNote returns the user's note when non-empty after trimming, otherwise
// a generated one derived from the transition. Pure function of its inputs.
func BuildNote(action toolEntity.Action, magnitude, oldQty, newQty int64, userNote string) string {
	if clean := strings.TrimSpace(userNote); clean != "" {
		return clean
	}

	switch action {
	case toolEntity.ActionIn:
		return fmt.Sprintf("stock in +%d (%d->%d)", magnitude, oldQty, newQty)
	case toolEntity.ActionOut:
		return fmt.Sprintf("stock out %d (%d->%d)", magnitude, oldQty, newQty)
	default:
		// ADJUST: magnitude is the target quantity
		return fmt.Sprintf("adjusted to %d (%d->%d)", magnitude, oldQty, newQty)
	}
}
