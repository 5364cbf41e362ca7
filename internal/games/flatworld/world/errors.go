package world

import "errors"

// Errors returned by the engine and detector. Callers match them with errors.Is;
// the engine wraps them with the offending id or direction.
var (
	// ErrInvalidDirection is returned for a heading outside the eight compass points.
	ErrInvalidDirection = errors.New("world: invalid direction")

	// ErrTokenNotFound is returned when an id has no live roundy.
	ErrTokenNotFound = errors.New("world: roundy not found")

	// ErrBusy is returned when a move is requested while a chain reaction runs.
	ErrBusy = errors.New("world: busy, chain reaction in progress")

	// ErrNoCandidates is returned by FindClosest for an empty candidate set.
	// The engine never passes one; reaching it from the engine is a bug.
	ErrNoCandidates = errors.New("world: no candidates")

	// ErrBoardFull is returned when no free cell is left for a new roundy.
	ErrBoardFull = errors.New("world: no free cell")

	// ErrSlotTaken is returned when adding a roundy under an id that is still alive.
	ErrSlotTaken = errors.New("world: slot already holds a roundy")

	// ErrInvalidConfig is returned by NewEngine for impossible board dimensions.
	ErrInvalidConfig = errors.New("world: invalid config")

	// ErrUnexpectedTransition is returned when a completion or continuation
	// does not match the step the engine handed out.
	ErrUnexpectedTransition = errors.New("world: unexpected transition")
)
