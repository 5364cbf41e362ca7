package world

// ChainResult summarizes a chain reaction driven to completion.
type ChainResult struct {
	Selection Selection
	Steps     []Step     // every transition after the first move, in order
	Exit      ExitReport // zero unless Selection.Kind is SelectionMove
}

// Play selects roundy id and completes every transition immediately,
// as a presentation layer with zero-length animations would. It is used
// by headless runs and tests.
func (e *Engine) Play(id int) (ChainResult, error) {
	sel, err := e.SelectToken(id)
	if err != nil {
		return ChainResult{}, err
	}
	result := ChainResult{Selection: sel}
	if sel.Kind == SelectionNoCollisions {
		return result, nil
	}

	// Each transfer moves the impulse strictly forward on a finite board,
	// so this ends within Capacity steps.
	step := Step{Kind: StepMove, Move: sel.Move}
	for step.Kind == StepMove {
		step, err = e.CompleteMove(step.Move)
		if err != nil {
			return result, err
		}
		result.Steps = append(result.Steps, step)
	}

	result.Exit, err = e.CompleteExit(step.Exit)
	return result, err
}
