package domain

type RunState string

const (
	StateValidating     RunState = "validating"
	StateResearching    RunState = "researching"
	StateAnalyzingVideo RunState = "analyzing_video"
	StateSynthesizing   RunState = "synthesizing"
	StateScriptWriting  RunState = "script_writing"
	StateRendering      RunState = "rendering"
	StateDone           RunState = "done"
	StateFailed         RunState = "failed"
)

// transitions is the full reachable-state set of a run. The workflow is a
// straight-line DAG: no state is ever revisited, and Failed is reachable
// from every non-terminal state.
var transitions = map[RunState][]RunState{
	StateValidating:     {StateResearching, StateAnalyzingVideo, StateFailed},
	StateResearching:    {StateAnalyzingVideo, StateSynthesizing, StateFailed},
	StateAnalyzingVideo: {StateSynthesizing, StateFailed},
	StateSynthesizing:   {StateScriptWriting, StateFailed},
	StateScriptWriting:  {StateRendering, StateFailed},
	StateRendering:      {StateDone, StateFailed},
	StateDone:           {},
	StateFailed:         {},
}

func (s RunState) CanTransition(to RunState) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

func (s RunState) Terminal() bool {
	return len(transitions[s]) == 0
}
