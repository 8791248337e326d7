package domain

import "testing"

func TestCanTransition_HappyPath(t *testing.T) {
	paths := [][]RunState{
		{StateValidating, StateResearching, StateSynthesizing, StateScriptWriting, StateRendering, StateDone},
		{StateValidating, StateAnalyzingVideo, StateSynthesizing, StateScriptWriting, StateRendering, StateDone},
		{StateValidating, StateResearching, StateAnalyzingVideo, StateSynthesizing, StateScriptWriting, StateRendering, StateDone},
	}

	for _, path := range paths {
		for i := 0; i < len(path)-1; i++ {
			if !path[i].CanTransition(path[i+1]) {
				t.Errorf("expected %s -> %s to be allowed", path[i], path[i+1])
			}
		}
	}
}

func TestCanTransition_FailedReachableFromNonTerminal(t *testing.T) {
	states := []RunState{
		StateValidating, StateResearching, StateAnalyzingVideo,
		StateSynthesizing, StateScriptWriting, StateRendering,
	}

	for _, state := range states {
		if !state.CanTransition(StateFailed) {
			t.Errorf("expected %s -> %s to be allowed", state, StateFailed)
		}
	}
}

func TestCanTransition_NoBackwardsOrSkippedEdges(t *testing.T) {
	denied := [][2]RunState{
		{StateResearching, StateValidating},
		{StateSynthesizing, StateResearching},
		{StateValidating, StateSynthesizing},
		{StateValidating, StateDone},
		{StateAnalyzingVideo, StateResearching},
		{StateScriptWriting, StateDone},
		{StateDone, StateFailed},
		{StateFailed, StateValidating},
	}

	for _, edge := range denied {
		if edge[0].CanTransition(edge[1]) {
			t.Errorf("expected %s -> %s to be denied", edge[0], edge[1])
		}
	}
}

func TestTerminal(t *testing.T) {
	if !StateDone.Terminal() {
		t.Error("expected done to be terminal")
	}
	if !StateFailed.Terminal() {
		t.Error("expected failed to be terminal")
	}
	if StateRendering.Terminal() {
		t.Error("expected rendering to be non-terminal")
	}
}

func TestRunInput_Validate(t *testing.T) {
	valid := RunInput{Topic: "quantum computing", DurationMinutes: 5}
	if err := valid.Validate(); err != nil {
		t.Fatal("expected valid input to pass validation:", err)
	}

	videoOnly := RunInput{VideoURL: "https://youtu.be/abc123", DurationMinutes: 5}
	if err := videoOnly.Validate(); err != nil {
		t.Fatal("expected video-only input to pass validation:", err)
	}

	empty := RunInput{Topic: "   ", VideoURL: "", DurationMinutes: 5}
	if err := empty.Validate(); err != ErrInvalidInput {
		t.Fatal("expected ErrInvalidInput for blank input, got:", err)
	}

	zeroDuration := RunInput{Topic: "quantum computing"}
	if err := zeroDuration.Validate(); err != ErrInvalidInput {
		t.Fatal("expected ErrInvalidInput for zero duration, got:", err)
	}
}
