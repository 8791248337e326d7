package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/PritamPatil2603/podcast-creator-ai/application/ports/inbound"
	"github.com/PritamPatil2603/podcast-creator-ai/application/ports/outbound"
	"github.com/PritamPatil2603/podcast-creator-ai/config"
	"github.com/PritamPatil2603/podcast-creator-ai/domain"
	"github.com/PritamPatil2603/podcast-creator-ai/infrastructure/adapters"
)

type stubScriptStreamer struct {
	chunks []string
	err    error
}

func (s *stubScriptStreamer) Stream(_ context.Context, _ outbound.StreamScriptRequest) (<-chan string, <-chan error) {
	textCh := make(chan string)
	errCh := make(chan error, 1)
	go func() {
		defer close(textCh)
		defer close(errCh)
		for _, chunk := range s.chunks {
			textCh <- chunk
		}
		if s.err != nil {
			errCh <- s.err
		}
	}()
	return textCh, errCh
}

func newTestDialogueWriter(t *testing.T, streamer outbound.ScriptStreamerPort) inbound.DialogueWriterPort {
	t.Helper()

	podcastConfig, err := config.GetPodcastConfig()
	if err != nil {
		t.Fatal("Failed to get podcast config:", err)
	}
	synthesisConfig, err := config.GetSynthesisConfig()
	if err != nil {
		t.Fatal("Failed to get synthesis config:", err)
	}

	return NewDialogueWriter(adapters.NewZerologWrapper(), streamer, podcastConfig, synthesisConfig)
}

func TestDialogueWriter_WriteScript(t *testing.T) {
	streamer := &stubScriptStreamer{chunks: []string{
		"Alex: Welcome to the show, today ",
		"we talk about fusion energy.\nSam: Thanks for having me",
		", Alex.\n[transition music]\nAlex: Let's dive in.\n",
	}}
	writer := newTestDialogueWriter(t, streamer)

	script, err := writer.WriteScript(context.Background(), inbound.WriteScriptParams{
		Topic:           "fusion energy",
		Report:          domain.SynthesizedReport{ExecutiveSummary: "summary", KeyInsights: []string{"insight"}},
		DurationMinutes: 5,
	})
	if err != nil {
		t.Fatal("Failed to write script:", err)
	}

	if len(script.Lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %+v", len(script.Lines), script.Lines)
	}
	expected := []domain.ScriptLine{
		{Speaker: domain.HostSpeaker, Text: "Welcome to the show, today we talk about fusion energy.", Index: 0},
		{Speaker: domain.ExpertSpeaker, Text: "Thanks for having me, Alex.", Index: 1},
		{Speaker: domain.HostSpeaker, Text: "Let's dive in.", Index: 2},
	}
	for i, want := range expected {
		if script.Lines[i] != want {
			t.Errorf("line %d: expected %+v, got %+v", i, want, script.Lines[i])
		}
	}
}

func TestDialogueWriter_ContinuationWithoutPrefix(t *testing.T) {
	streamer := &stubScriptStreamer{chunks: []string{
		"Alex: The first half of a long thought\nthat wraps onto a second line.\nSam: Understood.",
	}}
	writer := newTestDialogueWriter(t, streamer)

	script, err := writer.WriteScript(context.Background(), inbound.WriteScriptParams{
		Topic:           "anything",
		DurationMinutes: 5,
	})
	if err != nil {
		t.Fatal("Failed to write script:", err)
	}

	if len(script.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %+v", len(script.Lines), script.Lines)
	}
	if script.Lines[0].Text != "The first half of a long thought that wraps onto a second line." {
		t.Errorf("continuation was not merged into previous turn: %q", script.Lines[0].Text)
	}
}

func TestDialogueWriter_IndicesStrictlyIncreasing(t *testing.T) {
	streamer := &stubScriptStreamer{chunks: []string{
		"Alex: One.\nSam: Two.\nAlex: Three.\nSam: Four.\n",
	}}
	writer := newTestDialogueWriter(t, streamer)

	script, err := writer.WriteScript(context.Background(), inbound.WriteScriptParams{
		Topic:           "anything",
		DurationMinutes: 5,
	})
	if err != nil {
		t.Fatal("Failed to write script:", err)
	}

	for i, line := range script.Lines {
		if line.Index != i {
			t.Errorf("line %d carries index %d", i, line.Index)
		}
	}
}

func TestDialogueWriter_WordBudget(t *testing.T) {
	streamer := &stubScriptStreamer{chunks: []string{
		"Alex: " + strings.Repeat("word ", 150) + "\n",
		"Sam: " + strings.Repeat("word ", 150) + "\n",
		"Alex: This line is past the budget.\n",
	}}
	writer := newTestDialogueWriter(t, streamer)

	script, err := writer.WriteScript(context.Background(), inbound.WriteScriptParams{
		Topic:           "anything",
		DurationMinutes: 1,
	})
	if err != nil {
		t.Fatal("Failed to write script:", err)
	}

	if len(script.Lines) != 2 {
		t.Fatalf("expected budget to stop after 2 lines, got %d", len(script.Lines))
	}
	if script.WordCount() < 200 {
		t.Errorf("expected at least the 200 word budget before stopping, got %d", script.WordCount())
	}
}

func TestDialogueWriter_StreamError(t *testing.T) {
	streamErr := errors.New("stream broke")
	streamer := &stubScriptStreamer{
		chunks: []string{"Alex: A partial line"},
		err:    streamErr,
	}
	writer := newTestDialogueWriter(t, streamer)

	_, err := writer.WriteScript(context.Background(), inbound.WriteScriptParams{
		Topic:           "anything",
		DurationMinutes: 5,
	})
	if !errors.Is(err, streamErr) {
		t.Fatal("expected stream error to surface, got:", err)
	}
}

// silentScriptStreamer never emits and only closes its channels once the
// stream context ends, like a hung upstream connection.
type silentScriptStreamer struct{}

func (silentScriptStreamer) Stream(ctx context.Context, _ outbound.StreamScriptRequest) (<-chan string, <-chan error) {
	textCh := make(chan string)
	errCh := make(chan error)
	go func() {
		<-ctx.Done()
		close(textCh)
		close(errCh)
	}()
	return textCh, errCh
}

func TestDialogueWriter_HonorsContextDeadline(t *testing.T) {
	writer := newTestDialogueWriter(t, silentScriptStreamer{})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := writer.WriteScript(ctx, inbound.WriteScriptParams{
		Topic:           "anything",
		DurationMinutes: 5,
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatal("expected the deadline to end the stream, got:", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatal("WriteScript did not return promptly after the deadline")
	}
}

func TestDialogueWriter_EmptyStream(t *testing.T) {
	writer := newTestDialogueWriter(t, &stubScriptStreamer{})

	_, err := writer.WriteScript(context.Background(), inbound.WriteScriptParams{
		Topic:           "anything",
		DurationMinutes: 5,
	})
	if !errors.Is(err, domain.ErrEmptyScript) {
		t.Fatal("expected ErrEmptyScript, got:", err)
	}
}
