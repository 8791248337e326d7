package domain

import "strings"

type SourceKind string

const (
	ResearchSource SourceKind = "research"
	VideoSource    SourceKind = "video"
)

type Speaker string

const (
	HostSpeaker   Speaker = "host"
	ExpertSpeaker Speaker = "expert"
)

// RunInput is the caller-provided request for one podcast run. At least one
// of Topic/VideoURL must be set; Validate is called once at workflow entry
// and never re-checked downstream.
type RunInput struct {
	Topic           string
	VideoURL        string
	DurationMinutes int
}

func (r RunInput) Validate() error {
	if strings.TrimSpace(r.Topic) == "" && strings.TrimSpace(r.VideoURL) == "" {
		return ErrInvalidInput
	}
	if r.DurationMinutes <= 0 {
		return ErrInvalidInput
	}
	return nil
}

func (r RunInput) HasTopic() bool {
	return strings.TrimSpace(r.Topic) != ""
}

func (r RunInput) HasVideo() bool {
	return strings.TrimSpace(r.VideoURL) != ""
}

type Citation struct {
	Title string
	URL   string
}

// Finding is one source's extracted content. Immutable once produced by its
// requester.
type Finding struct {
	Kind      SourceKind
	Summary   string
	Citations []Citation
}

func (f Finding) Empty() bool {
	return strings.TrimSpace(f.Summary) == ""
}

type SynthesizedReport struct {
	Body             string
	ExecutiveSummary string
	KeyInsights      []string
	Sources          []Finding
}

// ScriptLine is one spoken turn. Index defines render and playback order and
// is strictly increasing with no gaps across a script.
type ScriptLine struct {
	Speaker Speaker
	Text    string
	Index   int
}

type PodcastScript struct {
	Lines []ScriptLine
}

func (s PodcastScript) WordCount() int {
	total := 0
	for _, line := range s.Lines {
		total += len(strings.Fields(line.Text))
	}
	return total
}

func (s PodcastScript) LinesFor(speaker Speaker) int {
	count := 0
	for _, line := range s.Lines {
		if line.Speaker == speaker {
			count++
		}
	}
	return count
}

// AudioFormat describes raw PCM samples. All segments of one run must agree
// on every field before concatenation.
type AudioFormat struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
}

func (f AudioFormat) ByteRate() int {
	return f.SampleRate * f.Channels * f.BitsPerSample / 8
}

type AudioSegment struct {
	Index  int
	PCM    []byte
	Format AudioFormat
}

type AudioArtifact struct {
	WAV             []byte
	Format          AudioFormat
	DurationSeconds float64
}

type EpisodeMetadata struct {
	Title                   string
	Description             string
	Topics                  []string
	DurationEstimateSeconds float64
}

// PodcastBundle is the terminal artifact of a successful run. Failed runs
// never surface a partial bundle.
type PodcastBundle struct {
	RunID    string
	Report   SynthesizedReport
	Script   PodcastScript
	Audio    AudioArtifact
	Metadata EpisodeMetadata
}

type StageEvent struct {
	RunID   string   `json:"run_id"`
	State   RunState `json:"state"`
	Message string   `json:"message,omitempty"`
}
