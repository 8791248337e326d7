package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/PritamPatil2603/podcast-creator-ai/application/ports/inbound"
	"github.com/PritamPatil2603/podcast-creator-ai/application/ports/outbound"
	"github.com/PritamPatil2603/podcast-creator-ai/config"
	"github.com/PritamPatil2603/podcast-creator-ai/domain"
)

// wordsPerMinute converts a duration target into a word budget. Policy
// constant, deliberately not run-configurable.
const wordsPerMinute = 200

type dialogueWriter struct {
	logger          outbound.LoggerPort
	scriptStreamer  outbound.ScriptStreamerPort
	podcastConfig   *config.PodcastConfig
	synthesisConfig *config.SynthesisConfig
}

func NewDialogueWriter(logger outbound.LoggerPort, scriptStreamer outbound.ScriptStreamerPort,
	podcastConfig *config.PodcastConfig, synthesisConfig *config.SynthesisConfig) inbound.DialogueWriterPort {
	return &dialogueWriter{
		logger:          logger,
		scriptStreamer:  scriptStreamer,
		podcastConfig:   podcastConfig,
		synthesisConfig: synthesisConfig,
	}
}

func (d *dialogueWriter) WriteScript(ctx context.Context, params inbound.WriteScriptParams) (domain.PodcastScript, error) {
	newCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	textCh, errCh := d.scriptStreamer.Stream(newCtx, outbound.StreamScriptRequest{
		Prompt:      d.buildPrompt(params),
		Model:       d.synthesisConfig.Model,
		Temperature: d.synthesisConfig.ScriptTemperature,
	})

	maxWords := params.DurationMinutes * wordsPerMinute
	var builder strings.Builder
	var lines []domain.ScriptLine
	budgetReached := false

	for textCh != nil || errCh != nil {
		select {
		case <-ctx.Done():
			return domain.PodcastScript{}, ctx.Err()
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			if !budgetReached {
				return domain.PodcastScript{}, err
			}
			// The stream was cancelled by us; the lines we kept stand.
			errCh = nil
		case chunk, ok := <-textCh:
			if !ok {
				textCh = nil
				continue
			}
			if budgetReached {
				continue
			}
			builder.WriteString(chunk)
			remainder := d.consumeLines(builder.String(), &lines)
			builder.Reset()
			builder.WriteString(remainder)

			if scriptWords(lines) >= maxWords {
				budgetReached = true
				cancel()
			}
		}
	}

	if !budgetReached {
		d.appendTurn(&lines, builder.String())
	}

	if len(lines) == 0 {
		return domain.PodcastScript{}, domain.ErrEmptyScript
	}

	for i := range lines {
		lines[i].Index = i
	}

	d.logger.DebugWithFields("Dialogue script complete", map[string]interface{}{
		"lines": len(lines),
		"words": scriptWords(lines),
	})
	return domain.PodcastScript{Lines: lines}, nil
}

// consumeLines appends every complete line in buffer to lines and returns
// the trailing partial line.
func (d *dialogueWriter) consumeLines(buffer string, lines *[]domain.ScriptLine) string {
	parts := strings.Split(buffer, "\n")
	for _, part := range parts[:len(parts)-1] {
		d.appendTurn(lines, part)
	}
	return parts[len(parts)-1]
}

func (d *dialogueWriter) appendTurn(lines *[]domain.ScriptLine, raw string) {
	text := strings.TrimSpace(strings.Trim(strings.TrimSpace(raw), "*"))
	if text == "" {
		return
	}
	// Stage directions like [intro music] are not spoken.
	if strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]") {
		return
	}

	if rest, ok := cutPrefixFold(text, d.podcastConfig.HostName+":"); ok {
		*lines = append(*lines, domain.ScriptLine{Speaker: domain.HostSpeaker, Text: strings.TrimSpace(rest)})
		return
	}
	if rest, ok := cutPrefixFold(text, d.podcastConfig.ExpertName+":"); ok {
		*lines = append(*lines, domain.ScriptLine{Speaker: domain.ExpertSpeaker, Text: strings.TrimSpace(rest)})
		return
	}

	// No speaker tag: the model wrapped a turn across lines.
	if len(*lines) > 0 {
		last := &(*lines)[len(*lines)-1]
		last.Text = strings.TrimSpace(last.Text + " " + text)
	}
}

func (d *dialogueWriter) buildPrompt(params inbound.WriteScriptParams) string {
	host := d.podcastConfig.HostName
	expert := d.podcastConfig.ExpertName
	topic := params.Topic
	if topic == "" {
		topic = "the content"
	}

	return fmt.Sprintf(`Create a natural, engaging %d-minute podcast conversation between %s (curious host) and %s (knowledgeable expert) about "%s".

CONTENT TO COVER:
%s

KEY INSIGHTS TO DISCUSS:
%s

CONVERSATION STYLE: %s

Structure (aim for ~%d words total):
1. %s introduces the topic and %s
2. Main discussion covering the key insights
3. Practical takeaways and wrap-up

Guidelines:
- Make it conversational and natural
- %s asks thoughtful questions
- %s provides clear, insightful answers
- Include smooth transitions between topics
- End with a memorable takeaway
- One speaker turn per line, no stage directions

Format exactly like this:
%s: [opening introduction]
%s: [expert response]
%s: [follow-up question]
%s: [detailed explanation]`,
		params.DurationMinutes, host, expert, topic,
		params.Report.ExecutiveSummary,
		strings.Join(params.Report.KeyInsights, ", "),
		d.podcastConfig.ConversationTone,
		params.DurationMinutes*wordsPerMinute,
		host, expert, host, expert, host, expert, host, expert)
}

func scriptWords(lines []domain.ScriptLine) int {
	total := 0
	for _, line := range lines {
		total += len(strings.Fields(line.Text))
	}
	return total
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):], true
	}
	return s, false
}
