package adapters

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/PritamPatil2603/podcast-creator-ai/application/ports/outbound"
	"github.com/PritamPatil2603/podcast-creator-ai/config"
	"github.com/PritamPatil2603/podcast-creator-ai/domain"
)

type geminiSpeechSynthesizer struct {
	ContentFetcher
	logger       outbound.LoggerPort
	geminiConfig *config.GeminiConfig
	ttsConfig    *config.TtsConfig
}

func NewGeminiSpeechSynthesizer(contentFetcher ContentFetcher, geminiConfig *config.GeminiConfig,
	ttsConfig *config.TtsConfig, logger outbound.LoggerPort) outbound.SpeechSynthesizerPort {
	return &geminiSpeechSynthesizer{
		ContentFetcher: contentFetcher,
		logger:         logger,
		geminiConfig:   geminiConfig,
		ttsConfig:      ttsConfig,
	}
}

func (g *geminiSpeechSynthesizer) Synthesize(ctx context.Context, req outbound.SynthesizeSpeechRequest) ([]byte, domain.AudioFormat, error) {
	payload := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: req.Text}}}},
		GenerationConfig: &geminiGenerationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &geminiSpeechConfig{
				VoiceConfig: &geminiVoiceConfig{
					PrebuiltVoiceConfig: &geminiPrebuiltVoice{VoiceName: req.Voice},
				},
			},
		},
	}

	httpReq, err := newGeminiRequest(ctx, g.geminiConfig, g.ttsConfig.Model, "generateContent", payload)
	if err != nil {
		g.logger.ErrorWithFields(err, "Failed to construct the TTS request", map[string]interface{}{
			"voice": req.Voice,
		})
		return nil, domain.AudioFormat{}, err
	}

	body, err := g.FetchContent(httpReq)
	if err != nil {
		return nil, domain.AudioFormat{}, err
	}

	return decodeSpeechResponse(body)
}

func decodeSpeechResponse(body []byte) ([]byte, domain.AudioFormat, error) {
	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, domain.AudioFormat{}, fmt.Errorf("failed to decode tts response: %w", err)
	}
	if len(parsed.Candidates) == 0 {
		return nil, domain.AudioFormat{}, domain.ErrNoContent
	}

	for _, part := range parsed.Candidates[0].Content.Parts {
		if part.InlineData == nil {
			continue
		}
		pcm, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
		if err != nil {
			return nil, domain.AudioFormat{}, fmt.Errorf("failed to decode pcm payload: %w", err)
		}
		format, err := parsePCMMime(part.InlineData.MimeType)
		if err != nil {
			return nil, domain.AudioFormat{}, err
		}
		return pcm, format, nil
	}

	return nil, domain.AudioFormat{}, domain.ErrNoContent
}

// parsePCMMime reads the declared sample format out of a mime type such as
// "audio/L16;codec=pcm;rate=24000". Channel count defaults to mono unless
// a channels parameter is present.
func parsePCMMime(mime string) (domain.AudioFormat, error) {
	parts := strings.Split(mime, ";")
	base := strings.TrimSpace(parts[0])
	if !strings.HasPrefix(base, "audio/L") {
		return domain.AudioFormat{}, fmt.Errorf("unsupported audio mime type %q", mime)
	}
	bits, err := strconv.Atoi(strings.TrimPrefix(base, "audio/L"))
	if err != nil {
		return domain.AudioFormat{}, fmt.Errorf("unsupported audio mime type %q", mime)
	}

	format := domain.AudioFormat{BitsPerSample: bits, Channels: 1}
	for _, part := range parts[1:] {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "rate":
			if format.SampleRate, err = strconv.Atoi(value); err != nil {
				return domain.AudioFormat{}, fmt.Errorf("invalid rate in mime type %q", mime)
			}
		case "channels":
			if format.Channels, err = strconv.Atoi(value); err != nil {
				return domain.AudioFormat{}, fmt.Errorf("invalid channels in mime type %q", mime)
			}
		}
	}
	if format.SampleRate == 0 {
		return domain.AudioFormat{}, fmt.Errorf("mime type %q declares no sample rate", mime)
	}

	return format, nil
}
