package config

// TtsConfig carries the speech model, per-speaker voices, and the PCM format
// the backend is contracted to emit. A segment arriving in any other format
// is a backend-contract violation the assembler surfaces as a fatal error.
type TtsConfig struct {
	Model         string
	HostVoice     string
	ExpertVoice   string
	SampleRate    int
	Channels      int
	BitsPerSample int
}

func GetTtsConfig() (*TtsConfig, error) {
	sampleRate, err := envIntOr("TTS_SAMPLE_RATE", 24000)
	if err != nil {
		return nil, err
	}
	channels, err := envIntOr("TTS_CHANNELS", 1)
	if err != nil {
		return nil, err
	}
	bitsPerSample, err := envIntOr("TTS_BITS_PER_SAMPLE", 16)
	if err != nil {
		return nil, err
	}

	return &TtsConfig{
		Model:         envOr("TTS_MODEL", "gemini-2.5-flash-preview-tts"),
		HostVoice:     envOr("HOST_VOICE", "Kore"),
		ExpertVoice:   envOr("EXPERT_VOICE", "Puck"),
		SampleRate:    sampleRate,
		Channels:      channels,
		BitsPerSample: bitsPerSample,
	}, nil
}
