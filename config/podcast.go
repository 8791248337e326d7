package config

type PodcastConfig struct {
	HostName               string
	ExpertName             string
	DefaultDurationMinutes int
	ConversationTone       string
}

func GetPodcastConfig() (*PodcastConfig, error) {
	durationMinutes, err := envIntOr("TARGET_DURATION_MINUTES", 5)
	if err != nil {
		return nil, err
	}

	return &PodcastConfig{
		HostName:               envOr("HOST_NAME", "Alex"),
		ExpertName:             envOr("EXPERT_NAME", "Sam"),
		DefaultDurationMinutes: durationMinutes,
		ConversationTone:       envOr("CONVERSATION_TONE", "professional"),
	}, nil
}
