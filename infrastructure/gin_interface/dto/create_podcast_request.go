package dto

type CreatePodcastRequest struct {
	Topic           string `json:"topic"`
	VideoURL        string `json:"video_url"`
	DurationMinutes int    `json:"duration_minutes"`
}

type PodcastResult struct {
	EpisodeID               string   `json:"episode_id"`
	Title                   string   `json:"title"`
	Description             string   `json:"description"`
	Topics                  []string `json:"topics"`
	DurationEstimateSeconds float64  `json:"duration_estimate_seconds"`
	AudioURL                string   `json:"audio_url"`
	Report                  string   `json:"report"`
}

type PodcastError struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}
