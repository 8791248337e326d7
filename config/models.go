package config

type ResearchConfig struct {
	Model       string
	Temperature float64
}

func GetResearchConfig() (*ResearchConfig, error) {
	temperature, err := envFloatOr("SEARCH_TEMPERATURE", 0.0)
	if err != nil {
		return nil, err
	}

	return &ResearchConfig{
		Model:       envOr("SEARCH_MODEL", "gemini-2.5-flash"),
		Temperature: temperature,
	}, nil
}

type SynthesisConfig struct {
	Model               string
	Temperature         float64
	MetadataTemperature float64
	ScriptTemperature   float64
}

func GetSynthesisConfig() (*SynthesisConfig, error) {
	temperature, err := envFloatOr("SYNTHESIS_TEMPERATURE", 0.3)
	if err != nil {
		return nil, err
	}
	metadataTemperature, err := envFloatOr("METADATA_TEMPERATURE", 0.4)
	if err != nil {
		return nil, err
	}
	scriptTemperature, err := envFloatOr("SCRIPT_TEMPERATURE", 0.7)
	if err != nil {
		return nil, err
	}

	return &SynthesisConfig{
		Model:               envOr("SYNTHESIS_MODEL", "gemini-2.5-flash"),
		Temperature:         temperature,
		MetadataTemperature: metadataTemperature,
		ScriptTemperature:   scriptTemperature,
	}, nil
}

type VideoConfig struct {
	Model string
}

func GetVideoConfig() (*VideoConfig, error) {
	return &VideoConfig{
		Model: envOr("VIDEO_MODEL", "gemini-2.5-flash"),
	}, nil
}
