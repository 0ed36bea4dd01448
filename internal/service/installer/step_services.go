package installer

func NewWeatherKeyStep() Step {
	return NewInputStep("OPENWEATHER_API_KEY", "your OpenWeather API key", secret(), optional())
}

func NewTranslationTokenStep() Step {
	return NewInputStep("HF_TOKEN", "your Hugging Face token for translation", secret(), optional(), placeholder("hf_..."))
}
