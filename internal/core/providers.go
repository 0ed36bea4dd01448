package core

import "context"

// CompletionRequest is a raw-prompt completion with deterministic decoding.
type CompletionRequest struct {
	Prompt      string
	MaxTokens   int
	Temperature float64
	Seed        int
	Stop        []string
}

// Completer continues a raw prompt. Backends must honor Temperature 0 as greedy decoding.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Name() string
}

// TranslationModel is a loaded single-language-pair model.
type TranslationModel interface {
	Translate(ctx context.Context, text string, maxNewTokens int) (string, error)
}

// TranslationLoader loads a model by its identifier (e.g. Helsinki-NLP/opus-mt-en-hi).
type TranslationLoader interface {
	Load(ctx context.Context, modelID string) (TranslationModel, error)
}

// Fact is a knowledge snippet returned by a lookup.
type Fact struct {
	Title string
	Body  string
}

type WeatherReport struct {
	City        string
	Description string
	TempC       float64
	Humidity    int
}

type Encyclopedia interface {
	Search(ctx context.Context, query string) Result[[]string]
	Summary(ctx context.Context, title string, sentences int) Result[Fact]
}

type WebKnowledge interface {
	Lookup(ctx context.Context, query string) Result[string]
}

type WeatherService interface {
	Current(ctx context.Context, city string) Result[WeatherReport]
}

type TrendSource interface {
	Related(ctx context.Context, text string) []string
}
