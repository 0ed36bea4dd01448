package generation

import (
	"context"
	"time"

	"github.com/sandevgo/pastcast/internal/config"
	"github.com/sandevgo/pastcast/internal/core"
	"github.com/sandevgo/pastcast/internal/metrics"
	"github.com/sandevgo/pastcast/pkg/log"
)

// Generator runs deterministic completions and sanitizes the output.
type Generator struct {
	completer core.Completer
	cfg       *config.LLMConfig
	metrics   *metrics.Metrics
	tokens    Tokenizer
}

type Option func(*Generator)

func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Generator) { g.metrics = m }
}

func WithTokenizer(t Tokenizer) Option {
	return func(g *Generator) { g.tokens = t }
}

func New(completer core.Completer, cfg *config.LLMConfig, opts ...Option) *Generator {
	g := &Generator{
		completer: completer,
		cfg:       cfg,
		tokens:    NewTokenizer(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) Model() string {
	return g.completer.Name()
}

// Generate returns the cleaned completion, which may be empty. Backend
// failures are logged and answered with the apology text.
func (g *Generator) Generate(ctx context.Context, in Instruction) string {
	logger := log.FromCtx(ctx)

	in.Context = fitContext(g.tokens, in, g.cfg.ContextTokens, g.cfg.MaxTokens)
	prompt := BuildPrompt(in)

	start := time.Now()
	raw, err := g.completer.Complete(ctx, core.CompletionRequest{
		Prompt:      prompt,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: 0,
		Seed:        g.cfg.Seed,
		Stop:        []string{userTag, systemTag},
	})
	took := time.Since(start)
	g.metrics.Generation(took, err == nil)

	if err != nil {
		logger.Error().
			Err(err).
			Str("model", g.completer.Name()).
			Dur("took", took).
			Msg("generation failed")
		return core.ApologyReply
	}

	out := Clean(raw)
	logger.Debug().
		Str("model", g.completer.Name()).
		Dur("took", took).
		Int("chars", len(out)).
		Msg("generation done")

	return out
}
