package translation

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sandevgo/pastcast/internal/core"
	"github.com/sandevgo/pastcast/internal/metrics"
	"github.com/sandevgo/pastcast/pkg/log"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultMaxNewTokens = 80

	FailedReply = "Translation failed. Please try again."
)

// Models maps a lowercase target language to its English-source model.
var Models = map[string]string{
	"hindi":   "Helsinki-NLP/opus-mt-en-hi",
	"marathi": "Helsinki-NLP/opus-mt-en-mr",
	"tamil":   "Helsinki-NLP/opus-mt-en-ta",
	"telugu":  "Helsinki-NLP/opus-mt-en-te",
}

func UnsupportedReply(target string) string {
	return fmt.Sprintf("Sorry, translation to '%s' is not supported yet.", target)
}

// Languages lists the supported targets in alphabetical order.
func Languages() []string {
	out := make([]string, 0, len(Models))
	for k := range Models {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Service translates English text. Models load on first use per language and
// stay cached for the life of the process.
type Service struct {
	loader       core.TranslationLoader
	maxNewTokens int
	metrics      *metrics.Metrics

	mu     sync.RWMutex
	models map[string]core.TranslationModel
	group  singleflight.Group
}

func New(loader core.TranslationLoader, maxNewTokens int, m *metrics.Metrics) *Service {
	if maxNewTokens <= 0 {
		maxNewTokens = DefaultMaxNewTokens
	}
	return &Service{
		loader:       loader,
		maxNewTokens: maxNewTokens,
		metrics:      m,
		models:       make(map[string]core.TranslationModel),
	}
}

// Translate always returns user-facing text: the translation, the unsupported
// notice, or the failure notice.
func (s *Service) Translate(ctx context.Context, phrase, target string) string {
	logger := log.FromCtx(ctx)
	lang := strings.ToLower(strings.TrimSpace(target))

	modelID, ok := Models[lang]
	if !ok {
		return UnsupportedReply(target)
	}

	model, err := s.model(ctx, lang, modelID)
	if err != nil {
		logger.Error().Err(err).Str("language", lang).Msg("translation model load failed")
		s.metrics.Translation(lang, false)
		return FailedReply
	}

	out, err := model.Translate(ctx, phrase, s.maxNewTokens)
	if err != nil {
		logger.Error().Err(err).Str("language", lang).Msg("translation failed")
		s.metrics.Translation(lang, false)
		return FailedReply
	}

	s.metrics.Translation(lang, true)
	return strings.TrimSpace(out)
}

// Loaded reports which languages have a cached model.
func (s *Service) Loaded() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.models))
	for k := range s.models {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (s *Service) model(ctx context.Context, lang, modelID string) (core.TranslationModel, error) {
	s.mu.RLock()
	m, ok := s.models[lang]
	s.mu.RUnlock()
	if ok {
		return m, nil
	}

	v, err, _ := s.group.Do(lang, func() (any, error) {
		s.mu.RLock()
		m, ok := s.models[lang]
		s.mu.RUnlock()
		if ok {
			return m, nil
		}

		start := time.Now()
		// A caller that gives up must not poison the shared load.
		loaded, err := s.loader.Load(context.WithoutCancel(ctx), modelID)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.models[lang] = loaded
		s.mu.Unlock()

		log.FromCtx(ctx).Info().
			Str("language", lang).
			Str("model", modelID).
			Dur("took", time.Since(start)).
			Msg("translation model cached")
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(core.TranslationModel), nil
}
