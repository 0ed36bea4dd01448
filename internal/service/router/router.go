package router

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/sandevgo/pastcast/internal/core"
	"github.com/sandevgo/pastcast/internal/metrics"
	"github.com/sandevgo/pastcast/internal/providers/facts"
	"github.com/sandevgo/pastcast/internal/service/generation"
	"github.com/sandevgo/pastcast/pkg/log"
	"golang.org/x/text/cases"
)

const (
	wikiDirective    = "Provide 3–5 correct, concise bullet points."
	webDirective     = "Provide 3–5 accurate bullet points based on the provided context."
	generalDirective = "Give a short, correct answer. No repetition. No filler."
	retryDirective   = "Provide a short correct answer."

	AskTargetReply = "Please specify a target language (e.g., Hindi)."
	AskPhraseReply = "Please tell me what to translate, e.g., translate \"good morning\" to Hindi."
	AskCityReply   = "Please specify a city, e.g., 'weather in Pune'."
	NoWeatherKey   = "Weather unavailable (API key missing)."

	CapabilitiesReply = "I can help with:\n" +
		"- General questions and explanations.\n" +
		"- Wikipedia-based factual summaries.\n" +
		"- English → Hindi/Marathi/Tamil/Telugu translations.\n" +
		"- Accurate weather lookups.\n" +
		"- Trend lookup from CSV.\n" +
		"- Short, clean explanations from a local language model."

	defaultSentences = 3
)

type Translator interface {
	Translate(ctx context.Context, phrase, target string) string
}

type Generator interface {
	Generate(ctx context.Context, in generation.Instruction) string
}

// Deps are the collaborators the routes dispatch to.
type Deps struct {
	Encyclopedia core.Encyclopedia
	Web          core.WebKnowledge
	Weather      core.WeatherService
	Trends       core.TrendSource
	Translator   Translator
	Generator    Generator
}

// Request is one inbound message. History is the rendered recent window and
// is only used by general generation.
type Request struct {
	Text    string
	History string
}

// route pairs a predicate with its handler. handle returns ok=false to fall
// through to the next route.
type route struct {
	intent Intent
	match  func(text, lower string) (Decision, bool)
	handle func(ctx context.Context, d Decision, req Request) (string, bool)
}

type Router struct {
	deps      Deps
	denylist  []string
	fold      cases.Caser
	sentences int
	metrics   *metrics.Metrics
	routes    []route
}

type Option func(*Router)

// WithDenylist drops search titles containing any of the given phrases.
func WithDenylist(phrases []string) Option {
	return func(r *Router) {
		r.denylist = r.denylist[:0]
		for _, p := range phrases {
			if p = strings.TrimSpace(p); p != "" {
				r.denylist = append(r.denylist, r.fold.String(p))
			}
		}
	}
}

func WithSentences(n int) Option {
	return func(r *Router) {
		if n > 0 {
			r.sentences = n
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Router) { r.metrics = m }
}

func New(deps Deps, opts ...Option) *Router {
	r := &Router{
		deps:      deps,
		fold:      cases.Fold(),
		sentences: defaultSentences,
	}
	WithDenylist([]string{"centennial light", "light bulb", "lamp", "incandescent"})(r)
	for _, opt := range opts {
		opt(r)
	}

	r.routes = []route{
		{IntentTranslation, matchTranslation, r.handleTranslation},
		{IntentCapability, matchCapability, r.handleCapability},
		{IntentWeather, matchWeather, r.handleWeather},
		{IntentWhoIs, matchWhoIs, r.handleWhoIs},
		{IntentWikipedia, matchAlways(func(q string) Decision { return WikipediaFactual{Query: q} }), r.handleWikipedia},
		{IntentWebFallback, matchAlways(func(q string) Decision { return WebFallback{Query: q} }), r.handleWeb},
		{IntentGeneral, matchAlways(func(q string) Decision { return GeneralGeneration{Query: q} }), r.handleGeneral},
	}
	return r
}

// Classify returns the first decision whose predicate accepts text, without
// calling any collaborator.
func (r *Router) Classify(text string) Decision {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, rt := range r.routes {
		if d, ok := rt.match(text, lower); ok {
			return d
		}
	}
	return GeneralGeneration{Query: text}
}

// Respond routes text and returns a non-empty reply.
func (r *Router) Respond(ctx context.Context, req Request) Reply {
	logger := log.FromCtx(ctx)
	lower := strings.ToLower(strings.TrimSpace(req.Text))

	reply := Reply{Decision: GeneralGeneration{Query: req.Text}}
	for _, rt := range r.routes {
		d, ok := rt.match(req.Text, lower)
		if !ok {
			continue
		}
		text, handled := rt.handle(ctx, d, req)
		if !handled {
			logger.Debug().Str("intent", string(rt.intent)).Msg("route fell through")
			continue
		}
		reply = Reply{Decision: d, Text: text}
		break
	}

	if strings.TrimSpace(reply.Text) == "" {
		logger.Warn().Str("intent", string(reply.Intent())).Msg("empty reply, retrying general generation")
		reply = Reply{
			Decision: GeneralGeneration{Query: req.Text},
			Text: r.deps.Generator.Generate(ctx, generation.Instruction{
				System: retryDirective,
				User:   req.Text,
			}),
		}
	}

	if strings.TrimSpace(reply.Text) == "" {
		reply.Text = core.ApologyReply
	}

	r.metrics.Intent(string(reply.Intent()))
	logger.Info().Str("intent", string(reply.Intent())).Msg("message routed")
	return reply
}

func matchTranslation(text, lower string) (Decision, bool) {
	if !isTranslation(lower) {
		return nil, false
	}
	phrase, target := parseTranslation(text)
	return Translation{Phrase: phrase, Target: target}, true
}

func matchCapability(_, lower string) (Decision, bool) {
	return Capability{}, isCapability(lower)
}

func matchWeather(text, lower string) (Decision, bool) {
	if !isWeather(lower) {
		return nil, false
	}
	return Weather{City: extractCity(text)}, true
}

func matchWhoIs(text, _ string) (Decision, bool) {
	name := parseWhoIs(text)
	if name == "" {
		return nil, false
	}
	return WhoIs{Name: name}, true
}

func matchAlways(build func(q string) Decision) func(text, lower string) (Decision, bool) {
	return func(text, _ string) (Decision, bool) {
		return build(text), true
	}
}

func (r *Router) handleTranslation(ctx context.Context, d Decision, req Request) (string, bool) {
	t := d.(Translation)
	if t.Target == "" {
		return AskTargetReply, true
	}
	if t.Phrase == "" {
		return AskPhraseReply, true
	}
	body := r.deps.Translator.Translate(ctx, t.Phrase, t.Target)
	return r.withTrends(ctx, req.Text, body), true
}

func (r *Router) handleCapability(context.Context, Decision, Request) (string, bool) {
	return CapabilitiesReply, true
}

func (r *Router) handleWeather(ctx context.Context, d Decision, _ Request) (string, bool) {
	city := d.(Weather).City
	if city == "" {
		return AskCityReply, true
	}

	res := r.deps.Weather.Current(ctx, city)
	r.metrics.Lookup("openweather", res.Outcome.String())

	switch {
	case res.OK():
		w := res.Value
		return "Weather in " + city + ": " + w.Description + ", " +
			strconv.FormatFloat(w.TempC, 'f', -1, 64) + "°C, humidity " +
			strconv.Itoa(w.Humidity) + "%.", true
	case errors.Is(res.Err, core.ErrNotConfigured):
		return NoWeatherKey, true
	default:
		return "Couldn't fetch weather for " + city + ".", true
	}
}

// handleWhoIs tries the page named by the question, then the best search hit
// for that name. Any failure falls through to the general factual search.
func (r *Router) handleWhoIs(ctx context.Context, d Decision, req Request) (string, bool) {
	name := d.(WhoIs).Name

	res := r.deps.Encyclopedia.Summary(ctx, name, r.sentences)
	if res.Outcome == core.NotFound {
		if hits := r.deps.Encyclopedia.Search(ctx, name); hits.OK() {
			res = r.deps.Encyclopedia.Summary(ctx, hits.Value[0], r.sentences)
		}
	}
	r.metrics.Lookup("wikipedia_summary", res.Outcome.String())

	if !res.OK() {
		return "", false
	}
	return r.withTrends(ctx, req.Text, formatBullets(name, res.Value.Body)), true
}

func (r *Router) handleWikipedia(ctx context.Context, d Decision, req Request) (string, bool) {
	fact, ok := r.lookupWikipedia(ctx, d.(WikipediaFactual).Query)
	if !ok {
		return "", false
	}
	body := r.deps.Generator.Generate(ctx, generation.Instruction{
		System:  wikiDirective,
		Context: fact.Body,
		User:    req.Text,
	})
	return r.withTrends(ctx, req.Text, body), true
}

// lookupWikipedia returns the first non-denylisted summary that resolves,
// falling back to the first search result.
func (r *Router) lookupWikipedia(ctx context.Context, query string) (core.Fact, bool) {
	hits := r.deps.Encyclopedia.Search(ctx, query)
	r.metrics.Lookup("wikipedia_search", hits.Outcome.String())
	if !hits.OK() || len(hits.Value) == 0 {
		return core.Fact{}, false
	}

	firstTried := false
	for i, title := range hits.Value {
		if r.denied(title) {
			continue
		}
		res := r.deps.Encyclopedia.Summary(ctx, title, r.sentences)
		if i == 0 {
			firstTried = true
		}
		if res.OK() {
			return res.Value, true
		}
	}

	if firstTried {
		return core.Fact{}, false
	}
	res := r.deps.Encyclopedia.Summary(ctx, hits.Value[0], r.sentences)
	return res.Value, res.OK()
}

func (r *Router) handleWeb(ctx context.Context, d Decision, req Request) (string, bool) {
	res := r.deps.Web.Lookup(ctx, d.(WebFallback).Query)
	r.metrics.Lookup("duckduckgo", res.Outcome.String())
	if !res.OK() {
		return "", false
	}
	body := r.deps.Generator.Generate(ctx, generation.Instruction{
		System:  webDirective,
		Context: res.Value,
		User:    req.Text,
	})
	return r.withTrends(ctx, req.Text, body), true
}

func (r *Router) handleGeneral(ctx context.Context, d Decision, req Request) (string, bool) {
	return r.deps.Generator.Generate(ctx, generation.Instruction{
		System:  generalDirective,
		Context: req.History,
		User:    d.(GeneralGeneration).Query,
	}), true
}

// withTrends prefixes body with the trend note for text. An empty body stays
// empty so the retry policy can see it.
func (r *Router) withTrends(ctx context.Context, text, body string) string {
	if strings.TrimSpace(body) == "" || r.deps.Trends == nil {
		return body
	}
	return facts.Note(r.deps.Trends.Related(ctx, text)) + body
}

func (r *Router) denied(title string) bool {
	t := r.fold.String(title)
	for _, d := range r.denylist {
		if strings.Contains(t, d) {
			return true
		}
	}
	return false
}
