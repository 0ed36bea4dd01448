package generation

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// promptOverhead covers the role tags and separators added by BuildPrompt.
const promptOverhead = 16

// Tokenizer counts and truncates text in model tokens.
type Tokenizer interface {
	Count(text string) int
	Truncate(text string, maxTokens int) string
}

// NewTokenizer returns a cl100k_base tokenizer. The encoding is fetched on
// first use; if that fails the rune estimate is used for the process lifetime.
func NewTokenizer() Tokenizer {
	return &lazyTokenizer{}
}

type lazyTokenizer struct {
	once sync.Once
	impl Tokenizer
}

func (l *lazyTokenizer) get() Tokenizer {
	l.once.Do(func() {
		tk, err := tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			l.impl = RuneTokenizer{}
			return
		}
		l.impl = tiktokenizer{tk: tk}
	})
	return l.impl
}

func (l *lazyTokenizer) Count(text string) int {
	return l.get().Count(text)
}

func (l *lazyTokenizer) Truncate(text string, maxTokens int) string {
	return l.get().Truncate(text, maxTokens)
}

type tiktokenizer struct {
	tk *tiktoken.Tiktoken
}

func (t tiktokenizer) Count(text string) int {
	if text == "" {
		return 0
	}
	return len(t.tk.Encode(text, nil, nil))
}

func (t tiktokenizer) Truncate(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return ""
	}
	ids := t.tk.Encode(text, nil, nil)
	if len(ids) <= maxTokens {
		return text
	}
	return t.tk.Decode(ids[:maxTokens])
}

// RuneTokenizer estimates four runes per token.
type RuneTokenizer struct{}

const runesPerToken = 4

func (RuneTokenizer) Count(text string) int {
	n := len([]rune(text))
	return (n + runesPerToken - 1) / runesPerToken
}

func (RuneTokenizer) Truncate(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return ""
	}
	r := []rune(text)
	if limit := maxTokens * runesPerToken; len(r) > limit {
		return string(r[:limit])
	}
	return text
}

// fitContext trims ctxText so the whole prompt plus the reply fits in window tokens.
func fitContext(tk Tokenizer, in Instruction, window, reply int) string {
	if in.Context == "" || window <= 0 {
		return in.Context
	}
	room := window - reply - promptOverhead - tk.Count(in.System) - tk.Count(in.User)
	if room <= 0 {
		return ""
	}
	return tk.Truncate(in.Context, room)
}
