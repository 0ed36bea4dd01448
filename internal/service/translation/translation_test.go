package translation

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sandevgo/pastcast/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type stubModel struct {
	prefix string
	err    error
	max    atomic.Int32
}

func (m *stubModel) Translate(_ context.Context, text string, maxNewTokens int) (string, error) {
	m.max.Store(int32(maxNewTokens))
	if m.err != nil {
		return "", m.err
	}
	return " " + m.prefix + ":" + text + " ", nil
}

type stubLoader struct {
	loads   atomic.Int32
	delay   time.Duration
	loadErr error
	model   *stubModel
}

func (l *stubLoader) Load(_ context.Context, modelID string) (core.TranslationModel, error) {
	l.loads.Add(1)
	if l.delay > 0 {
		time.Sleep(l.delay)
	}
	if l.loadErr != nil {
		return nil, l.loadErr
	}
	if l.model != nil {
		return l.model, nil
	}
	return &stubModel{prefix: modelID}, nil
}

func TestTranslate_Supported(t *testing.T) {
	loader := &stubLoader{}
	svc := New(loader, 0, nil)

	out := svc.Translate(context.Background(), "good morning", "Hindi")

	assert.Equal(t, "Helsinki-NLP/opus-mt-en-hi:good morning", out)
	assert.Equal(t, []string{"hindi"}, svc.Loaded())
}

func TestTranslate_Unsupported(t *testing.T) {
	loader := &stubLoader{}
	svc := New(loader, 0, nil)

	out := svc.Translate(context.Background(), "hello", "Klingon")

	assert.Equal(t, "Sorry, translation to 'Klingon' is not supported yet.", out)
	assert.Zero(t, loader.loads.Load())
	assert.Empty(t, svc.Loaded())
}

func TestTranslate_ModelCachedOncePerLanguage(t *testing.T) {
	loader := &stubLoader{delay: 20 * time.Millisecond}
	svc := New(loader, 0, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.Translate(ctx, "hi", "tamil")
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), loader.loads.Load())

	svc.Translate(ctx, "hi", "TAMIL")
	svc.Translate(ctx, "hi", "telugu")
	assert.Equal(t, int32(2), loader.loads.Load())
	assert.Equal(t, []string{"tamil", "telugu"}, svc.Loaded())
}

func TestTranslate_BoundedOutput(t *testing.T) {
	model := &stubModel{prefix: "x"}
	svc := New(&stubLoader{model: model}, 0, nil)

	svc.Translate(context.Background(), "hi", "marathi")
	assert.Equal(t, int32(DefaultMaxNewTokens), model.max.Load())
}

func TestTranslate_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("load error is not cached", func(t *testing.T) {
		loader := &stubLoader{loadErr: errors.New("503")}
		svc := New(loader, 0, nil)

		assert.Equal(t, FailedReply, svc.Translate(ctx, "hi", "hindi"))
		assert.Equal(t, FailedReply, svc.Translate(ctx, "hi", "hindi"))
		assert.Equal(t, int32(2), loader.loads.Load())
		assert.Empty(t, svc.Loaded())
	})

	t.Run("inference error", func(t *testing.T) {
		svc := New(&stubLoader{model: &stubModel{err: errors.New("boom")}}, 0, nil)
		assert.Equal(t, FailedReply, svc.Translate(ctx, "hi", "hindi"))
	})
}

func TestLanguages(t *testing.T) {
	require.Equal(t, []string{"hindi", "marathi", "tamil", "telugu"}, Languages())
}
