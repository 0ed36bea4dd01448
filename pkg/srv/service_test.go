package srv

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordingService struct {
	name    string
	mu      *sync.Mutex
	started *[]string
	stopped *[]string
}

func (r recordingService) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	*r.started = append(*r.started, r.name)
	return nil
}

func (r recordingService) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	*r.stopped = append(*r.stopped, r.name)
	return nil
}

func TestShutdownServices_ReverseOrder(t *testing.T) {
	var mu sync.Mutex
	var started, stopped []string
	services := []Service{
		recordingService{name: "storage", mu: &mu, started: &started, stopped: &stopped},
		recordingService{name: "api", mu: &mu, started: &started, stopped: &stopped},
	}

	ctx, cancel := context.WithCancel(context.Background())
	StartServices(ctx, services)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(started) == 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	ShutdownServices(ctx, context.Background(), services)

	assert.Equal(t, []string{"api", "storage"}, stopped)
}

func TestNewCleanup(t *testing.T) {
	called := false
	svc := NewCleanup(func() error {
		called = true
		return nil
	})

	assert.NoError(t, svc.Start(context.Background()))
	assert.False(t, called)
	assert.NoError(t, svc.Shutdown(context.Background()))
	assert.True(t, called)

	assert.NoError(t, NewCleanup(nil).Shutdown(context.Background()))
}
