package srv

import "context"

// cleanupFunc releases a resource on shutdown and has nothing to start.
type cleanupFunc func() error

func (fn cleanupFunc) Start(context.Context) error { return nil }

func (fn cleanupFunc) Shutdown(context.Context) error {
	if fn == nil {
		return nil
	}
	return fn()
}

// NewCleanup wraps a Close-style function, such as (*sql.DB).Close.
func NewCleanup(fn func() error) Service {
	return cleanupFunc(fn)
}
