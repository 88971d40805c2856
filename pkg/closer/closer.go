// Package closer shuts registered resources down in reverse registration order.
package closer

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

const (
	// allClosed is returned by gracefulClose when every function ran
	allClosed = -1

	defaultForcedTimeout = 2 * time.Second
)

// Func releases one resource.
type Func func(ctx context.Context) error

type entry struct {
	name string
	fn   Func
}

// Closer is safe for concurrent Add; Close runs at most once.
type Closer struct {
	mu            sync.Mutex
	once          sync.Once
	entries       []entry
	forcedTimeout time.Duration
}

// New creates a Closer. forcedTimeout bounds the parallel forced close of whatever is left
// when the context passed to Close expires; zero means two seconds.
func New(forcedTimeout time.Duration) *Closer {
	if forcedTimeout <= 0 {
		forcedTimeout = defaultForcedTimeout
	}

	return &Closer{forcedTimeout: forcedTimeout}
}

func (c *Closer) Add(name string, f Func) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = append(c.entries, entry{name: name, fn: f})
}

// AddErr registers a context-free closer such as (*sql.DB).Close.
func (c *Closer) AddErr(name string, f func() error) {
	c.Add(name, func(context.Context) error {
		return f()
	})
}

// Close runs the registered functions LIFO. If ctx expires first, the remaining
// functions are run in parallel with a fresh forcedTimeout context.
func (c *Closer) Close(ctx context.Context) error {
	var err error

	c.once.Do(func() {
		c.mu.Lock()
		entries := c.entries
		c.mu.Unlock()

		stopIdx, errs := gracefulClose(ctx, entries)
		if stopIdx == allClosed {
			if len(errs) > 0 {
				err = fmt.Errorf("shutdown finished with error(s):\n%s", strings.Join(errs, "\n"))
			}
			return
		}

		errs = append(errs, c.forcedClose(entries[:stopIdx+1])...)

		err = fmt.Errorf("shutdown interrupted after %d/%d funcs:\n%s",
			len(entries)-1-stopIdx, len(entries), strings.Join(errs, "\n"))
	})

	return err
}

// gracefulClose returns the index of the first entry that did not finish, or allClosed.
func gracefulClose(ctx context.Context, entries []entry) (int, []string) {
	var errs []string

	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		done := make(chan error, 1)

		go func() {
			done <- e.fn(ctx)
		}()

		select {
		case err := <-done:
			if err != nil {
				errs = append(errs, fmt.Sprintf("[!] %s: %v", e.name, err))
			}
		case <-ctx.Done():
			return i, errs
		}
	}

	return allClosed, errs
}

func (c *Closer) forcedClose(entries []entry) []string {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []string
	)

	ctx, cancel := context.WithTimeout(context.Background(), c.forcedTimeout)
	defer cancel()

	for _, e := range entries {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := e.fn(ctx); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Sprintf("[FORCED] %s: %v", e.name, err))
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	return errs
}
