package view

import (
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/robfig/cron/v3"
)

type visitorIDs interface {
	Issue() string
	Resolve(id string) (string, bool)
	Expired() []string
}

// Registry owns the App of every active visitor.
type Registry struct {
	ids    visitorIDs
	deps   Deps
	logger *log.Logger

	mu   sync.Mutex
	apps map[string]*App
}

func NewRegistry(ids visitorIDs, deps Deps) *Registry {
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Registry{
		ids:    ids,
		deps:   deps,
		logger: logger,
		apps:   make(map[string]*App),
	}
}

// Visitor returns the App for the presented id, creating it when needed. A
// missing or malformed id gets a fresh one; issued reports whether the
// caller must hand the new id back to the browser.
func (r *Registry) Visitor(presented string) (app *App, issued bool) {
	id, ok := r.ids.Resolve(presented)
	if !ok {
		id = r.ids.Issue()
		issued = true
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	app, exists := r.apps[id]
	if !exists {
		app = NewApp(id, r.deps)
		r.apps[id] = app
	}
	return app, issued
}

// Sweep drops the Apps of idle visitors. Their carts stay in the slot store.
func (r *Registry) Sweep() int {
	expired := r.ids.Expired()
	if len(expired) == 0 {
		return 0
	}
	r.mu.Lock()
	n := 0
	for _, id := range expired {
		if _, ok := r.apps[id]; ok {
			delete(r.apps, id)
			n++
		}
	}
	r.mu.Unlock()
	r.logger.Printf("view: swept idle visitors count=%d", n)
	return n
}

// Len reports the number of live Apps.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.apps)
}

// Sweeper runs Registry.Sweep on a cron schedule.
type Sweeper struct {
	cron *cron.Cron
}

func NewSweeper(r *Registry, spec string) (*Sweeper, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() { r.Sweep() }); err != nil {
		return nil, fmt.Errorf("visitor sweep schedule %q: %w", spec, err)
	}
	return &Sweeper{cron: c}, nil
}

func (s *Sweeper) Start() { s.cron.Start() }

func (s *Sweeper) Stop() { <-s.cron.Stop().Done() }
