package provisioning

import (
	"context"

	"github.com/imamik/repokit/internal/config"
)

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Config     *config.Config
	State      *State
	Engine     Engine
	BuildSpecs BuildSpecSource
	Observer   Observer
}

// NewContext creates a new provisioning context with a console observer and
// the default build spec source.
func NewContext(ctx context.Context, cfg *config.Config, engine Engine) *Context {
	return &Context{
		Context:    ctx,
		Config:     cfg,
		State:      NewState(),
		Engine:     engine,
		BuildSpecs: DefaultBuildSpecSource{},
		Observer:   NewConsoleObserver(),
	}
}

// WithObserver replaces the observer and returns the context for chaining.
func (c *Context) WithObserver(o Observer) *Context {
	c.Observer = o
	return c
}

// WithBuildSpecSource replaces the build spec source and returns the context.
func (c *Context) WithBuildSpecSource(src BuildSpecSource) *Context {
	c.BuildSpecs = src
	return c
}
