// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package plugin implements the {game, action} -> handler registry that sits
// between the HTTP front end and game-specific request handlers, per
// spec.md section 6's "Plugin registry contract".
//
// The source discovers plugins at process start by scanning a ./plugins/
// directory and dynamically importing each subfolder's loader module. Go has
// no equivalent to that import-by-path mechanism, so plugins instead
// self-register at compile time: a plugin package calls Register from an
// init() function, and cmd/hiiragid blank-imports the plugin packages it
// wants enabled (see SPEC_FULL.md Open Question 4).
package plugin

import (
	"context"
	"sync"

	"github.com/hiiragi-go/hiiragi/node"
)

// Handler processes one decoded request node tree for a single action and
// produces the response tree. ctx stands in for the source's per-request
// object; the one concrete plugin in this repo doesn't need it, but the
// shape leaves room for request-scoped values without changing the
// interface.
type Handler func(ctx context.Context, req *node.Node) (*node.Node, error)

// Registrar is implemented by a plugin package's self-registration type; its
// Load method dispatches the plugin's handlers into reg.
type Registrar interface {
	Load(reg *Registry)
}

// Registry maps (game, action) pairs to handlers.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Default is the process-wide registry that Register and plugin init()
// functions populate, and that eamusehttp dispatches against.
var Default = NewRegistry()

// Register loads r's handlers into Default. Intended to be called from a
// plugin package's init() function.
func Register(name string, r Registrar) {
	r.Load(Default)
}

func dispatchKey(game, action string) string { return game + ":" + action }

// Dispatch registers h as the handler for (game, action), overwriting any
// existing registration.
func (reg *Registry) Dispatch(game, action string, h Handler) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.handlers[dispatchKey(game, action)] = h
}

// Lookup returns the handler registered for (game, action), if any.
func (reg *Registry) Lookup(game, action string) (Handler, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	h, ok := reg.handlers[dispatchKey(game, action)]
	return h, ok
}

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "plugin: " + string(e) }

var (
	// ErrHandlerAbsent is returned by Invoke when no plugin or no action is
	// registered for the requested (game, action) pair.
	ErrHandlerAbsent error = Error("no handler registered for game/action")

	// ErrHandlerReturnedWrong is returned by Invoke when a registered
	// handler returns a nil tree alongside a nil error.
	ErrHandlerReturnedWrong error = Error("handler returned no tree and no error")
)

// Invoke looks up and calls the handler for (game, action), translating an
// absent registration or a malformed handler result into the taxonomy from
// spec.md section 7.
func (reg *Registry) Invoke(ctx context.Context, game, action string, req *node.Node) (*node.Node, error) {
	h, ok := reg.Lookup(game, action)
	if !ok {
		return nil, ErrHandlerAbsent
	}
	resp, err := h(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, ErrHandlerReturnedWrong
	}
	return resp, nil
}
