// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/playbook/lib/catalogue"
)

// Intent is a user action a shell forwards to [Reduce].
type Intent interface {
	intent()
}

// SetQueryIntent replaces the search query.
type SetQueryIntent struct {
	Query string
}

// ToggleCategoryIntent expands or collapses a category.
type ToggleCategoryIntent struct {
	Category string
}

// SelectTaskIntent selects a task.
type SelectTaskIntent struct {
	Category string
	Task     string
}

func (SetQueryIntent) intent()       {}
func (ToggleCategoryIntent) intent() {}
func (SelectTaskIntent) intent()     {}

// Reduce applies intent to state. On error the input state is returned.
func Reduce(state State, catalogue *catalogue.Catalogue, intent Intent) (State, error) {
	switch intent := intent.(type) {
	case SetQueryIntent:
		return SetQuery(state, catalogue, intent.Query), nil
	case ToggleCategoryIntent:
		return ToggleCategory(state, catalogue, intent.Category), nil
	case SelectTaskIntent:
		return SelectTask(state, catalogue, intent.Category, intent.Task)
	default:
		return state, fmt.Errorf("unsupported intent %T", intent)
	}
}

// ErrNoCatalogue is returned when a Session is created or reloaded
// without a catalogue.
var ErrNoCatalogue = errors.New("session requires a loaded catalogue")

// Session owns one catalogue and the state browsing it. It is not safe
// for concurrent use; shells serialize intents through their event
// loop.
type Session struct {
	catalogue *catalogue.Catalogue
	state     State
	sink      ViewSink
}

// New starts a session at the [Initial] state of loaded.
func New(loaded *catalogue.Catalogue) (*Session, error) {
	if loaded == nil {
		return nil, ErrNoCatalogue
	}
	return &Session{catalogue: loaded, state: Initial(loaded)}, nil
}

// SetViewSink registers a sink that receives the view after every
// successful transition and reload, and renders the current view once.
// A nil sink stops rendering.
func (session *Session) SetViewSink(sink ViewSink) {
	session.sink = sink
	session.render()
}

// Dispatch applies intent. A failed intent leaves the state unchanged
// and renders nothing.
func (session *Session) Dispatch(intent Intent) error {
	next, err := Reduce(session.state, session.catalogue, intent)
	if err != nil {
		return err
	}
	session.state = next
	session.render()
	return nil
}

// Reload replaces the catalogue and prunes state that refers to
// categories or tasks it no longer has.
func (session *Session) Reload(replacement *catalogue.Catalogue) error {
	if replacement == nil {
		return ErrNoCatalogue
	}
	session.catalogue = replacement
	session.state = Reload(session.state, replacement)
	session.render()
	return nil
}

// State returns the current state.
func (session *Session) State() State {
	return session.state
}

// Catalogue returns the catalogue being browsed.
func (session *Session) Catalogue() *catalogue.Catalogue {
	return session.catalogue
}

// View builds the view of the current state.
func (session *Session) View() View {
	return BuildView(session.catalogue, session.state)
}

func (session *Session) render() {
	if session.sink != nil {
		session.sink.Render(session.View())
	}
}
