// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package view

import (
	"context"

	"github.com/rs/zerolog"
)

// Session drives a Machine synchronously: every request is executed in place
// and its response delivered before returning. Used where there is no event
// loop, such as one-shot CLI commands.
type Session struct {
	machine    *Machine
	dispatcher *Dispatcher
	logger     zerolog.Logger
}

// NewSession binds a machine to a dispatcher.
func NewSession(machine *Machine, dispatcher *Dispatcher, logger zerolog.Logger) *Session {
	return &Session{machine: machine, dispatcher: dispatcher, logger: logger}
}

// Machine returns the driven machine.
func (s *Session) Machine() *Machine {
	return s.machine
}

// Run executes the requests in order and delivers each response.
func (s *Session) Run(ctx context.Context, requests ...Request) State {
	for _, req := range requests {
		resp := s.dispatcher.Execute(ctx, req)
		if !s.machine.Deliver(resp) {
			s.logger.Debug().Str("kind", req.Kind.String()).Uint64("generation", req.Generation).Msg("dropped stale response")
		}
	}

	return s.machine.State()
}

// Start loads the landing and marquee sets.
func (s *Session) Start(ctx context.Context) State {
	return s.Run(ctx, s.machine.Start()...)
}

// Search submits a query and waits for its results.
func (s *Session) Search(ctx context.Context, query string) (State, error) {
	req, err := s.machine.Submit(query)
	if err != nil {
		return s.machine.State(), err
	}

	state := s.Run(ctx, req)

	return state, state.Notice
}

// SelectCategory switches category and waits for any fallback fetch.
func (s *Session) SelectCategory(ctx context.Context, i int) (State, error) {
	req, err := s.machine.SelectCategory(i)
	if err != nil {
		return s.machine.State(), err
	}

	if req == nil {
		return s.machine.State(), nil
	}

	return s.Run(ctx, *req), nil
}
