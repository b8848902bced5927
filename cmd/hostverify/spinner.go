// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

// Yet another (braille) spinner.

package main

import (
	"sync"
	"time"
)

// spinnerPhases are the braille glyphs the spinner cycles through.
const spinnerPhases = "⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏"

// spinner advances through its phases in the background, so that concurrent
// renderings all show the same phase.
type spinner struct {
	phases []string
	stop   sync.Once
	done   chan struct{}
	mu     sync.Mutex
	phase  int
}

// newSpinner returns a new spinner already spinning at the specified
// interval; call Stop to release its background resources.
func newSpinner(interval time.Duration) *spinner {
	s := &spinner{
		done: make(chan struct{}),
	}
	for _, r := range spinnerPhases {
		s.phases = append(s.phases, string(r))
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.mu.Lock()
				s.phase = (s.phase + 1) % len(s.phases)
				s.mu.Unlock()
			case <-s.done:
				return
			}
		}
	}()
	return s
}

// Spinner returns the glyph for the current phase.
func (s *spinner) Spinner() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phases[s.phase]
}

// Stop the spinner; it is safe to stop a spinner multiple times.
func (s *spinner) Stop() {
	s.stop.Do(func() { close(s.done) })
}
