// Package session holds the client-side wizard state: which step a user
// has reached and whether the gated matrix has been unlocked. States are
// values; every transition returns a new one.
package session

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
)

// UnlockHeader carries the unlock code on HTTP requests for gated content.
const UnlockHeader = "X-Unlock-Code"

var (
	// ErrInvalidTransition means the step cannot be taken from the current state.
	ErrInvalidTransition = errors.New("invalid wizard transition")
	// ErrLocked means gated content was requested without a valid unlock.
	ErrLocked = errors.New("content is locked")
)

// Step is a wizard stage.
type Step int

const (
	Entered Step = iota
	Analyzed
	Unlocked
	Divined
)

var stepNames = [...]string{"entered", "analyzed", "unlocked", "divined"}

func (s Step) String() string {
	if s < Entered || s > Divined {
		return fmt.Sprintf("Step(%d)", int(s))
	}
	return stepNames[s]
}

func (s Step) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Step) UnmarshalText(b []byte) error {
	for i, n := range stepNames {
		if n == string(b) {
			*s = Step(i)
			return nil
		}
	}
	return fmt.Errorf("unknown wizard step %q", string(b))
}

// State is what a client carries between requests.
type State struct {
	Step      Step   `json:"step"`
	Unlocked  bool   `json:"unlocked"`
	ReadingID string `json:"reading_id,omitempty"`
}

// Gate guards the matrix. An empty code leaves it open.
type Gate struct {
	Code string
}

// Open reports whether the gate needs no code.
func (g Gate) Open() bool { return g.Code == "" }

// Check compares a submitted code in constant time.
func (g Gate) Check(code string) bool {
	if g.Open() {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(g.Code), []byte(code)) == 1
}

// Authorize checks the unlock code sent with r.
func (g Gate) Authorize(r *http.Request) error {
	if g.Check(r.Header.Get(UnlockHeader)) {
		return nil
	}
	return fmt.Errorf("%w: send %s", ErrLocked, UnlockHeader)
}

// Analyze records a fresh reading. It is allowed from any step and keeps
// an earlier unlock.
func (s State) Analyze(readingID string) (State, error) {
	if readingID == "" {
		return s, fmt.Errorf("%w: analyze needs a reading", ErrInvalidTransition)
	}
	return State{Step: Analyzed, Unlocked: s.Unlocked, ReadingID: readingID}, nil
}

// Unlock opens the gate for the current reading.
func (s State) Unlock(g Gate, code string) (State, error) {
	if s.Step < Analyzed {
		return s, fmt.Errorf("%w: unlock before analyze", ErrInvalidTransition)
	}
	if !g.Check(code) {
		return s, ErrLocked
	}
	next := s
	next.Unlocked = true
	if next.Step < Unlocked {
		next.Step = Unlocked
	}
	return next, nil
}

// Divine moves to the final step. The gate must have been unlocked.
func (s State) Divine() (State, error) {
	if s.Step < Analyzed {
		return s, fmt.Errorf("%w: divine before analyze", ErrInvalidTransition)
	}
	if !s.Unlocked {
		return s, ErrLocked
	}
	next := s
	next.Step = Divined
	return next, nil
}
