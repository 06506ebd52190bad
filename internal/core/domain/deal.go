package domain

import (
	"fmt"
	"time"

	"github.com/estatedesk/backoffice/internal/apperrors"
)

// DealStep names one screen of the close-deal wizard.
type DealStep string

const (
	StepInventory DealStep = "inventory"
	StepDocuments DealStep = "documents"
	StepSOA       DealStep = "soa"
	StepPayment   DealStep = "payment"
	StepBalance   DealStep = "balance"
	StepFinish    DealStep = "finish"
	StepAccount   DealStep = "account"
)

// DealSteps is the fixed, ordered step list. StepAccount is the designated
// commit step; a successful commit jumps the session to StepFinish.
var DealSteps = []DealStep{
	StepInventory,
	StepDocuments,
	StepSOA,
	StepPayment,
	StepBalance,
	StepFinish,
	StepAccount,
}

// StepIndex returns the position of a step in DealSteps, -1 if unknown.
func StepIndex(step DealStep) int {
	for i, s := range DealSteps {
		if s == step {
			return i
		}
	}
	return -1
}

// ErrNoPropertySelected guards advancing past the inventory step.
var ErrNoPropertySelected = fmt.Errorf("%w: select a property to proceed", apperrors.ErrValidation)

// DealSession is the transient state of one operator's trip through the
// close-deal wizard. It lives in memory only; abandoning the wizard or letting
// the session idle past its TTL discards all progress.
type DealSession struct {
	ID           string
	CurrentStep  int
	Selected     Property // nil until a lot is picked on the inventory step
	EditedFields map[string]string
	CreatedAt    time.Time
	LastActiveAt time.Time
}

// NewDealSession creates a session positioned on the inventory step.
func NewDealSession(id string, now time.Time) *DealSession {
	return &DealSession{
		ID:           id,
		CurrentStep:  0,
		EditedFields: map[string]string{},
		CreatedAt:    now,
		LastActiveAt: now,
	}
}

// Step returns the named step for the current index.
func (s *DealSession) Step() DealStep {
	return DealSteps[s.CurrentStep]
}

// AtCommitStep reports whether advancing must invoke the reservation committer
// instead of moving forward.
func (s *DealSession) AtCommitStep() bool {
	return s.Step() == StepAccount
}

// Advance moves one step forward, clamped to the last index. On the inventory
// step it refuses to move until a property is selected. Callers must check
// AtCommitStep first; Advance does not perform the commit itself.
func (s *DealSession) Advance() error {
	if s.Step() == StepInventory && s.Selected == nil {
		return ErrNoPropertySelected
	}
	if s.CurrentStep < len(DealSteps)-1 {
		s.CurrentStep++
	}
	return nil
}

// Retreat moves one step back, clamped at 0. Always allowed.
func (s *DealSession) Retreat() {
	if s.CurrentStep > 0 {
		s.CurrentStep--
	}
}

// JumpBack sets the current step directly to index k. Only steps strictly
// before the current one are reachable; forward jumps are rejected.
func (s *DealSession) JumpBack(k int) error {
	if k < 0 || k >= len(DealSteps) {
		return fmt.Errorf("%w: step index %d out of range", apperrors.ErrValidation, k)
	}
	if k >= s.CurrentStep {
		return fmt.Errorf("%w: cannot jump forward to step %q", apperrors.ErrValidation, DealSteps[k])
	}
	s.CurrentStep = k
	return nil
}

// SelectProperty replaces the selected lot and resets accumulated edits, so
// edits made against one lot never leak onto another. Only allowed while the
// wizard sits on the inventory step.
func (s *DealSession) SelectProperty(p Property) error {
	if s.Step() != StepInventory {
		return fmt.Errorf("%w: properties can only be selected on the inventory step", apperrors.ErrValidation)
	}
	s.Selected = p.Clone()
	s.EditedFields = map[string]string{}
	return nil
}

// EditField records one field override for the selected lot. The field name
// must exist in the selected project's schema.
func (s *DealSession) EditField(name, value string) error {
	if s.Selected == nil {
		return ErrNoPropertySelected
	}
	if _, ok := s.Selected.Field(name); !ok {
		return fmt.Errorf("%w: unknown field %q for %s", apperrors.ErrValidation, name, s.Selected.Project().DisplayName())
	}
	s.EditedFields[name] = value
	return nil
}

// CompleteCommit jumps the session to the finish step after the reservation
// committer succeeds.
func (s *DealSession) CompleteCommit() {
	s.CurrentStep = StepIndex(StepFinish)
}

// Touch refreshes the idle timer.
func (s *DealSession) Touch(now time.Time) {
	s.LastActiveAt = now
}

// Expired reports whether the session idled past ttl.
func (s *DealSession) Expired(now time.Time, ttl time.Duration) bool {
	return ttl > 0 && now.Sub(s.LastActiveAt) > ttl
}
