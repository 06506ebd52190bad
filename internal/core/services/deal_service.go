package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/estatedesk/backoffice/internal/apperrors"
	"github.com/estatedesk/backoffice/internal/core/domain"
	portsrepo "github.com/estatedesk/backoffice/internal/core/ports/repositories"
	portssvc "github.com/estatedesk/backoffice/internal/core/ports/services"
	"github.com/google/uuid"
)

// dealService owns the in-memory close-deal wizard sessions. Sessions are
// never persisted: abandoning the wizard or idling past the TTL discards all
// progress, and a restart of the process does the same.
type dealService struct {
	BaseService
	propertyRepo portsrepo.PropertyRepository
	committer    portssvc.ReservationCommitter
	sessionTTL   time.Duration

	mu       sync.Mutex
	sessions map[string]*domain.DealSession

	now func() time.Time
}

// DealServiceOption is a functional option for configuring the deal service.
type DealServiceOption func(*dealService)

// WithDealClock overrides the service clock.
func WithDealClock(now func() time.Time) DealServiceOption {
	return func(s *dealService) {
		s.now = now
	}
}

// NewDealService creates the deal wizard controller.
func NewDealService(propertyRepo portsrepo.PropertyRepository, committer portssvc.ReservationCommitter, sessionTTL time.Duration, options ...DealServiceOption) portssvc.DealSvc {
	svc := &dealService{
		propertyRepo: propertyRepo,
		committer:    committer,
		sessionTTL:   sessionTTL,
		sessions:     map[string]*domain.DealSession{},
		now:          time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.DealSvc = (*dealService)(nil)

func (s *dealService) CreateSession(ctx context.Context) (*domain.DealSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := domain.NewDealSession(uuid.NewString(), s.now())
	s.sessions[session.ID] = session

	s.LogInfo(ctx, "Deal session created", slog.String("deal_id", session.ID))
	return session, nil
}

// lockedSession fetches a live session. Expired sessions are dropped on
// access; there is no background sweeper, matching the single-browser-session
// lifetime of the wizard. Callers must hold s.mu.
func (s *dealService) lockedSession(dealID string) (*domain.DealSession, error) {
	session, ok := s.sessions[dealID]
	if !ok {
		return nil, fmt.Errorf("%w: deal session %s", apperrors.ErrNotFound, dealID)
	}
	if session.Expired(s.now(), s.sessionTTL) {
		delete(s.sessions, dealID)
		return nil, fmt.Errorf("%w: deal session %s expired", apperrors.ErrNotFound, dealID)
	}
	session.Touch(s.now())
	return session, nil
}

func (s *dealService) GetSession(ctx context.Context, dealID string) (*domain.DealSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lockedSession(dealID)
}

// Advance moves the wizard one step forward. On the designated commit step the
// reservation committer runs instead: success jumps to the finish step, any
// failure leaves the session exactly where it was.
func (s *dealService) Advance(ctx context.Context, dealID string) (*domain.DealSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.lockedSession(dealID)
	if err != nil {
		return nil, err
	}

	if session.AtCommitStep() {
		merged, err := s.committer.Commit(ctx, session.Selected, session.EditedFields)
		if err != nil {
			return session, err
		}
		session.Selected = merged
		session.CompleteCommit()
		return session, nil
	}

	if err := session.Advance(); err != nil {
		return session, err
	}
	return session, nil
}

func (s *dealService) Retreat(ctx context.Context, dealID string) (*domain.DealSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.lockedSession(dealID)
	if err != nil {
		return nil, err
	}
	session.Retreat()
	return session, nil
}

func (s *dealService) JumpBack(ctx context.Context, dealID string, stepIndex int) (*domain.DealSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.lockedSession(dealID)
	if err != nil {
		return nil, err
	}
	if err := session.JumpBack(stepIndex); err != nil {
		return session, err
	}
	return session, nil
}

// SelectProperty loads the lot by key and attaches a value copy to the
// session, resetting any accumulated edits. The lot must still be Available;
// nothing holds it between selection and commit, the conditional write at
// commit time is the only guard.
func (s *dealService) SelectProperty(ctx context.Context, dealID string, project domain.Project, key domain.PropertyKey) (*domain.DealSession, error) {
	property, err := s.propertyRepo.FindByKey(ctx, project, key)
	if err != nil {
		s.LogError(ctx, err, "Failed to load property for selection",
			slog.String("project", project.DisplayName()),
			slog.String("key", key.String()))
		return nil, err
	}
	if !property.Status().Equals(domain.StatusAvailable) {
		return nil, fmt.Errorf("%w: %s in %s is %s, not available",
			apperrors.ErrConflict, key.String(), project.DisplayName(), property.Status())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.lockedSession(dealID)
	if err != nil {
		return nil, err
	}
	if err := session.SelectProperty(property); err != nil {
		return session, err
	}
	return session, nil
}

func (s *dealService) EditField(ctx context.Context, dealID string, field, value string) (*domain.DealSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.lockedSession(dealID)
	if err != nil {
		return nil, err
	}
	if err := session.EditField(field, value); err != nil {
		return session, err
	}
	return session, nil
}

func (s *dealService) AbandonSession(ctx context.Context, dealID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[dealID]; !ok {
		return fmt.Errorf("%w: deal session %s", apperrors.ErrNotFound, dealID)
	}
	delete(s.sessions, dealID)
	s.LogInfo(ctx, "Deal session abandoned", slog.String("deal_id", dealID))
	return nil
}
