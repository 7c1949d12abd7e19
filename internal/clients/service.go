package clients

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wichananm65/estate-crm/internal/logging"
)

const (
	MessageSubmitted = "Request saved. We will contact you within 24 hours."
	MessageFailed    = "The request could not be processed. Please try again later."
)

var ErrInvalid = errors.New("invalid client request")

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return ErrInvalid.Error() }

func (e *ValidationError) Unwrap() error { return ErrInvalid }

type Service struct {
	repo Repository
	lggr logging.Logger
	now  func() time.Time
}

func NewService(repo Repository, lggr logging.Logger) *Service {
	if lggr == nil {
		lggr = logging.Nop()
	}
	return &Service{repo: repo, lggr: lggr, now: time.Now}
}

// Submit stores the lead. Storage failures are logged and reported as an
// unsuccessful result together with the error.
func (s *Service) Submit(ctx context.Context, l Lead) (SubmitResult, error) {
	if errs := l.Validate(); len(errs) > 0 {
		return SubmitResult{Message: MessageFailed}, &ValidationError{Fields: errs}
	}
	now := s.now().UTC()
	c := Client{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(l.Name),
		Email:     strings.ToLower(strings.TrimSpace(l.Email)),
		Phone:     strings.TrimSpace(l.Phone),
		CreatedAt: now,
		UpdatedAt: now,
	}
	req := Request{
		ID:           uuid.NewString(),
		RequestType:  ParseRequestType(l.RequestType),
		PropertyType: l.PropertyType,
		Location:     l.Zone,
		Budget:       l.Budget,
		Features:     l.Features,
		Notes:        l.AdditionalDetails,
		Status:       StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	saved, _, err := s.repo.SaveLead(ctx, c, req)
	if err != nil {
		s.lggr.Errorw("save client request", "email", c.Email, "error", err)
		return SubmitResult{Message: MessageFailed}, err
	}
	s.lggr.Infow("client request received", "client", saved.ID, "type", req.RequestType)
	return SubmitResult{Success: true, Message: MessageSubmitted, ClientID: saved.ID}, nil
}

func (s *Service) ListClients(ctx context.Context) ([]Client, error) {
	return s.repo.ListClients(ctx)
}

func (s *Service) ListRequests(ctx context.Context, status Status) ([]Request, error) {
	return s.repo.ListRequests(ctx, status)
}

// SetStatus moves a request to status, stamped with who processed it and when.
func (s *Service) SetStatus(ctx context.Context, id string, status Status, by string) (Request, error) {
	if !status.valid() {
		return Request{}, &ValidationError{Fields: map[string]string{"status": "must be one of pending, contacted, completed, rejected"}}
	}
	return s.repo.UpdateRequestStatus(ctx, id, status, by, s.now().UTC())
}
