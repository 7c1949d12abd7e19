package pending

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/wichananm65/estate-crm/internal/clients"
)

const MessageQueued = "Your request was received and will be handled by our team within 24 hours."

// Submitter is the client intake a pending request is replayed into.
type Submitter interface {
	Submit(ctx context.Context, l clients.Lead) (clients.SubmitResult, error)
}

type Service struct {
	repo    Repository
	clients Submitter
	now     func() time.Time
}

func NewService(repo Repository, c Submitter) *Service {
	return &Service{repo: repo, clients: c, now: time.Now}
}

// Create validates the lead like the regular intake and queues it.
func (s *Service) Create(ctx context.Context, l clients.Lead) (Request, error) {
	if errs := l.Validate(); len(errs) > 0 {
		return Request{}, &clients.ValidationError{Fields: errs}
	}
	r := fromLead(l)
	r.ID = uuid.NewString()
	r.CreatedAt = s.now().UTC()
	return s.repo.Create(ctx, r)
}

func (s *Service) List(ctx context.Context, processed *bool) ([]Request, error) {
	return s.repo.List(ctx, processed)
}

// Process submits the request through the client intake and marks it processed.
func (s *Service) Process(ctx context.Context, id string) (clients.SubmitResult, error) {
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return clients.SubmitResult{}, err
	}
	if r.Processed {
		return clients.SubmitResult{}, ErrAlreadyProcessed
	}
	res, err := s.clients.Submit(ctx, r.Lead())
	if err != nil {
		return res, err
	}
	if !res.Success {
		return res, errors.New(res.Message)
	}
	if err := s.repo.MarkProcessed(ctx, id, res.ClientID, s.now().UTC()); err != nil {
		return res, err
	}
	return res, nil
}
