package profile

import (
	"context"
	"errors"
	"net/mail"
	"time"

	"github.com/google/uuid"
)

var ErrInvalid = errors.New("invalid profile")

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return ErrInvalid.Error() }

func (e *ValidationError) Unwrap() error { return ErrInvalid }

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Get returns the profile of userID, creating an empty agent profile with
// email on first access.
func (s *Service) Get(ctx context.Context, userID, email string) (Profile, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Profile{}, err
	}
	now := s.now().UTC()
	return s.repo.Create(ctx, Profile{
		ID:        uuid.NewString(),
		UserID:    userID,
		Email:     email,
		Role:      RoleAgent,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *Service) Update(ctx context.Context, userID, email string, u Update) (Profile, error) {
	if errs := u.validate(); len(errs) > 0 {
		return Profile{}, &ValidationError{Fields: errs}
	}
	p, err := s.Get(ctx, userID, email)
	if err != nil {
		return Profile{}, err
	}
	u.apply(&p)
	p.UpdatedAt = s.now().UTC()
	return s.repo.Update(ctx, p)
}

// SetAvatar stores url as the avatar; nil removes it.
func (s *Service) SetAvatar(ctx context.Context, userID, email string, url *string) (Profile, error) {
	p, err := s.Get(ctx, userID, email)
	if err != nil {
		return Profile{}, err
	}
	p.AvatarURL = url
	p.UpdatedAt = s.now().UTC()
	return s.repo.Update(ctx, p)
}

// IsAdmin reports whether userID has a profile with the admin role.
func (s *Service) IsAdmin(ctx context.Context, userID string) (bool, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return p.Role == RoleAdmin, nil
}

func (s *Service) ListUserIDs(ctx context.Context) ([]string, error) {
	return s.repo.ListUserIDs(ctx)
}

func (s *Service) ListApproved(ctx context.Context) ([]ApprovedEmail, error) {
	return s.repo.ListApproved(ctx)
}

func (s *Service) Approve(ctx context.Context, email, by string) (ApprovedEmail, error) {
	email = normalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return ApprovedEmail{}, &ValidationError{Fields: map[string]string{"email": "must be a valid email address"}}
	}
	return s.repo.AddApproved(ctx, ApprovedEmail{
		ID:         uuid.NewString(),
		Email:      email,
		ApprovedBy: by,
		CreatedAt:  s.now().UTC(),
	})
}

func (s *Service) RemoveApproved(ctx context.Context, id string) error {
	return s.repo.DeleteApproved(ctx, id)
}

func (s *Service) IsApproved(ctx context.Context, email string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" {
		return false, nil
	}
	return s.repo.IsApproved(ctx, email)
}
