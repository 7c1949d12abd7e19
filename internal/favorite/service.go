package favorite

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidClientType = errors.New("clientType must be buyer or seller")

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(r Repository) *Service {
	return &Service{repo: r, now: time.Now}
}

func (s *Service) Add(ctx context.Context, userID, clientID string, typ ClientType) (Favorite, error) {
	if typ == "" {
		return Favorite{}, ErrInvalidClientType
	}
	return s.repo.Add(ctx, Favorite{
		ID:         uuid.NewString(),
		UserID:     userID,
		ClientID:   clientID,
		ClientType: typ,
		CreatedAt:  s.now().UTC(),
	})
}

func (s *Service) Remove(ctx context.Context, userID, clientID string, typ ClientType) error {
	if typ == "" {
		return ErrInvalidClientType
	}
	return s.repo.Remove(ctx, userID, clientID, typ)
}

// Toggle adds the client when absent and removes it otherwise. It reports
// whether the client is a favorite afterwards.
func (s *Service) Toggle(ctx context.Context, userID, clientID string, typ ClientType) (bool, error) {
	if typ == "" {
		return false, ErrInvalidClientType
	}
	err := s.repo.Remove(ctx, userID, clientID, typ)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrNotFavorite) {
		return false, err
	}
	if _, err := s.Add(ctx, userID, clientID, typ); err != nil && !errors.Is(err, ErrAlreadyFavorite) {
		return false, err
	}
	return true, nil
}

func (s *Service) List(ctx context.Context, userID string, typ ClientType) ([]Favorite, error) {
	return s.repo.List(ctx, userID, typ)
}

func (s *Service) IsFavorite(ctx context.Context, userID, clientID string, typ ClientType) (bool, error) {
	if typ == "" {
		return false, ErrInvalidClientType
	}
	return s.repo.Exists(ctx, userID, clientID, typ)
}
