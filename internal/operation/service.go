package operation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/wichananm65/estate-crm/internal/contract"
	"github.com/wichananm65/estate-crm/internal/logging"
)

var ErrInvalid = errors.New("invalid operation")

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return ErrInvalid.Error() }

func (e *ValidationError) Unwrap() error { return ErrInvalid }

// ContractCreator records the contract that follows a closed deal.
type ContractCreator interface {
	CreateFromOperation(ctx context.Context, userID string, op contract.OperationSummary) (contract.Contract, error)
}

type Service struct {
	repo      Repository
	contracts ContractCreator
	lggr      logging.Logger
	now       func() time.Time
}

// NewService wires the repository with an optional contract creator.
func NewService(repo Repository, contracts ContractCreator, lggr logging.Logger) *Service {
	if lggr == nil {
		lggr = logging.Nop()
	}
	return &Service{repo: repo, contracts: contracts, lggr: lggr, now: time.Now}
}

func (s *Service) List(ctx context.Context, userID string) ([]Operation, error) {
	return s.repo.List(ctx, userID)
}

// Create stores the operation and then its contract. A contract failure is
// logged and the operation is still returned.
func (s *Service) Create(ctx context.Context, userID string, in Input) (Operation, error) {
	if errs := in.validate(); len(errs) > 0 {
		return Operation{}, &ValidationError{Fields: errs}
	}
	now := s.now().UTC()
	op := Operation{
		ID:           uuid.NewString(),
		UserID:       userID,
		Type:         ParseKind(in.Type),
		SellerName:   in.SellerName,
		SellerPhone:  in.SellerPhone,
		SellerEmail:  in.SellerEmail,
		BuyerName:    in.BuyerName,
		BuyerPhone:   in.BuyerPhone,
		BuyerEmail:   in.BuyerEmail,
		PropertyType: in.PropertyType,
		Location:     in.Location,
		Price:        in.Price,
		Commission:   in.Commission,
		Notes:        in.Notes,
		CompletedAt:  now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.CompletedAt != nil {
		op.CompletedAt = in.CompletedAt.UTC()
	}

	created, err := s.repo.Create(ctx, op)
	if err != nil {
		return Operation{}, err
	}

	if s.contracts != nil {
		c, err := s.contracts.CreateFromOperation(ctx, userID, summary(created))
		if err != nil {
			s.lggr.Errorw("contract creation failed", "user", userID, "operation", created.ID, "error", err)
		} else {
			s.lggr.Infow("contract created", "user", userID, "operation", created.ID, "contract", c.ID)
		}
	}
	return created, nil
}

func summary(op Operation) contract.OperationSummary {
	return contract.OperationSummary{
		Sale:         op.Type == KindSale,
		PropertyType: op.PropertyType,
		Location:     op.Location,
		Price:        op.Price,
		SellerName:   op.SellerName,
		BuyerName:    op.BuyerName,
	}
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}
