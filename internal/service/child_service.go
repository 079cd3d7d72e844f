package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/growthcast-api/internal/domain"
	"github.com/phrazzld/growthcast-api/internal/store"
)

// ChildService provides child registration and lookup.
type ChildService interface {
	// CreateChild registers a new child.
	CreateChild(ctx context.Context, name string, birthDate time.Time) (*domain.Child, error)

	// GetChild retrieves a child by ID. Returns ErrChildNotFound if it does not exist.
	GetChild(ctx context.Context, id uuid.UUID) (*domain.Child, error)
}

type childService struct {
	children store.ChildStore
	logger   *slog.Logger
}

// NewChildService creates a ChildService.
// It returns an error if the store is nil.
func NewChildService(children store.ChildStore, logger *slog.Logger) (ChildService, error) {
	if children == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "child store cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &childService{
		children: children,
		logger:   logger.With("component", "child_service"),
	}, nil
}

// CreateChild implements ChildService.CreateChild
func (s *childService) CreateChild(ctx context.Context, name string, birthDate time.Time) (*domain.Child, error) {
	child, err := domain.NewChild(name, birthDate)
	if err != nil {
		s.logger.Warn("invalid child", "error", err)
		return nil, NewServiceError("create_child", "invalid child", err)
	}

	if err := s.children.Create(ctx, child); err != nil {
		s.logger.Error("failed to save child", "error", err, "child_id", child.ID)
		return nil, NewServiceError("create_child", "failed to save child", err)
	}

	s.logger.Info("child created", "child_id", child.ID)
	return child, nil
}

// GetChild implements ChildService.GetChild
func (s *childService) GetChild(ctx context.Context, id uuid.UUID) (*domain.Child, error) {
	child, err := s.children.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("get_child", "failed to retrieve child", err)
	}
	return child, nil
}
