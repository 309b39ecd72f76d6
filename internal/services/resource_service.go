package services

import (
	"context"
	"encoding/json"
	"fmt"

	"museum-backend/internal/models"
	"museum-backend/internal/repository"

	"github.com/sirupsen/logrus"
)

// ResourceService persists validated input for one entity type.
type ResourceService[T any] interface {
	List(ctx context.Context, q repository.ListQuery) ([]T, int64, error)
	Get(ctx context.Context, id string, includes ...string) (*T, error)
	FindOne(ctx context.Context, conditions map[string]any, includes ...string) (*T, error)
	Create(ctx context.Context, values map[string]any, includes ...string) (*T, error)
	Update(ctx context.Context, id string, values map[string]any, includes ...string) (*T, error)
	Delete(ctx context.Context, id string) error
	SetFlag(ctx context.Context, id, column string, value, exclusive bool) (*T, error)
	ClearFlag(ctx context.Context, column string) error
	Attach(ctx context.Context, id, relation string, related any) error
	Detach(ctx context.Context, id, relation string, related any) error
}

type resourceService[T any] struct {
	name   string
	repo   repository.Repository[T]
	logger *logrus.Logger
}

func NewResourceService[T any](name string, repo repository.Repository[T], logger *logrus.Logger) ResourceService[T] {
	return &resourceService[T]{
		name:   name,
		repo:   repo,
		logger: logger,
	}
}

func (s *resourceService[T]) List(ctx context.Context, q repository.ListQuery) ([]T, int64, error) {
	return s.repo.List(ctx, q)
}

func (s *resourceService[T]) Get(ctx context.Context, id string, includes ...string) (*T, error) {
	return s.repo.FindByID(ctx, id, includes...)
}

func (s *resourceService[T]) FindOne(ctx context.Context, conditions map[string]any, includes ...string) (*T, error) {
	return s.repo.FindOne(ctx, conditions, includes...)
}

func (s *resourceService[T]) Create(ctx context.Context, values map[string]any, includes ...string) (*T, error) {
	entity, err := decode[T](values)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, entity); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", s.name, err)
	}

	id := identify(entity)
	s.logger.WithFields(logrus.Fields{"resource": s.name, "id": id}).Info("Resource created")
	return s.repo.FindByID(ctx, id, includes...)
}

func (s *resourceService[T]) Update(ctx context.Context, id string, values map[string]any, includes ...string) (*T, error) {
	if err := s.repo.Update(ctx, id, values); err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", s.name, err)
	}

	s.logger.WithFields(logrus.Fields{"resource": s.name, "id": id}).Info("Resource updated")
	return s.repo.FindByID(ctx, id, includes...)
}

func (s *resourceService[T]) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete %s: %w", s.name, err)
	}

	s.logger.WithFields(logrus.Fields{"resource": s.name, "id": id}).Info("Resource deleted")
	return nil
}

func (s *resourceService[T]) SetFlag(ctx context.Context, id, column string, value, exclusive bool) (*T, error) {
	if err := s.repo.SetFlag(ctx, id, column, value, exclusive); err != nil {
		return nil, fmt.Errorf("failed to set %s.%s: %w", s.name, column, err)
	}

	s.logger.WithFields(logrus.Fields{"resource": s.name, "id": id, column: value}).Info("Resource flag updated")
	return s.repo.FindByID(ctx, id)
}

func (s *resourceService[T]) ClearFlag(ctx context.Context, column string) error {
	if err := s.repo.ClearFlag(ctx, column); err != nil {
		return fmt.Errorf("failed to clear %s.%s: %w", s.name, column, err)
	}
	return nil
}

func (s *resourceService[T]) Attach(ctx context.Context, id, relation string, related any) error {
	if err := s.repo.Attach(ctx, id, relation, related); err != nil {
		return fmt.Errorf("failed to attach %s to %s: %w", relation, s.name, err)
	}
	return nil
}

func (s *resourceService[T]) Detach(ctx context.Context, id, relation string, related any) error {
	if err := s.repo.Detach(ctx, id, relation, related); err != nil {
		return fmt.Errorf("failed to detach %s from %s: %w", relation, s.name, err)
	}
	return nil
}

// decode builds an entity from validated values through its JSON tags.
func decode[T any](values map[string]any) (*T, error) {
	raw, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("failed to encode values: %w", err)
	}
	entity := new(T)
	if err := json.Unmarshal(raw, entity); err != nil {
		return nil, fmt.Errorf("failed to decode values: %w", err)
	}
	return entity, nil
}

func identify(entity any) string {
	if e, ok := entity.(models.Identifiable); ok {
		return e.GetID()
	}
	return ""
}
