package service

import (
	"context"
	"strings"

	"github.com/colegioeccos/requesthub/internal/domain"
	"github.com/colegioeccos/requesthub/internal/repository"
	"github.com/colegioeccos/requesthub/pkg/apperrors"
)

// EquipmentService manages the catalog of reservable assets.
type EquipmentService struct {
	catalog repository.EquipmentRepository
}

// NewEquipmentService builds the service.
func NewEquipmentService(catalog repository.EquipmentRepository) *EquipmentService {
	return &EquipmentService{catalog: catalog}
}

// ListAll returns the whole catalog.
func (s *EquipmentService) ListAll(ctx context.Context) ([]domain.Equipment, error) {
	return s.catalog.List(ctx)
}

// ListByType returns catalog entries of one type.
func (s *EquipmentService) ListByType(ctx context.Context, equipmentType domain.EquipmentType) ([]domain.Equipment, error) {
	return s.catalog.ListByType(ctx, equipmentType)
}

// Add registers a new asset.
func (s *EquipmentService) Add(ctx context.Context, actor *domain.Principal, equipmentType domain.EquipmentType, name string) (*domain.Equipment, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", map[string]any{"field": "name"})
	}
	if strings.TrimSpace(string(equipmentType)) == "" {
		return nil, apperrors.NewValidationError("type required", map[string]any{"field": "type"})
	}

	equipment := &domain.Equipment{
		Type:        equipmentType,
		Name:        name,
		IsAvailable: true,
	}
	if err := s.catalog.Create(ctx, equipment); err != nil {
		return nil, err
	}
	return equipment, nil
}

// Remove deletes an asset from the catalog.
func (s *EquipmentService) Remove(ctx context.Context, actor *domain.Principal, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	return s.catalog.Delete(ctx, id)
}
