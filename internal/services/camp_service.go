package services

import (
	"context"

	"github.com/camp-aid/campaid-backend/internal/apperrors"
	"github.com/camp-aid/campaid-backend/internal/models"
	"github.com/camp-aid/campaid-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Compile-time check to ensure CampServiceImpl implements CampService
var _ CampService = (*CampServiceImpl)(nil)

type CampServiceImpl struct {
	campRepo repositories.CampRepository
}

func NewCampService(campRepo repositories.CampRepository) *CampServiceImpl {
	return &CampServiceImpl{campRepo: campRepo}
}

// CreateCamp stores a new camp listing. The participants counter always
// starts at zero; only the registration workflow moves it.
func (s *CampServiceImpl) CreateCamp(ctx context.Context, camp *models.Camp) error {
	if camp.Name == "" {
		return apperrors.Validation("camp name is required")
	}
	if camp.Fees < 0 {
		return apperrors.Validation("camp fee cannot be negative")
	}
	if camp.Capacity < 0 {
		return apperrors.Validation("camp capacity cannot be negative")
	}
	camp.Participants = 0
	return s.campRepo.Create(ctx, camp)
}

// GetCamp retrieves one camp
func (s *CampServiceImpl) GetCamp(ctx context.Context, id primitive.ObjectID) (*models.Camp, error) {
	var camp *models.Camp
	err := retryRead(ctx, func() error {
		var e error
		camp, e = s.campRepo.FindByID(ctx, id)
		return e
	})
	return camp, err
}

// ListCamps retrieves all camps
func (s *CampServiceImpl) ListCamps(ctx context.Context) ([]*models.Camp, error) {
	var camps []*models.Camp
	err := retryRead(ctx, func() error {
		var e error
		camps, e = s.campRepo.FindAll(ctx)
		return e
	})
	return camps, err
}

// UpdateCamp updates the admin-editable camp fields
func (s *CampServiceImpl) UpdateCamp(ctx context.Context, id primitive.ObjectID, update *models.CampUpdate) error {
	if update.Fees != nil && *update.Fees < 0 {
		return apperrors.Validation("camp fee cannot be negative")
	}
	if update.Capacity != nil && *update.Capacity < 0 {
		return apperrors.Validation("camp capacity cannot be negative")
	}
	return s.campRepo.UpdateDetails(ctx, id, update)
}

// DeleteCamp removes a camp listing
func (s *CampServiceImpl) DeleteCamp(ctx context.Context, id primitive.ObjectID) error {
	return s.campRepo.Delete(ctx, id)
}
