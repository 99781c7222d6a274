package services

import (
	"context"
	"strings"

	"github.com/camp-aid/campaid-backend/internal/apperrors"
	"github.com/camp-aid/campaid-backend/internal/models"
	"github.com/camp-aid/campaid-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure FeedbackServiceImpl implements FeedbackService
var _ FeedbackService = (*FeedbackServiceImpl)(nil)

// DefaultTopRanked is the product's current top-N size for the camp ranking
const DefaultTopRanked = 3

type FeedbackServiceImpl struct {
	feedbackRepo repositories.FeedbackRepository
	campRepo     repositories.CampRepository
}

func NewFeedbackService(feedbackRepo repositories.FeedbackRepository, campRepo repositories.CampRepository) *FeedbackServiceImpl {
	return &FeedbackServiceImpl{
		feedbackRepo: feedbackRepo,
		campRepo:     campRepo,
	}
}

// Submit stores one feedback entry per (campID, email). The pre-check is
// an optimization that avoids a doomed write; two concurrent submissions
// can both pass it, and the unique index decides the winner.
func (s *FeedbackServiceImpl) Submit(ctx context.Context, campID primitive.ObjectID, email string, rating int, comment string) (*models.Feedback, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, apperrors.Validation("email is required")
	}
	if rating < 1 || rating > 5 {
		return nil, apperrors.Validation("rating must be between 1 and 5")
	}
	if strings.TrimSpace(comment) == "" {
		return nil, apperrors.Validation("comment is required")
	}

	camp, err := s.campRepo.FindByID(ctx, campID)
	if err != nil {
		return nil, err
	}

	if _, err := s.feedbackRepo.FindByCampAndEmail(ctx, campID, email); err == nil {
		return nil, apperrors.Conflict("feedback already submitted for this camp")
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}

	feedback := &models.Feedback{
		CampID:   campID,
		Email:    email,
		Rating:   rating,
		Comment:  comment,
		CampName: camp.Name,
	}
	if err := s.feedbackRepo.Create(ctx, feedback); err != nil {
		return nil, err
	}

	slog.Info("feedback submitted", "campId", campID.Hex(), "email", email, "rating", rating)
	return feedback, nil
}

// TopRanked returns the n camps with the most feedback. Groups order by
// count descending with camp id ascending on ties; camps whose record has
// since been deleted are skipped rather than failing the whole listing.
func (s *FeedbackServiceImpl) TopRanked(ctx context.Context, n int) ([]models.RankedCamp, error) {
	if n <= 0 {
		return nil, apperrors.Validation("ranking size must be positive")
	}

	var counts []models.CampFeedbackCount
	err := retryRead(ctx, func() error {
		var e error
		counts, e = s.feedbackRepo.TopCounts(ctx, n)
		return e
	})
	if err != nil {
		return nil, err
	}

	ranked := make([]models.RankedCamp, 0, len(counts))
	for _, count := range counts {
		camp, err := s.campRepo.FindByID(ctx, count.CampID)
		if err != nil {
			if apperrors.IsNotFound(err) {
				slog.Warn("feedback references deleted camp", "campId", count.CampID.Hex())
				continue
			}
			return nil, err
		}
		ranked = append(ranked, models.RankedCamp{
			Camp:          *camp,
			FeedbackCount: count.Count,
		})
	}

	return ranked, nil
}

// AllFeedback returns every feedback entry for public display
func (s *FeedbackServiceImpl) AllFeedback(ctx context.Context) ([]*models.Feedback, error) {
	var feedback []*models.Feedback
	err := retryRead(ctx, func() error {
		var e error
		feedback, e = s.feedbackRepo.FindAll(ctx)
		return e
	})
	return feedback, err
}
