// Package memory provides in-memory repository implementations with the
// same error contract as the mongodb package. They back the unit tests and
// are usable as a throwaway store for local development.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/camp-aid/campaid-backend/internal/apperrors"
	"github.com/camp-aid/campaid-backend/internal/models"
	"github.com/camp-aid/campaid-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CampRepository is an in-memory repositories.CampRepository
type CampRepository struct {
	mu    sync.Mutex
	camps map[primitive.ObjectID]*models.Camp
}

// NewCampRepository creates a new in-memory CampRepository
func NewCampRepository() *CampRepository {
	return &CampRepository{camps: make(map[primitive.ObjectID]*models.Camp)}
}

func (r *CampRepository) Create(ctx context.Context, camp *models.Camp) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if camp.ID.IsZero() {
		camp.ID = primitive.NewObjectID()
	}
	cp := *camp
	r.camps[camp.ID] = &cp
	return nil
}

func (r *CampRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Camp, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	camp, ok := r.camps[id]
	if !ok {
		return nil, apperrors.NotFound("camp not found")
	}
	cp := *camp
	return &cp, nil
}

func (r *CampRepository) FindAll(ctx context.Context) ([]*models.Camp, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	camps := make([]*models.Camp, 0, len(r.camps))
	for _, camp := range r.camps {
		cp := *camp
		camps = append(camps, &cp)
	}
	sort.Slice(camps, func(i, j int) bool {
		return camps[i].ID.Hex() < camps[j].ID.Hex()
	})
	return camps, nil
}

func (r *CampRepository) UpdateDetails(ctx context.Context, id primitive.ObjectID, update *models.CampUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	camp, ok := r.camps[id]
	if !ok {
		return apperrors.NotFound("camp not found")
	}
	if update.Name != nil {
		camp.Name = *update.Name
	}
	if update.Description != nil {
		camp.Description = *update.Description
	}
	if update.Location != nil {
		camp.Location = *update.Location
	}
	if update.DateTime != nil {
		camp.DateTime = *update.DateTime
	}
	if update.HealthcareProfessional != nil {
		camp.HealthcareProfessional = *update.HealthcareProfessional
	}
	if update.Fees != nil {
		camp.Fees = *update.Fees
	}
	if update.Capacity != nil {
		camp.Capacity = *update.Capacity
	}
	return nil
}

func (r *CampRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.camps[id]; !ok {
		return apperrors.NotFound("camp not found")
	}
	delete(r.camps, id)
	return nil
}

func (r *CampRepository) AdjustParticipants(ctx context.Context, id primitive.ObjectID, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	camp, ok := r.camps[id]
	if !ok {
		return apperrors.NotFound("camp not found")
	}
	camp.Participants += delta
	return nil
}

func (r *CampRepository) SetParticipants(ctx context.Context, id primitive.ObjectID, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	camp, ok := r.camps[id]
	if !ok {
		return apperrors.NotFound("camp not found")
	}
	camp.Participants = count
	return nil
}

func (r *CampRepository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.camps)), nil
}

// RegistrationRepository is an in-memory repositories.RegistrationRepository
type RegistrationRepository struct {
	mu   sync.Mutex
	regs []*models.Registration
}

// NewRegistrationRepository creates a new in-memory RegistrationRepository
func NewRegistrationRepository() *RegistrationRepository {
	return &RegistrationRepository{}
}

func (r *RegistrationRepository) EnsureIndexes(ctx context.Context) error {
	return nil
}

func (r *RegistrationRepository) Create(ctx context.Context, reg *models.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.regs {
		if existing.CampID == reg.CampID && existing.Email == reg.Email {
			return apperrors.Conflict("already registered for this camp")
		}
	}
	if reg.ID.IsZero() {
		reg.ID = primitive.NewObjectID()
	}
	cp := *reg
	r.regs = append(r.regs, &cp)
	return nil
}

func (r *RegistrationRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, reg := range r.regs {
		if reg.ID == id {
			cp := *reg
			return &cp, nil
		}
	}
	return nil, apperrors.NotFound("registration not found")
}

func (r *RegistrationRepository) FindByCampAndEmail(ctx context.Context, campID primitive.ObjectID, email string) (*models.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, reg := range r.regs {
		if reg.CampID == campID && reg.Email == email {
			cp := *reg
			return &cp, nil
		}
	}
	return nil, apperrors.NotFound("registration not found")
}

func (r *RegistrationRepository) FindByEmail(ctx context.Context, email string) ([]*models.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Registration{}
	for _, reg := range r.regs {
		if reg.Email == email {
			cp := *reg
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *RegistrationRepository) FindAllSummaries(ctx context.Context) ([]*models.RegistrationSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.RegistrationSummary{}
	for _, reg := range r.regs {
		out = append(out, &models.RegistrationSummary{
			ID:                 reg.ID,
			CampID:             reg.CampID,
			Email:              reg.Email,
			CampName:           reg.CampName,
			CampFees:           reg.CampFees,
			ParticipantName:    reg.Participant.Name,
			PaymentStatus:      reg.PaymentStatus,
			ConfirmationStatus: reg.ConfirmationStatus,
		})
	}
	return out, nil
}

func (r *RegistrationRepository) SetPaymentStatus(ctx context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, reg := range r.regs {
		if reg.ID == id {
			reg.PaymentStatus = true
			return true, nil
		}
	}
	return false, nil
}

func (r *RegistrationRepository) SetConfirmationStatus(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, reg := range r.regs {
		if reg.ID == id {
			reg.ConfirmationStatus = true
			return nil
		}
	}
	return apperrors.NotFound("registration not found")
}

func (r *RegistrationRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, reg := range r.regs {
		if reg.ID == id {
			r.regs = append(r.regs[:i], r.regs[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("registration not found")
}

func (r *RegistrationRepository) CountByCamp(ctx context.Context, campID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, reg := range r.regs {
		if reg.CampID == campID {
			n++
		}
	}
	return n, nil
}

// PaymentRepository is an in-memory repositories.PaymentRepository
type PaymentRepository struct {
	mu      sync.Mutex
	records []*models.PaymentRecord
}

// NewPaymentRepository creates a new in-memory PaymentRepository
func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{}
}

func (r *PaymentRepository) Create(ctx context.Context, record *models.PaymentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if record.ID.IsZero() {
		record.ID = primitive.NewObjectID()
	}
	cp := *record
	r.records = append(r.records, &cp)
	return nil
}

func (r *PaymentRepository) FindByEmail(ctx context.Context, email string) ([]*models.PaymentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.PaymentRecord{}
	for _, record := range r.records {
		if record.Email == email {
			cp := *record
			out = append(out, &cp)
		}
	}
	return out, nil
}

// Len reports the number of stored records. Test helper.
func (r *PaymentRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// FeedbackRepository is an in-memory repositories.FeedbackRepository
type FeedbackRepository struct {
	mu      sync.Mutex
	entries []*models.Feedback
}

// NewFeedbackRepository creates a new in-memory FeedbackRepository
func NewFeedbackRepository() *FeedbackRepository {
	return &FeedbackRepository{}
}

func (r *FeedbackRepository) EnsureIndexes(ctx context.Context) error {
	return nil
}

func (r *FeedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.entries {
		if existing.CampID == feedback.CampID && existing.Email == feedback.Email {
			return apperrors.Conflict("feedback already submitted for this camp")
		}
	}
	if feedback.ID.IsZero() {
		feedback.ID = primitive.NewObjectID()
	}
	cp := *feedback
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *FeedbackRepository) FindByCampAndEmail(ctx context.Context, campID primitive.ObjectID, email string) (*models.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, feedback := range r.entries {
		if feedback.CampID == campID && feedback.Email == email {
			cp := *feedback
			return &cp, nil
		}
	}
	return nil, apperrors.NotFound("feedback not found")
}

func (r *FeedbackRepository) FindAll(ctx context.Context) ([]*models.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Feedback, 0, len(r.entries))
	for _, feedback := range r.entries {
		cp := *feedback
		out = append(out, &cp)
	}
	return out, nil
}

func (r *FeedbackRepository) TopCounts(ctx context.Context, n int) ([]models.CampFeedbackCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byCamp := make(map[primitive.ObjectID]int)
	for _, feedback := range r.entries {
		byCamp[feedback.CampID]++
	}
	counts := make([]models.CampFeedbackCount, 0, len(byCamp))
	for campID, count := range byCamp {
		counts = append(counts, models.CampFeedbackCount{CampID: campID, Count: count})
	}
	// Count descending, camp id ascending on ties. Must match the mongodb
	// aggregation sort.
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].CampID.Hex() < counts[j].CampID.Hex()
	})
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts, nil
}

// UserRepository is an in-memory repositories.UserRepository
type UserRepository struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

// NewUserRepository creates a new in-memory UserRepository
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[primitive.ObjectID]*models.User)}
}

func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return apperrors.Conflict("user already exists")
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, apperrors.NotFound("user not found")
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]*models.User, 0, len(r.users))
	for _, user := range r.users {
		cp := *user
		users = append(users, &cp)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].Email < users[j].Email
	})
	return users, nil
}

func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return apperrors.NotFound("user not found")
	}
	delete(r.users, id)
	return nil
}

var (
	_ repositories.CampRepository         = (*CampRepository)(nil)
	_ repositories.RegistrationRepository = (*RegistrationRepository)(nil)
	_ repositories.PaymentRepository      = (*PaymentRepository)(nil)
	_ repositories.FeedbackRepository     = (*FeedbackRepository)(nil)
	_ repositories.UserRepository         = (*UserRepository)(nil)
)
