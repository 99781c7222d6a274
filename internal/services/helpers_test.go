package services

import (
	"context"

	"github.com/camp-aid/campaid-backend/internal/models"
	"github.com/camp-aid/campaid-backend/internal/repositories/memory"
	"github.com/camp-aid/campaid-backend/pkg/paygateway"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// testEnv wires the services against in-memory repositories
type testEnv struct {
	campRepo     *memory.CampRepository
	regRepo      *memory.RegistrationRepository
	paymentRepo  *memory.PaymentRepository
	feedbackRepo *memory.FeedbackRepository

	registrations *RegistrationServiceImpl
	payments      *PaymentServiceImpl
	feedback      *FeedbackServiceImpl
	camps         *CampServiceImpl
	workflow      *Workflow

	gateway *stubGateway
}

// stubGateway records the last intent request and can be forced to fail
type stubGateway struct {
	err   error
	calls int
	last  *paygateway.Intent
}

func (g *stubGateway) CreateIntent(ctx context.Context, amount int64, currency string) (*paygateway.Intent, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	g.last = &paygateway.Intent{
		ID:           "pi_test",
		ClientSecret: "pi_test_secret",
		Amount:       amount,
		Currency:     currency,
	}
	return g.last, nil
}

func newTestEnv() *testEnv {
	env := &testEnv{
		campRepo:     memory.NewCampRepository(),
		regRepo:      memory.NewRegistrationRepository(),
		paymentRepo:  memory.NewPaymentRepository(),
		feedbackRepo: memory.NewFeedbackRepository(),
		gateway:      &stubGateway{},
	}
	env.registrations = NewRegistrationService(env.campRepo, env.regRepo)
	env.payments = NewPaymentService(env.regRepo, env.paymentRepo, env.gateway, "usd")
	env.feedback = NewFeedbackService(env.feedbackRepo, env.campRepo)
	env.camps = NewCampService(env.campRepo)
	env.workflow = NewWorkflow(env.registrations, env.payments, env.feedback, env.camps)
	return env
}

func (env *testEnv) mustCreateCamp(name string, fees float64) *models.Camp {
	camp := &models.Camp{Name: name, Fees: fees}
	if err := env.campRepo.Create(context.Background(), camp); err != nil {
		panic(err)
	}
	return camp
}

func (env *testEnv) participants(campID primitive.ObjectID) int {
	camp, err := env.campRepo.FindByID(context.Background(), campID)
	if err != nil {
		panic(err)
	}
	return camp.Participants
}

func details(name string) models.ParticipantDetails {
	return models.ParticipantDetails{Name: name, Age: 30, Phone: "0800000000", Gender: "other"}
}
