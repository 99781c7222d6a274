package services

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/camp-aid/campaid-backend/internal/apperrors"
	"github.com/camp-aid/campaid-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSubmitStoresOneFeedbackPerPair(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	camp := env.mustCreateCamp("Camp X", 50)

	if _, err := env.feedback.Submit(ctx, camp.ID, "a@x.com", 4, "great camp"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := env.feedback.Submit(ctx, camp.ID, "a@x.com", 5, "changed my mind"); !apperrors.IsConflict(err) {
		t.Fatalf("duplicate submit error = %v, want conflict", err)
	}

	all, err := env.feedback.AllFeedback(ctx)
	if err != nil {
		t.Fatalf("all feedback: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("stored feedback = %d, want 1", len(all))
	}
	if all[0].Rating != 4 {
		t.Fatalf("stored rating = %d, want the first submission's 4", all[0].Rating)
	}
}

func TestSubmitValidation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	camp := env.mustCreateCamp("Camp X", 50)

	cases := []struct {
		name    string
		email   string
		rating  int
		comment string
	}{
		{"zero rating", "a@x.com", 0, "fine"},
		{"rating above five", "a@x.com", 6, "fine"},
		{"empty comment", "a@x.com", 3, "  "},
		{"empty email", "", 3, "fine"},
	}
	for _, tc := range cases {
		if _, err := env.feedback.Submit(ctx, camp.ID, tc.email, tc.rating, tc.comment); !apperrors.IsValidation(err) {
			t.Errorf("%s: error = %v, want validation", tc.name, err)
		}
	}
}

func TestSubmitUnknownCamp(t *testing.T) {
	env := newTestEnv()

	_, err := env.feedback.Submit(context.Background(), primitive.NewObjectID(), "a@x.com", 4, "fine")
	if !apperrors.IsNotFound(err) {
		t.Fatalf("error = %v, want not found", err)
	}
}

func TestTopRankedOrdersByCountWithStableTieBreak(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	campA := env.mustCreateCamp("Camp A", 10)
	campB := env.mustCreateCamp("Camp B", 10)
	campC := env.mustCreateCamp("Camp C", 10)
	campD := env.mustCreateCamp("Camp D", 10)

	submit := func(camp *models.Camp, n int) {
		for i := 0; i < n; i++ {
			if _, err := env.feedback.Submit(ctx, camp.ID, fmt.Sprintf("u%d@x.com", i), 4, "fine"); err != nil {
				t.Fatalf("submit for %s: %v", camp.Name, err)
			}
		}
	}
	submit(campA, 5)
	submit(campB, 5)
	submit(campC, 3)
	submit(campD, 1)

	ranked, err := env.feedback.TopRanked(ctx, 3)
	if err != nil {
		t.Fatalf("top ranked: %v", err)
	}
	if len(ranked) != 3 {
		t.Fatalf("ranked length = %d, want 3", len(ranked))
	}

	// A and B tie at 5 and order by camp id ascending; C follows at 3;
	// D never makes the cut.
	tied := []string{campA.ID.Hex(), campB.ID.Hex()}
	sort.Strings(tied)
	if ranked[0].Camp.ID.Hex() != tied[0] || ranked[1].Camp.ID.Hex() != tied[1] {
		t.Fatalf("tie-break order = [%s %s], want [%s %s]",
			ranked[0].Camp.ID.Hex(), ranked[1].Camp.ID.Hex(), tied[0], tied[1])
	}
	if ranked[0].FeedbackCount != 5 || ranked[1].FeedbackCount != 5 || ranked[2].FeedbackCount != 3 {
		t.Fatalf("counts = [%d %d %d], want [5 5 3]",
			ranked[0].FeedbackCount, ranked[1].FeedbackCount, ranked[2].FeedbackCount)
	}
	if ranked[2].Camp.ID != campC.ID {
		t.Fatalf("third camp = %s, want Camp C", ranked[2].Camp.Name)
	}
}

func TestTopRankedExcludesZeroFeedbackCamps(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	campA := env.mustCreateCamp("Camp A", 10)
	env.mustCreateCamp("Camp B", 10) // no feedback

	if _, err := env.feedback.Submit(ctx, campA.ID, "a@x.com", 5, "fine"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	ranked, err := env.feedback.TopRanked(ctx, 3)
	if err != nil {
		t.Fatalf("top ranked: %v", err)
	}
	if len(ranked) != 1 || ranked[0].Camp.ID != campA.ID {
		t.Fatalf("unexpected ranking: %+v", ranked)
	}
}

func TestTopRankedRejectsNonPositiveN(t *testing.T) {
	env := newTestEnv()

	if _, err := env.feedback.TopRanked(context.Background(), 0); !apperrors.IsValidation(err) {
		t.Fatalf("error = %v, want validation", err)
	}
}
