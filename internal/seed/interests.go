package seed

import (
	"context"
	"fmt"

	"rotomethiopia/internal/store"
	"rotomethiopia/pkg/types"
)

var interests = []types.InterestCategory{
	{ID: "interest-companionship", Name: "Companionship Visits"},
	{ID: "interest-feeding", Name: "Feeding Program"},
	{ID: "interest-medical", Name: "Medical Outreach"},
	{ID: "interest-fundraising", Name: "Fundraising"},
	{ID: "interest-events", Name: "Event Support"},
	{ID: "interest-translation", Name: "Translation"},
	{ID: "interest-media", Name: "Photography & Media"},
	{ID: "interest-admin", Name: "Administrative Support"},
}

func SeedInterests(ctx context.Context, interestRepo *store.InterestRepository) error {
	for i := range interests {
		if err := interestRepo.UpsertInterest(ctx, &interests[i]); err != nil {
			return fmt.Errorf("failed to seed interest %s: %w", interests[i].Name, err)
		}
	}

	return nil
}
