package seed

import (
	"context"
	"fmt"

	"rotomethiopia/internal/store"
	"rotomethiopia/pkg/types"
)

var days = []types.Day{
	{ID: "day-mon", Name: "Mon"},
	{ID: "day-tue", Name: "Tue"},
	{ID: "day-wed", Name: "Wed"},
	{ID: "day-thu", Name: "Thu"},
	{ID: "day-fri", Name: "Fri"},
	{ID: "day-sat", Name: "Sat"},
	{ID: "day-sun", Name: "Sun"},
}

func SeedDays(ctx context.Context, dayRepo *store.DayRepository) error {
	for i := range days {
		if err := dayRepo.UpsertDay(ctx, &days[i]); err != nil {
			return fmt.Errorf("failed to seed day %s: %w", days[i].Name, err)
		}
	}

	return nil
}
