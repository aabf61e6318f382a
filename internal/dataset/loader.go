package dataset

import (
	"context"
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"golang.org/x/sync/errgroup"

	"bikeshare/internal/core"
	"bikeshare/internal/log"
)

// Load fetches both tables concurrently, decodes them and builds the sorted
// dataset. The first failure cancels the other fetch; nothing is returned
// from a partial load.
func Load(ctx context.Context, logger *log.Logger, daily, hourly Table) (core.Dataset, error) {
	var dayFrame, hourFrame dataframe.DataFrame

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		df, err := daily.Fetch(gctx)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", daily.Name, err)
		}
		dayFrame = df
		return nil
	})
	g.Go(func() error {
		df, err := hourly.Fetch(gctx)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", hourly.Name, err)
		}
		hourFrame = df
		return nil
	})
	if err := g.Wait(); err != nil {
		return core.Dataset{}, err
	}

	days, err := DecodeDaily(daily.Name, dayFrame)
	if err != nil {
		return core.Dataset{}, fmt.Errorf("decode daily table: %w", err)
	}
	hours, hasSeason, err := DecodeHourly(hourly.Name, hourFrame)
	if err != nil {
		return core.Dataset{}, fmt.Errorf("decode hourly table: %w", err)
	}

	if err := CheckIntegrity(days); err != nil {
		logger.WarnContext(ctx, "Daily table has inconsistent totals",
			log.FieldOperation, log.OpValidate,
			log.FieldError, err.Error())
	}

	ds := core.NewDataset(days, hours, hasSeason)
	logger.InfoContext(ctx, "Dataset loaded",
		log.FieldRowsDaily, len(days),
		log.FieldRowsHourly, len(hours),
		"hourly_season", hasSeason)
	return ds, nil
}
