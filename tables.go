package main

import (
	"context"
	"fmt"
	"github.com/explore-flights/awards/award"
	"github.com/explore-flights/awards/common/adapt"
	"log/slog"
)

type tablesRepo interface {
	ExpansionTables(ctx context.Context) (award.Tables, error)
}

type tablesObject struct {
	s3c    adapt.S3Getter
	bucket string
	key    string
}

// loadExpander picks the first configured table source: the S3 object, then
// the base data database, then the embedded tables.
func loadExpander(ctx context.Context, obj *tablesObject, repo tablesRepo) (*award.Expander, error) {
	if obj != nil {
		var t award.Tables
		if err := adapt.S3GetJson(ctx, obj.s3c, obj.bucket, obj.key, &t); err != nil {
			return nil, fmt.Errorf("failed to load tables from s3://%s/%s: %w", obj.bucket, obj.key, err)
		}

		slog.InfoContext(ctx, "loaded expansion tables from s3", slog.String("bucket", obj.bucket), slog.String("key", obj.key))
		return award.NewExpander(t), nil
	}

	if repo != nil {
		t, err := repo.ExpansionTables(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load tables from base data: %w", err)
		}

		slog.InfoContext(ctx, "loaded expansion tables from base data", slog.Int("countries", len(t.Countries)), slog.Int("cities", len(t.Cities)))
		return award.NewExpander(t), nil
	}

	t, err := award.DefaultTables()
	if err != nil {
		return nil, err
	}

	return award.NewExpander(t), nil
}
