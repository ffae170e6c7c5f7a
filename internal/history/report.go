// Package history builds and renders reports of recorded conversions.
package history

import (
	"context"

	"github.com/verte-zerg/stardate/internal/model"
	"github.com/verte-zerg/stardate/internal/store"
)

// Report contains precomputed data for history rendering.
type Report struct {
	Records []model.ConversionRecord
	Counts  []model.KindCount
}

// BuildReport loads and prepares data for history rendering. The summary
// counts cover the same filtered records as the table.
func BuildReport(ctx context.Context, st *store.Store, cfg model.HistoryConfig) (Report, error) {
	records, err := st.ListConversions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	counts, err := st.CountByKind(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	return Report{Records: records, Counts: counts}, nil
}
