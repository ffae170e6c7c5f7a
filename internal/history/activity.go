package history

import (
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/stardate/internal/model"
)

const (
	sparkChars      = " .:-=+*#%@"
	maxActivityDays = 60
)

// DailyCounts buckets records by UTC recording day, oldest first. Days
// without records count as zero; only the last maxActivityDays days are kept.
func DailyCounts(records []model.ConversionRecord) []float64 {
	if len(records) == 0 {
		return nil
	}
	first := utcDay(records[0].RecordedAt)
	last := first
	for _, rec := range records[1:] {
		day := utcDay(rec.RecordedAt)
		if day.Before(first) {
			first = day
		}
		if day.After(last) {
			last = day
		}
	}
	if limit := last.AddDate(0, 0, -(maxActivityDays - 1)); first.Before(limit) {
		first = limit
	}
	days := int(last.Sub(first).Hours()/24) + 1
	counts := make([]float64, days)
	for _, rec := range records {
		idx := int(utcDay(rec.RecordedAt).Sub(first).Hours() / 24)
		if idx >= 0 && idx < days {
			counts[idx]++
		}
	}
	return counts
}

func utcDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
