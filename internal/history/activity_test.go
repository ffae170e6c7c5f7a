package history

import (
	"testing"
	"time"

	"github.com/verte-zerg/stardate/internal/model"
)

func recordAt(t time.Time) model.ConversionRecord {
	return model.ConversionRecord{Conversion: model.Conversion{RecordedAt: t}}
}

func TestDailyCounts(t *testing.T) {
	day := time.Date(2025, 3, 1, 23, 30, 0, 0, time.UTC)
	records := []model.ConversionRecord{
		recordAt(day),
		recordAt(day.Add(time.Hour)),
		recordAt(day.Add(2 * time.Hour)),
		recordAt(day.AddDate(0, 0, 3)),
	}
	got := DailyCounts(records)
	want := []float64{1, 2, 0, 1}
	if len(got) != len(want) {
		t.Fatalf("expected %d days, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("day %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestDailyCountsKeepsRecentDays(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	records := []model.ConversionRecord{recordAt(start), recordAt(start.AddDate(1, 0, 0))}
	got := DailyCounts(records)
	if len(got) != maxActivityDays || got[len(got)-1] != 1 {
		t.Fatalf("unexpected counts len=%d last=%v", len(got), got[len(got)-1])
	}
	if DailyCounts(nil) != nil {
		t.Fatalf("expected nil for no records")
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 9}); got != " @" {
		t.Fatalf("unexpected sparkline %q", got)
	}
	if got := Sparkline([]float64{3, 3, 3}); got != "+++" {
		t.Fatalf("flat sparkline %q", got)
	}
	if Sparkline(nil) != "" {
		t.Fatalf("expected empty sparkline")
	}
}
