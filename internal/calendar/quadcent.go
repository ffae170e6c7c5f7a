package calendar

import (
	"github.com/verte-zerg/stardate/internal/instant"
	"github.com/verte-zerg/stardate/internal/wide"
)

const (
	quadcentSep = '*'

	// quadcentYear is a quarter of a 400-year Gregorian cycle, in seconds.
	quadcentYear = 31556952
	// standardYear is 365 days of 86400 seconds.
	standardYear = 31536000
	// anchorYear is the quadcent year starting exactly at instant.QuadcentEpoch.
	anchorYear = 323
)

// ParseQuadcent reads a quadcent date such as 2323*01*01T00:00:00. Every
// quadcent year has 365 days, each stretched so the year lasts 31556952 s.
func ParseQuadcent(text string) (instant.Time, error) {
	d, yearOverflow, err := readDate(text, quadcentSep)
	if err != nil {
		return instant.Time{}, err
	}
	if d.Day > commonDays[d.Month-1] {
		return instant.Time{}, instant.Domain("day is out of range", text)
	}

	// Years before the anchor are placed one cycle later, then pulled back.
	low := d.Year < anchorYear
	years := wide.Check(d.Year).Sub(anchorYear)
	if low {
		years = wide.Check(d.Year).Add(400 - anchorYear)
	}
	secs := wide.Check(instant.QuadcentEpoch).AddChecked(years.Mul(quadcentYear))

	// Nominal seconds into the year, rescaled by quadcentYear/standardYear.
	nominal := wide.Uint(dayOfYear(&commonDays, d.Month, d.Day))*86400 + secondOfDay(d)
	scaled := nominal * quadcentYear
	secs = secs.Add(scaled.Div(standardYear))
	frac := wide.Make(scaled.Mod(standardYear), standardYear-1).Div(standardYear)
	if low {
		secs = secs.Sub(instant.QuadcentSpan)
	}
	return instant.Finish(secs.WithOverflow(yearOverflow), frac.Low(), text)
}

// FormatQuadcent renders t as YYYY*MM*DDTHH:MM:SS.
func FormatQuadcent(t instant.Time) string {
	secs := t.Sec
	low := secs < instant.QuadcentEpoch
	if low {
		secs += instant.QuadcentSpan
	}
	secs -= instant.QuadcentEpoch
	elapsed := uint64(secs.Mod(quadcentYear))
	year := secs.Div(quadcentYear)
	if low {
		year -= 400 - anchorYear
	} else {
		year += anchorYear
	}

	// Real seconds into the year become nominal seconds: x 146000 / 146097.
	h := elapsed*146000 + (uint64(t.Frac)*146000)>>32
	nominal := h / 146097
	return render(quadcentSep, neverLeap, 1, year, int(nominal/86400), uint32(nominal%86400))
}
