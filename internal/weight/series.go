package weight

import (
	"sort"
	"strings"
	"time"
)

// Canonical range and aggregate identifiers.
const (
	RangeDay   = "day"
	RangeWeek  = "week"
	RangeMonth = "month"
	RangeYear  = "year"

	AggregateLatest = "latest"
	AggregateAvg    = "avg"
)

// Entry is a single dated weight observation fed to Aggregate. The
// aggregator never mutates its inputs.
type Entry struct {
	ID        string
	Date      time.Time
	WeightKg  float64
	Note      *string
	Source    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AggregateInfo marks a point that was collapsed from a multi-entry bucket.
type AggregateInfo struct {
	Mode       string `json:"mode"`
	SampleSize int    `json:"sampleSize"`
}

// Point is one element of an aggregated series.
type Point struct {
	ID         string         `json:"id"`
	Date       time.Time      `json:"date"`
	WeightKg   float64        `json:"weightKg"`
	Note       *string        `json:"note"`
	Source     *string        `json:"source"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	Aggregated *AggregateInfo `json:"aggregated"`
}

// Stats summarises an aggregated series; all fields are nil for an empty
// series.
type Stats struct {
	Latest  *float64 `json:"latest"`
	Min     *float64 `json:"min"`
	Max     *float64 `json:"max"`
	Average *float64 `json:"average"`
}

// NormalizeRange maps a query value (including French synonyms) onto a
// canonical range, defaulting to week.
func NormalizeRange(value string) string {
	switch strings.ToLower(value) {
	case RangeDay, "jour":
		return RangeDay
	case RangeMonth, "mois":
		return RangeMonth
	case RangeYear, "annee":
		return RangeYear
	default:
		return RangeWeek
	}
}

// NormalizeAggregate maps a query value onto an aggregate mode, defaulting
// to latest.
func NormalizeAggregate(value string) string {
	switch strings.ToLower(value) {
	case AggregateAvg, "average", "moyenne":
		return AggregateAvg
	default:
		return AggregateLatest
	}
}

// RangeBounds returns the lookback window for a range. end is always now
// itself (full timestamp); start is the UTC start of today shifted back by
// the range length. Unrecognized ranges fall back to week.
func RangeBounds(rng string, now time.Time) (start, end time.Time) {
	startOfToday := StartOfDayUTC(now)
	switch strings.ToLower(rng) {
	case RangeDay, "jour":
		start = startOfToday
	case RangeYear, "annee":
		start = startOfToday.AddDate(0, 0, -364)
	case RangeMonth, "mois":
		start = startOfToday.AddDate(0, 0, -29)
	default:
		start = startOfToday.AddDate(0, 0, -6)
	}
	return start, now
}

func dayKeyUTC(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Aggregate collapses observations into at most one point per UTC calendar
// day, sorted ascending by date. Mode latest keeps the most recent entry of
// each day (last-wins on equal timestamps); mode avg emits a synthetic
// "avg-<day>" point at the day's UTC midnight holding the rounded mean.
// Unrecognized modes behave as latest.
func Aggregate(entries []Entry, mode string) []Point {
	if len(entries) == 0 {
		return []Point{}
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	for i := range sorted {
		if sorted[i].CreatedAt.IsZero() {
			sorted[i].CreatedAt = sorted[i].Date
		}
		if sorted[i].UpdatedAt.IsZero() {
			sorted[i].UpdatedAt = sorted[i].Date
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	if mode == AggregateAvg {
		return aggregateAvg(sorted)
	}
	return aggregateLatest(sorted)
}

func aggregateAvg(sorted []Entry) []Point {
	type bucket struct {
		first time.Time
		sum   float64
		n     int
	}
	byDay := make(map[string]*bucket)
	for _, e := range sorted {
		key := dayKeyUTC(e.Date)
		b, ok := byDay[key]
		if !ok {
			b = &bucket{first: e.Date}
			byDay[key] = b
		}
		b.sum += e.WeightKg
		b.n++
	}

	points := make([]Point, 0, len(byDay))
	for key, b := range byDay {
		day := StartOfDayUTC(b.first)
		points = append(points, Point{
			ID:         "avg-" + key,
			Date:       day,
			WeightKg:   round2(b.sum / float64(b.n)),
			CreatedAt:  day,
			UpdatedAt:  day,
			Aggregated: &AggregateInfo{Mode: AggregateAvg, SampleSize: b.n},
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points
}

func aggregateLatest(sorted []Entry) []Point {
	latestByDay := make(map[string]Entry)
	for _, e := range sorted {
		key := dayKeyUTC(e.Date)
		cur, ok := latestByDay[key]
		if !ok || !e.Date.Before(cur.Date) {
			latestByDay[key] = e
		}
	}

	points := make([]Point, 0, len(latestByDay))
	for _, e := range latestByDay {
		var source *string
		if e.Source != "" {
			s := e.Source
			source = &s
		}
		points = append(points, Point{
			ID:        e.ID,
			Date:      e.Date,
			WeightKg:  round2(e.WeightKg),
			Note:      e.Note,
			Source:    source,
			CreatedAt: e.CreatedAt,
			UpdatedAt: e.UpdatedAt,
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points
}

// ComputeStats summarises an already date-sorted series. latest is the last
// element of the sequence as given, never a recomputed max-date lookup.
func ComputeStats(points []Point) Stats {
	if len(points) == 0 {
		return Stats{}
	}

	min, max := points[0].WeightKg, points[0].WeightKg
	sum := 0.0
	for _, p := range points {
		if p.WeightKg < min {
			min = p.WeightKg
		}
		if p.WeightKg > max {
			max = p.WeightKg
		}
		sum += p.WeightKg
	}

	latest := round2(points[len(points)-1].WeightKg)
	minR := round2(min)
	maxR := round2(max)
	avg := round2(sum / float64(len(points)))
	return Stats{Latest: &latest, Min: &minR, Max: &maxR, Average: &avg}
}
