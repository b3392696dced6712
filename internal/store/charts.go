package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/cesargomez89/soundboard/internal/constants"
	"github.com/cesargomez89/soundboard/internal/domain"
)

// Window is the half-open interval [Start, End) a chart aggregates over.
type Window struct {
	Start time.Time
	End   time.Time
}

var farFuture = time.Date(9999, 12, 31, 23, 59, 59, 999e6, time.UTC)

// AllTimeWindow covers everything since the statistics epoch.
func AllTimeWindow() Window {
	return Window{
		Start: time.Date(constants.StatsEpochYear, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   farFuture,
	}
}

// YearWindow covers one calendar year in UTC.
func YearWindow(year int) Window {
	return Window{
		Start: time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year+1, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (w Window) bounds() (string, string) {
	return domain.NewISOTime(w.Start).String(), domain.NewISOTime(w.End).String()
}

// chartSource describes what a chart counts. Every chart shares topChart, so
// the windowing, grouping and ordering rules live in one place.
type chartSource struct {
	from      string
	key       string
	aggregate string
	dateCol   string
	filters   []string
}

var (
	sharedContentSource = chartSource{
		from:      "user_share_log l",
		key:       "l.content_id",
		aggregate: "COUNT(*)",
		dateCol:   "l.date_time",
	}

	audienceContentSource = chartSource{
		from:      "audience_sharing_statistic st",
		key:       "st.content_id",
		aggregate: "SUM(st.share_count)",
		dateCol:   "st.date_time",
	}

	sharedAuthorSource = chartSource{
		from:      "user_share_log l JOIN sound s ON s.id = l.content_id JOIN author a ON a.id = s.author_id",
		key:       "a.id",
		aggregate: "COUNT(*)",
		dateCol:   "l.date_time",
	}
)

func (src chartSource) withFilter(f string) chartSource {
	filters := make([]string, 0, len(src.filters)+1)
	filters = append(filters, src.filters...)
	src.filters = append(filters, f)
	return src
}

// topChart groups rows of src inside w, ranks by the aggregate descending and
// breaks ties by key ascending.
func (db *DB) topChart(src chartSource, w Window, limit int) ([]domain.ChartEntry, error) {
	if limit <= 0 {
		limit = constants.DefaultChartLimit
	}
	if limit > constants.MaxChartLimit {
		limit = constants.MaxChartLimit
	}

	conds := append([]string{src.dateCol + " >= ?", src.dateCol + " < ?"}, src.filters...)
	query := fmt.Sprintf(`SELECT %s AS id, %s AS total FROM %s WHERE %s GROUP BY %s ORDER BY total DESC, id ASC LIMIT ?`,
		src.key, src.aggregate, src.from, strings.Join(conds, " AND "), src.key)

	start, end := w.bounds()
	var entries []domain.ChartEntry
	if err := db.Select(&entries, query, start, end, limit); err != nil {
		return nil, fmt.Errorf("failed to compute chart: %w", err)
	}
	return entries, nil
}

// TopSharedContent ranks sounds and songs by local shares.
func (db *DB) TopSharedContent(w Window, limit int) ([]domain.ChartEntry, error) {
	return db.topChart(sharedContentSource, w, limit)
}

// TopAudienceContent ranks content by server-wide share counts.
func (db *DB) TopAudienceContent(w Window, limit int) ([]domain.ChartEntry, error) {
	return db.topChart(audienceContentSource, w, limit)
}

// TopSharedAuthors ranks authors by shares of their sounds. With requirePhoto
// only authors with a non-empty photo qualify.
func (db *DB) TopSharedAuthors(w Window, requirePhoto bool, limit int) ([]domain.ChartEntry, error) {
	src := sharedAuthorSource
	if requirePhoto {
		src = src.withFilter("a.photo IS NOT NULL AND a.photo != ''")
	}
	return db.topChart(src, w, limit)
}

// TopAuthor returns the most shared author in w, preferring authors with a
// photo. It falls back to the unfiltered ranking when no author with a photo
// was shared. Returns nil when nothing was shared.
func (db *DB) TopAuthor(w Window) (*domain.ChartEntry, error) {
	for _, requirePhoto := range []bool{true, false} {
		entries, err := db.TopSharedAuthors(w, requirePhoto, 1)
		if err != nil {
			return nil, err
		}
		if len(entries) > 0 {
			return &entries[0], nil
		}
	}
	return nil, nil
}
