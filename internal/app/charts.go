package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cesargomez89/soundboard/internal/constants"
	"github.com/cesargomez89/soundboard/internal/domain"
	"github.com/cesargomez89/soundboard/internal/store"
)

// RankedContent is a chart row with its content resolved when it still
// exists locally.
type RankedContent struct {
	Rank      int             `json:"rank"`
	ContentID string          `json:"contentId"`
	Total     int             `json:"total"`
	Content   *domain.Content `json:"content,omitempty"`
}

type RankedAuthor struct {
	Author *domain.Author `json:"author,omitempty"`
	ID     string         `json:"id"`
	Total  int            `json:"total"`
}

// Retrospective summarizes one year of local sharing.
type Retrospective struct {
	Year       int             `json:"year"`
	TopContent []RankedContent `json:"topContent"`
	TopAuthor  *RankedAuthor   `json:"topAuthor,omitempty"`
}

type ChartService struct {
	Repo    *store.DB
	Content *ContentService
}

func NewChartService(repo *store.DB, content *ContentService) *ChartService {
	return &ChartService{Repo: repo, Content: content}
}

// ParseWindow reads "all" (or empty) as the all-time window and a year as
// that calendar year.
func ParseWindow(s string) (store.Window, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "all" {
		return store.AllTimeWindow(), nil
	}
	year, err := strconv.Atoi(s)
	if err != nil {
		return store.Window{}, domain.NewInvalidInput("window", fmt.Sprintf("%q is not 'all' or a year", s))
	}
	if year < constants.StatsEpochYear || year > time.Now().UTC().Year() {
		return store.Window{}, domain.NewInvalidInput("window", fmt.Sprintf("year %d outside statistics range", year))
	}
	return store.YearWindow(year), nil
}

func (s *ChartService) TopContent(w store.Window, limit int) ([]RankedContent, error) {
	entries, err := s.Repo.TopSharedContent(w, limit)
	if err != nil {
		return nil, err
	}
	return s.resolve(entries)
}

func (s *ChartService) TopAudienceContent(w store.Window, limit int) ([]RankedContent, error) {
	entries, err := s.Repo.TopAudienceContent(w, limit)
	if err != nil {
		return nil, err
	}
	return s.resolve(entries)
}

// TopAuthor returns nil when nothing was shared in w.
func (s *ChartService) TopAuthor(w store.Window) (*RankedAuthor, error) {
	entry, err := s.Repo.TopAuthor(w)
	if err != nil || entry == nil {
		return nil, err
	}
	author, err := s.Content.Author(entry.ID)
	if err != nil {
		return nil, err
	}
	return &RankedAuthor{Author: author, ID: entry.ID, Total: entry.Total}, nil
}

func (s *ChartService) Retrospective(year int) (*Retrospective, error) {
	if year < constants.FirstRetrospective {
		return nil, domain.NewInvalidInput("year", fmt.Sprintf("no retrospective before %d", constants.FirstRetrospective))
	}
	w := store.YearWindow(year)

	top, err := s.TopContent(w, constants.DefaultChartLimit)
	if err != nil {
		return nil, err
	}
	author, err := s.TopAuthor(w)
	if err != nil {
		return nil, err
	}
	return &Retrospective{Year: year, TopContent: top, TopAuthor: author}, nil
}

func (s *ChartService) resolve(entries []domain.ChartEntry) ([]RankedContent, error) {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	content, err := s.Content.Content(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Content, len(content))
	for _, c := range content {
		byID[c.ID()] = c
	}

	ranked := make([]RankedContent, len(entries))
	for i, e := range entries {
		ranked[i] = RankedContent{Rank: i + 1, ContentID: e.ID, Total: e.Total}
		if c, ok := byID[e.ID]; ok {
			ranked[i].Content = &c
		}
	}
	return ranked, nil
}
