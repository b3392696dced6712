package app

import (
	"errors"
	"testing"

	"github.com/cesargomez89/soundboard/internal/domain"
	"github.com/cesargomez89/soundboard/internal/logger"
	"github.com/cesargomez89/soundboard/internal/store"
)

func TestParseWindow(t *testing.T) {
	w, err := ParseWindow("all")
	if err != nil || w != store.AllTimeWindow() {
		t.Errorf("Expected all-time window, got %+v (%v)", w, err)
	}
	w, err = ParseWindow("")
	if err != nil || w != store.AllTimeWindow() {
		t.Errorf("Expected all-time window for empty input, got %+v (%v)", w, err)
	}
	w, err = ParseWindow("2024")
	if err != nil || w != store.YearWindow(2024) {
		t.Errorf("Expected 2024 window, got %+v (%v)", w, err)
	}
	for _, bad := range []string{"2019", "abc", "99999"} {
		if _, err := ParseWindow(bad); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("Expected ErrInvalidInput for %q, got %v", bad, err)
		}
	}
}

func TestChartService_Retrospective(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	seedContent(t, db)

	shares := []struct{ id, when string }{
		{"s2", "2024-03-01T00:00:00.000Z"},
		{"s2", "2024-04-01T00:00:00.000Z"},
		{"s2", "2024-05-01T00:00:00.000Z"},
		{"s1", "2024-06-01T00:00:00.000Z"},
		{"gone", "2024-06-02T00:00:00.000Z"},
		{"s1", "2023-12-31T23:59:59.999Z"},
	}
	for _, s := range shares {
		l := &domain.UserShareLog{InstallID: "i", ContentID: s.id, ContentType: domain.ContentKindSound, DateTime: at(s.when)}
		if err := db.InsertUserShareLog(l); err != nil {
			t.Fatalf("InsertUserShareLog failed: %v", err)
		}
	}

	content := NewContentService(db, logger.Discard())
	svc := NewChartService(db, content)

	retro, err := svc.Retrospective(2024)
	if err != nil {
		t.Fatalf("Retrospective failed: %v", err)
	}
	if len(retro.TopContent) != 3 {
		t.Fatalf("Expected 3 ranked items, got %d", len(retro.TopContent))
	}
	first := retro.TopContent[0]
	if first.ContentID != "s2" || first.Total != 3 || first.Rank != 1 {
		t.Errorf("Expected s2 with 3 shares first, got %+v", first)
	}
	if first.Content == nil || first.Content.Title() != "abacaxi" {
		t.Errorf("Expected resolved content, got %+v", first.Content)
	}
	// "gone" ties with s1 at 1 share and sorts first by id.
	if retro.TopContent[1].ContentID != "gone" || retro.TopContent[1].Content != nil {
		t.Errorf("Expected unresolved gone second, got %+v", retro.TopContent[1])
	}

	// a2 has 3 shares but no photo; a1 has a photo.
	if retro.TopAuthor == nil || retro.TopAuthor.ID != "a1" {
		t.Errorf("Expected a1 as top author, got %+v", retro.TopAuthor)
	}
	if retro.TopAuthor.Author == nil || retro.TopAuthor.Author.Name != "Zeca" {
		t.Errorf("Expected author resolved, got %+v", retro.TopAuthor.Author)
	}

	if _, err := svc.Retrospective(2022); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for year before first retrospective, got %v", err)
	}
}

func TestChartService_TopAuthorEmpty(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	svc := NewChartService(db, NewContentService(db, logger.Discard()))
	author, err := svc.TopAuthor(store.AllTimeWindow())
	if err != nil {
		t.Fatalf("TopAuthor failed: %v", err)
	}
	if author != nil {
		t.Errorf("Expected nil, got %+v", author)
	}
}
