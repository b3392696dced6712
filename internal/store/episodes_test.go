package store

import (
	"context"
	"errors"
	"testing"

	"github.com/cesargomez89/soundboard/internal/domain"
)

func TestDB_UpsertEpisodes(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	eps := []domain.PodcastEpisode{
		{ID: "ep1", PodcastID: "p1", Title: "Episode 1", PubDate: at("2024-01-01T00:00:00.000Z")},
		{ID: "ep2", PodcastID: "p1", Title: "Episode 2", PubDate: at("2024-02-01T00:00:00.000Z")},
	}
	if err := db.UpsertEpisodes(ctx, eps); err != nil {
		t.Fatalf("UpsertEpisodes failed: %v", err)
	}

	eps[0].Title = "Episode 1 (remastered)"
	if err := db.UpsertEpisodes(ctx, eps[:1]); err != nil {
		t.Fatalf("UpsertEpisodes (update) failed: %v", err)
	}

	list, err := db.Episodes("p1")
	if err != nil {
		t.Fatalf("Episodes failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("Expected 2 episodes, got %d", len(list))
	}
	if list[0].ID != "ep2" || list[1].Title != "Episode 1 (remastered)" {
		t.Errorf("Unexpected episodes: %+v", list)
	}
}

func TestDB_UpsertEpisodesIsAtomic(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	if err := db.UpsertEpisodes(ctx, []domain.PodcastEpisode{{ID: "ep1", PodcastID: "p1", Title: "Kept"}}); err != nil {
		t.Fatalf("UpsertEpisodes failed: %v", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	cancel()
	err := db.UpsertEpisodes(ctx, []domain.PodcastEpisode{
		{ID: "ep1", PodcastID: "p1", Title: "Changed"},
		{ID: "ep2", PodcastID: "p1", Title: "New"},
	})
	if err == nil {
		t.Fatal("Expected cancelled batch to fail")
	}

	list, _ := db.Episodes("p1")
	if len(list) != 1 || list[0].Title != "Kept" {
		t.Errorf("Expected batch to leave no partial state, got %+v", list)
	}
}

func TestDB_EpisodeProgressUpsert(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	if err := db.UpsertEpisodeProgress(&domain.EpisodeProgress{EpisodeID: "ep1", CurrentTime: 30, Duration: 600}); err != nil {
		t.Fatalf("UpsertEpisodeProgress failed: %v", err)
	}
	if err := db.UpsertEpisodeProgress(&domain.EpisodeProgress{EpisodeID: "ep1", CurrentTime: 125.5, Duration: 601}); err != nil {
		t.Fatalf("UpsertEpisodeProgress (second) failed: %v", err)
	}

	count, err := db.EpisodeProgressCount("ep1")
	if err != nil {
		t.Fatalf("EpisodeProgressCount failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected exactly 1 progress row, got %d", count)
	}

	p, err := db.EpisodeProgress("ep1")
	if err != nil {
		t.Fatalf("EpisodeProgress failed: %v", err)
	}
	if p == nil || p.CurrentTime != 125.5 || p.Duration != 601 {
		t.Errorf("Expected latest progress values, got %+v", p)
	}

	none, err := db.EpisodeProgress("ep2")
	if err != nil || none != nil {
		t.Errorf("Expected nil, nil for unknown episode, got %+v, %v", none, err)
	}
}

func TestDB_EpisodeFlags(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	for i := 0; i < 2; i++ {
		if err := db.SetEpisodePlayed("ep1"); err != nil {
			t.Fatalf("SetEpisodePlayed failed: %v", err)
		}
		if err := db.SetEpisodeFavorite("ep1"); err != nil {
			t.Fatalf("SetEpisodeFavorite failed: %v", err)
		}
	}

	played, _ := db.PlayedEpisodeIDs()
	if len(played) != 1 {
		t.Errorf("Expected 1 played episode, got %v", played)
	}
	favs, _ := db.FavoriteEpisodeIDs()
	if len(favs) != 1 {
		t.Errorf("Expected 1 favorite episode, got %v", favs)
	}

	if err := db.UnsetEpisodePlayed("ep1"); err != nil {
		t.Fatalf("UnsetEpisodePlayed failed: %v", err)
	}
	if err := db.UnsetEpisodeFavorite("ep1"); err != nil {
		t.Fatalf("UnsetEpisodeFavorite failed: %v", err)
	}
	played, _ = db.PlayedEpisodeIDs()
	favs, _ = db.FavoriteEpisodeIDs()
	if len(played) != 0 || len(favs) != 0 {
		t.Errorf("Expected flags cleared, got %v %v", played, favs)
	}
}

func TestDB_BookmarksAndListenLogs(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	b := &domain.EpisodeBookmark{EpisodeID: "ep1", Timestamp: 42, Title: "Best part"}
	if err := db.InsertBookmark(b); err != nil {
		t.Fatalf("InsertBookmark failed: %v", err)
	}
	b.Note = "rewatch"
	if err := db.UpdateBookmark(b); err != nil {
		t.Fatalf("UpdateBookmark failed: %v", err)
	}

	bs, _ := db.Bookmarks("ep1")
	if len(bs) != 1 || bs[0].Note != "rewatch" {
		t.Errorf("Expected updated bookmark, got %+v", bs)
	}

	var nf *domain.NotFoundError
	if err := db.DeleteBookmark("nope"); !errors.As(err, &nf) || nf.Entity != domain.EntityBookmark {
		t.Errorf("Expected bookmark not found, got %v", err)
	}
	if err := db.DeleteBookmark(b.ID); err != nil {
		t.Errorf("DeleteBookmark failed: %v", err)
	}

	for _, secs := range []float64{60, 90.5} {
		l := &domain.EpisodeListenLog{
			EpisodeID:       "ep1",
			PodcastID:       "p1",
			StartedAt:       domain.Now(),
			EndedAt:         domain.Now(),
			ListenedSeconds: secs,
		}
		if err := db.InsertListenLog(l); err != nil {
			t.Fatalf("InsertListenLog failed: %v", err)
		}
	}

	logs, _ := db.ListenLogs("ep1")
	if len(logs) != 2 {
		t.Errorf("Expected 2 listen logs, got %d", len(logs))
	}
	total, err := db.TotalListenTime("ep1")
	if err != nil {
		t.Fatalf("TotalListenTime failed: %v", err)
	}
	if total != 150.5 {
		t.Errorf("Expected 150.5 seconds, got %v", total)
	}
}
