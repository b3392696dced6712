package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/cesargomez89/soundboard/internal/domain"
	"github.com/cesargomez89/soundboard/internal/logger"
	"github.com/cesargomez89/soundboard/internal/store"
)

func setupTestDB(t *testing.T) (*store.DB, func()) {
	db, err := store.NewSQLiteDB(filepath.Join(t.TempDir(), "test_app.db"))
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	cleanup := func() {
		db.Close()
	}
	return db, cleanup
}

func at(s string) domain.ISOTime {
	t, err := domain.ParseISOTime(s)
	if err != nil {
		panic(err)
	}
	return t
}

// seedContent creates two authors, three sounds and one song.
func seedContent(t *testing.T, db *store.DB) {
	t.Helper()

	photo := "https://example.com/zeca.jpg"
	for _, a := range []domain.Author{
		{ID: "a1", Name: "Zeca", Photo: &photo},
		{ID: "a2", Name: "Bento"},
	} {
		a := a
		if err := db.InsertAuthor(&a); err != nil {
			t.Fatalf("InsertAuthor failed: %v", err)
		}
	}
	if err := db.InsertGenre(&domain.MusicGenre{ID: "g1", Symbol: "🎸", Name: "Rock"}); err != nil {
		t.Fatalf("InsertGenre failed: %v", err)
	}

	for _, s := range []domain.Sound{
		{ID: "s1", Title: "Cachorro", AuthorID: "a1", DateAdded: at("2024-01-01T00:00:00.000Z")},
		{ID: "s2", Title: "abacaxi", AuthorID: "a2", DateAdded: at("2024-01-02T00:00:00.000Z")},
		{ID: "s3", Title: "Burro", AuthorID: "a1", IsOffensive: true, DateAdded: at("2024-01-03T00:00:00.000Z")},
	} {
		s := s
		if err := db.InsertSound(&s); err != nil {
			t.Fatalf("InsertSound failed: %v", err)
		}
	}
	song := domain.Song{ID: "m1", Title: "Atirei o pau", AuthorID: "a2", GenreID: "g1", DateAdded: at("2024-02-01T00:00:00.000Z")}
	if err := db.InsertSong(&song); err != nil {
		t.Fatalf("InsertSong failed: %v", err)
	}
}

func TestContentService_Content(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	seedContent(t, db)

	svc := NewContentService(db, logger.Discard())

	content, err := svc.Content([]string{"m1", "s2", "missing", "s1"})
	if err != nil {
		t.Fatalf("Content failed: %v", err)
	}
	got := make([]string, len(content))
	for i, c := range content {
		got[i] = c.ID()
	}
	want := []string{"s2", "s1", "m1"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, got)
			break
		}
	}
	if content[2].Kind != domain.ContentKindSong {
		t.Errorf("Expected song last, got %s", content[2].Kind)
	}

	ordered, err := svc.ContentInOrder([]string{"m1", "s2", "missing", "s1"})
	if err != nil {
		t.Fatalf("ContentInOrder failed: %v", err)
	}
	if len(ordered) != 3 || ordered[0].ID() != "m1" || ordered[2].ID() != "s1" {
		t.Errorf("Expected input order, got %+v", ordered)
	}
}

func TestContentService_Author(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	seedContent(t, db)

	svc := NewContentService(db, logger.Discard())

	author, err := svc.Author("a1")
	if err != nil {
		t.Fatalf("Author failed: %v", err)
	}
	if author == nil || author.Name != "Zeca" {
		t.Errorf("Expected Zeca, got %+v", author)
	}

	missing, err := svc.Author("nope")
	if err != nil {
		t.Fatalf("Expected no error for missing author, got %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil author, got %+v", missing)
	}
}

func TestContentService_SensitiveFilter(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	seedContent(t, db)

	svc := NewContentService(db, logger.Discard())

	safe, _ := svc.Sounds(false)
	all, _ := svc.Sounds(true)
	if len(safe) != 2 || len(all) != 3 {
		t.Errorf("Expected 2 safe and 3 total sounds, got %d and %d", len(safe), len(all))
	}

	random, err := svc.RandomSounds(false)
	if err != nil {
		t.Fatalf("RandomSounds failed: %v", err)
	}
	for _, s := range random {
		if s.IsOffensive {
			t.Errorf("Expected no offensive sounds, got %s", s.ID)
		}
	}
}

func TestFavoriteService(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	seedContent(t, db)

	content := NewContentService(db, logger.Discard())
	svc := NewFavoriteService(db, content, logger.Discard())

	if _, err := svc.Add("s1"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := svc.Add("s1"); !errors.Is(err, domain.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}

	favs, _ := svc.List()
	if len(favs) != 1 {
		t.Errorf("Expected 1 favorite, got %d", len(favs))
	}

	exists, _ := svc.Exists("s1")
	if !exists {
		t.Error("Expected favorite to exist")
	}

	resolved, err := svc.FavoriteContent()
	if err != nil {
		t.Fatalf("FavoriteContent failed: %v", err)
	}
	if len(resolved) != 1 || resolved[0].Title() != "Cachorro" {
		t.Errorf("Expected Cachorro, got %+v", resolved)
	}

	if err := svc.Remove("s1"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if err := svc.Remove("s1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestFolderService_FolderContentSorting(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	seedContent(t, db)

	content := NewContentService(db, logger.Discard())
	svc := NewFolderService(db, content, logger.Discard())

	folder, err := svc.Create("Memes", "😂", "pastelPink")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	for i, id := range []string{"s1", "m1", "s2"} {
		fc := &domain.FolderContent{FolderID: folder.ID, ContentID: id, DateAdded: at("2024-03-0" + string(rune('1'+i)) + "T00:00:00.000Z")}
		if err := db.InsertFolderContent(fc); err != nil {
			t.Fatalf("InsertFolderContent failed: %v", err)
		}
	}
	if err := svc.AddContent(folder.ID, "s1"); !errors.Is(err, domain.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}

	ids := func(cs []domain.Content) []string {
		out := make([]string, len(cs))
		for i, c := range cs {
			out[i] = c.ID()
		}
		return out
	}

	cases := []struct {
		pref domain.FolderSort
		want []string
	}{
		{domain.FolderSortDateAdded, []string{"s1", "m1", "s2"}},
		{domain.FolderSortTitle, []string{"s2", "m1", "s1"}},
		{domain.FolderSortAuthor, []string{"s2", "m1", "s1"}},
	}
	for _, tc := range cases {
		if err := svc.SetSortPreference(folder.ID, tc.pref); err != nil {
			t.Fatalf("SetSortPreference failed: %v", err)
		}
		got, err := svc.FolderContent(folder.ID)
		if err != nil {
			t.Fatalf("FolderContent failed: %v", err)
		}
		g := ids(got)
		if len(g) != len(tc.want) {
			t.Fatalf("sort %d: expected %v, got %v", tc.pref, tc.want, g)
		}
		for i := range g {
			if g[i] != tc.want[i] {
				t.Errorf("sort %d: expected %v, got %v", tc.pref, tc.want, g)
				break
			}
		}
	}

	if _, err := svc.FolderContent("missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing folder, got %v", err)
	}
}

func TestFolderService_CreateRequiresName(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	svc := NewFolderService(db, NewContentService(db, logger.Discard()), logger.Discard())
	if _, err := svc.Create("   ", "", ""); err == nil {
		t.Error("Expected error for empty name")
	}
	if err := svc.Rename("missing", "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestReactionService(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	svc := NewReactionService(db, logger.Discard())
	if err := svc.Pin("r1", "Rir", "rir.png", 1); err != nil {
		t.Fatalf("Pin failed: %v", err)
	}
	if err := svc.Pin("r1", "Rir", "rir.png", 0); err != nil {
		t.Fatalf("Pin (again) failed: %v", err)
	}
	pinned, _ := svc.List()
	if len(pinned) != 1 || pinned[0].Position != 0 {
		t.Errorf("Expected single pin at position 0, got %+v", pinned)
	}
	if err := svc.Unpin("r1"); err != nil {
		t.Fatalf("Unpin failed: %v", err)
	}
	if err := svc.Unpin("r1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestEpisodeService(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	svc := NewEpisodeService(db, logger.Discard())
	ctx := context.Background()

	eps := []domain.PodcastEpisode{
		{ID: "e1", PodcastID: "p1", Title: "Ep 1", PubDate: at("2024-01-01T00:00:00.000Z")},
		{ID: "e2", PodcastID: "p1", Title: "Ep 2", PubDate: at("2024-01-08T00:00:00.000Z")},
	}
	if err := svc.Import(ctx, eps); err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	list, _ := svc.Episodes("p1")
	if len(list) != 2 {
		t.Errorf("Expected 2 episodes, got %d", len(list))
	}

	if _, err := svc.AddBookmark("e1", -1, "bad", ""); err == nil {
		t.Error("Expected error for negative timestamp")
	}
	if _, err := svc.AddBookmark("e1", 42, "joke", ""); err != nil {
		t.Fatalf("AddBookmark failed: %v", err)
	}

	session := &domain.EpisodeListenLog{
		EpisodeID: "e1", PodcastID: "p1",
		StartedAt: at("2024-01-02T10:00:00.000Z"), EndedAt: at("2024-01-02T10:30:00.000Z"),
		ListenedSeconds: 1800, DidFinish: true,
	}
	if err := svc.RecordListen(session); err != nil {
		t.Fatalf("RecordListen failed: %v", err)
	}
	played, _ := svc.PlayedEpisodeIDs()
	if len(played) != 1 || played[0] != "e1" {
		t.Errorf("Expected e1 played, got %v", played)
	}
	total, _ := svc.TotalListenTime("e1")
	if total != 1800 {
		t.Errorf("Expected 1800s, got %v", total)
	}

	backwards := &domain.EpisodeListenLog{EpisodeID: "e2", StartedAt: at("2024-01-02T10:00:00.000Z"), EndedAt: at("2024-01-02T09:00:00.000Z")}
	if err := svc.RecordListen(backwards); err == nil {
		t.Error("Expected error for session ending before start")
	}

	if err := svc.SaveProgress("e2", 10, 100); err != nil {
		t.Fatalf("SaveProgress failed: %v", err)
	}
	if err := svc.SaveProgress("e2", 20, 100); err != nil {
		t.Fatalf("SaveProgress failed: %v", err)
	}
	p, _ := svc.Progress("e2")
	if p == nil || p.CurrentTime != 20 {
		t.Errorf("Expected progress 20, got %+v", p)
	}

	if err := svc.SetFavorite("e2", true); err != nil {
		t.Fatalf("SetFavorite failed: %v", err)
	}
	if err := svc.SetFavorite("e2", false); err != nil {
		t.Fatalf("SetFavorite failed: %v", err)
	}
	favs, _ := svc.FavoriteEpisodeIDs()
	if len(favs) != 0 {
		t.Errorf("Expected no favorites, got %v", favs)
	}
}
