package app

import (
	"context"
	"errors"
	"testing"

	"github.com/cesargomez89/soundboard/internal/domain"
	"github.com/cesargomez89/soundboard/internal/logger"
	"github.com/cesargomez89/soundboard/internal/store"
)

type fakeShareServer struct {
	posted   []domain.ShareCountStat
	failFrom int // post number that starts failing, 0 for never
	stats    []domain.AudienceShareStat
}

func (f *fakeShareServer) PostShareCount(ctx context.Context, stat domain.ShareCountStat) error {
	if f.failFrom > 0 && len(f.posted)+1 >= f.failFrom {
		return errors.New("server down")
	}
	f.posted = append(f.posted, stat)
	return nil
}

func (f *fakeShareServer) AudienceStatistics(ctx context.Context) ([]domain.AudienceShareStat, error) {
	return f.stats, nil
}

func TestShareService_InstallIDPersists(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	svc := NewShareService(db, &fakeShareServer{}, "", logger.Discard())
	id, err := svc.InstallID()
	if err != nil {
		t.Fatalf("InstallID failed: %v", err)
	}
	if id == "" {
		t.Fatal("Expected generated install id")
	}

	again := NewShareService(db, &fakeShareServer{}, "", logger.Discard())
	id2, _ := again.InstallID()
	if id2 != id {
		t.Errorf("Expected persisted id %s, got %s", id, id2)
	}

	override := NewShareService(db, &fakeShareServer{}, "fixed", logger.Discard())
	id3, _ := override.InstallID()
	if id3 != "fixed" {
		t.Errorf("Expected override, got %s", id3)
	}
}

func TestShareService_RecordShareValidates(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	svc := NewShareService(db, &fakeShareServer{}, "inst", logger.Discard())
	if _, err := svc.RecordShare("", domain.ContentKindSound, "whatsapp"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for empty content id, got %v", err)
	}
	if _, err := svc.RecordShare("s1", "podcast", "whatsapp"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for invalid kind, got %v", err)
	}
	l, err := svc.RecordShare("s1", domain.ContentKindSound, "whatsapp")
	if err != nil {
		t.Fatalf("RecordShare failed: %v", err)
	}
	if l.InstallID != "inst" || l.SentToServer {
		t.Errorf("Unexpected log: %+v", l)
	}
}

func TestShareService_SendPending(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	for i, id := range []string{"s1", "s2", "s3"} {
		l := &domain.UserShareLog{
			InstallID: "inst", ContentID: id, ContentType: domain.ContentKindSound,
			DateTime: at("2024-05-0" + string(rune('1'+i)) + "T00:00:00.000Z"),
		}
		if err := db.InsertUserShareLog(l); err != nil {
			t.Fatalf("InsertUserShareLog failed: %v", err)
		}
	}

	server := &fakeShareServer{failFrom: 3}
	svc := NewShareService(db, server, "inst", logger.Discard())

	sent, err := svc.SendPending(context.Background())
	if err == nil {
		t.Fatal("Expected error from failing post")
	}
	if sent != 2 {
		t.Errorf("Expected 2 sent, got %d", sent)
	}
	pending, _ := svc.PendingCount()
	if pending != 1 {
		t.Errorf("Expected 1 pending, got %d", pending)
	}

	server.failFrom = 0
	sent, err = svc.SendPending(context.Background())
	if err != nil {
		t.Fatalf("SendPending failed: %v", err)
	}
	if sent != 1 {
		t.Errorf("Expected 1 sent, got %d", sent)
	}
	if server.posted[2].ContentID != "s3" {
		t.Errorf("Expected s3 last, got %s", server.posted[2].ContentID)
	}
	pending, _ = svc.PendingCount()
	if pending != 0 {
		t.Errorf("Expected 0 pending, got %d", pending)
	}
}

func TestShareService_RefreshAudience(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	server := &fakeShareServer{stats: []domain.AudienceShareStat{
		{ContentID: "s1", ContentType: domain.ContentKindSound, ShareCount: 10, DateTime: at("2024-01-01T00:00:00.000Z")},
	}}
	svc := NewShareService(db, server, "inst", logger.Discard())

	n, err := svc.RefreshAudience(context.Background())
	if err != nil {
		t.Fatalf("RefreshAudience failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 stat, got %d", n)
	}
	last, _ := store.NewSettingsRepo(db).Get(store.SettingLastStatsAt)
	if last == "" {
		t.Error("Expected refresh time recorded")
	}
}
