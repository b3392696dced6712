package store

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cesargomez89/soundboard/internal/constants"
	"github.com/cesargomez89/soundboard/internal/domain"
)

func TestDB_UpdateEvents(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	last, err := db.DateTimeOfLastUpdate()
	if err != nil {
		t.Fatalf("DateTimeOfLastUpdate failed: %v", err)
	}
	if last != constants.LastUpdateAll {
		t.Errorf("Expected %q with no events, got %q", constants.LastUpdateAll, last)
	}

	events := []domain.UpdateEvent{
		{ID: "e2", ContentID: "s2", DateTime: at("2025-03-02T10:00:00.000Z"), MediaType: domain.MediaTypeSound, EventType: domain.EventTypeCreated},
		{ID: "e1", ContentID: "s1", DateTime: at("2025-03-01T10:00:00.000Z"), MediaType: domain.MediaTypeSound, EventType: domain.EventTypeCreated},
		{ID: "e3", ContentID: "s3", DateTime: at("2025-03-03T10:00:00.000Z"), MediaType: domain.MediaTypeSong, EventType: domain.EventTypeDeleted},
	}
	for i := range events {
		if err := db.InsertUpdateEvent(&events[i]); err != nil {
			t.Fatalf("InsertUpdateEvent failed: %v", err)
		}
	}

	if err := db.InsertUpdateEvent(&events[0]); !errors.Is(err, domain.ErrDuplicateKey) {
		t.Errorf("Expected duplicate update event, got %v", err)
	}

	exists, _ := db.UpdateEventExists("e1")
	if !exists {
		t.Error("Expected e1 to exist")
	}
	exists, _ = db.UpdateEventExists("e9")
	if exists {
		t.Error("Expected e9 not to exist")
	}

	last, _ = db.DateTimeOfLastUpdate()
	if last != "2025-03-03T10:00:00.000Z" {
		t.Errorf("Expected newest event time, got %q", last)
	}

	if err := db.MarkUpdateEventSucceeded("e1"); err != nil {
		t.Fatalf("MarkUpdateEventSucceeded failed: %v", err)
	}
	if err := db.MarkUpdateEventFailed("e3"); err != nil {
		t.Fatalf("MarkUpdateEventFailed failed: %v", err)
	}
	if err := db.MarkUpdateEventSucceeded("e9"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected not found for unknown event, got %v", err)
	}

	pending, err := db.UnsuccessfulUpdateEvents()
	if err != nil {
		t.Fatalf("UnsuccessfulUpdateEvents failed: %v", err)
	}
	if len(pending) != 2 || pending[0].ID != "e2" || pending[1].ID != "e3" {
		t.Errorf("Expected [e2 e3] oldest first, got %+v", pending)
	}
	if pending[0].DidSucceed != nil {
		t.Error("Expected e2 to be unattempted")
	}
	if pending[1].DidSucceed == nil || *pending[1].DidSucceed {
		t.Error("Expected e3 to be failed")
	}

	e1, _ := db.UpdateEvent("e1")
	if e1 == nil || !e1.Succeeded() {
		t.Errorf("Expected e1 succeeded, got %+v", e1)
	}
	missing, err := db.UpdateEvent("e9")
	if err != nil || missing != nil {
		t.Errorf("Expected nil, nil for missing event, got %+v, %v", missing, err)
	}
}

func TestDB_SyncLogRetention(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	insert := func(n int) {
		for i := 0; i < n; i++ {
			err := db.InsertSyncLog(&domain.SyncLog{
				LogType:       domain.SyncLogSuccess,
				Description:   fmt.Sprintf("log %d", i),
				DateTime:      domain.NewISOTime(base.Add(time.Duration(i) * time.Minute)),
				UpdateEventID: fmt.Sprintf("e%d", i),
			})
			if err != nil {
				t.Fatalf("InsertSyncLog failed: %v", err)
			}
		}
	}

	insert(10)
	overflow, err := db.SyncLogOverflowCount()
	if err != nil {
		t.Fatalf("SyncLogOverflowCount failed: %v", err)
	}
	if overflow != 0 {
		t.Errorf("Expected overflow 0 with 10 rows, got %d", overflow)
	}
	recent, _ := db.RecentSyncLogs()
	if len(recent) != 10 {
		t.Errorf("Expected 10 recent logs, got %d", len(recent))
	}

	base = base.Add(time.Hour)
	insert(15)

	recent, err = db.RecentSyncLogs()
	if err != nil {
		t.Fatalf("RecentSyncLogs failed: %v", err)
	}
	if len(recent) != 20 {
		t.Fatalf("Expected 20 recent logs, got %d", len(recent))
	}
	for i := 1; i < len(recent); i++ {
		if recent[i-1].DateTime.Before(recent[i].DateTime.Time) {
			t.Errorf("Expected descending order at %d: %s before %s", i, recent[i-1].DateTime, recent[i].DateTime)
		}
	}
	if recent[0].Description != "log 14" {
		t.Errorf("Expected newest log first, got %s", recent[0].Description)
	}

	overflow, _ = db.SyncLogOverflowCount()
	if overflow != 5 {
		t.Errorf("Expected overflow 5 with 25 rows, got %d", overflow)
	}
	total, _ := db.SyncLogCount()
	if total != 25 {
		t.Errorf("Expected 25 rows kept, got %d", total)
	}
}

func TestDB_SyncLogTiesByInsertionOrder(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ts := at("2025-05-01T00:00:00.000Z")
	for _, d := range []string{"first", "second", "third"} {
		if err := db.InsertSyncLog(&domain.SyncLog{LogType: domain.SyncLogError, Description: d, DateTime: ts}); err != nil {
			t.Fatalf("InsertSyncLog failed: %v", err)
		}
	}

	recent, _ := db.RecentSyncLogs()
	if len(recent) != 3 || recent[0].Description != "third" || recent[2].Description != "first" {
		t.Errorf("Expected reverse insertion order, got %+v", recent)
	}
}

func TestDB_ShareLogs(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	for i := 0; i < 3; i++ {
		l := &domain.UserShareLog{InstallID: "inst", ContentID: fmt.Sprintf("s%d", i), ContentType: domain.ContentKindSound}
		if err := db.InsertUserShareLog(l); err != nil {
			t.Fatalf("InsertUserShareLog failed: %v", err)
		}
	}

	unsent, err := db.UnsentUserShareLogs()
	if err != nil {
		t.Fatalf("UnsentUserShareLogs failed: %v", err)
	}
	if len(unsent) != 3 {
		t.Fatalf("Expected 3 unsent logs, got %d", len(unsent))
	}

	if err := db.MarkUserShareLogsSent([]string{unsent[0].ID, unsent[1].ID}); err != nil {
		t.Fatalf("MarkUserShareLogsSent failed: %v", err)
	}
	unsent, _ = db.UnsentUserShareLogs()
	if len(unsent) != 1 {
		t.Errorf("Expected 1 unsent log, got %d", len(unsent))
	}

	if err := db.MarkUserShareLogsSent(nil); err != nil {
		t.Errorf("Expected no-op for empty ids, got %v", err)
	}
	count, _ := db.UserShareLogCount()
	if count != 3 {
		t.Errorf("Expected share logs to be kept after sending, got %d", count)
	}
}
