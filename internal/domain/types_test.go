package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestStringSlice_ValueScan(t *testing.T) {
	s := StringSlice{"https://a.example", "https://b.example"}
	v, err := s.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}

	var out StringSlice
	if err := out.Scan(v); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(out) != 2 || out[1] != "https://b.example" {
		t.Errorf("Expected 2 links, got %v", out)
	}

	empty, _ := StringSlice(nil).Value()
	if empty != "[]" {
		t.Errorf("Expected empty slice to store [], got %v", empty)
	}

	if err := out.Scan(nil); err != nil || out != nil {
		t.Errorf("Expected nil scan to reset slice, got %v (%v)", out, err)
	}
}

func TestISOTime_Format(t *testing.T) {
	ts := NewISOTime(time.Date(2025, 1, 1, 0, 0, 0, 123456789, time.UTC))
	if ts.String() != "2025-01-01T00:00:00.123Z" {
		t.Errorf("Expected millisecond precision, got %s", ts.String())
	}

	local := time.FixedZone("BRT", -3*60*60)
	ts = NewISOTime(time.Date(2024, 12, 31, 21, 0, 0, 0, local))
	if ts.String() != "2025-01-01T00:00:00.000Z" {
		t.Errorf("Expected UTC conversion, got %s", ts.String())
	}
}

func TestISOTime_LexicalOrder(t *testing.T) {
	a := NewISOTime(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)).String()
	b := NewISOTime(time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)).String()
	if a >= b {
		t.Errorf("Expected %s < %s", a, b)
	}
}

func TestISOTime_Scan(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected string
		wantErr  bool
	}{
		{"storage layout", "2025-03-04T05:06:07.008Z", "2025-03-04T05:06:07.008Z", false},
		{"rfc3339", "2025-03-04T05:06:07Z", "2025-03-04T05:06:07.000Z", false},
		{"bytes", []byte("2025-03-04T05:06:07.008Z"), "2025-03-04T05:06:07.008Z", false},
		{"time value", time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC), "2025-03-04T05:06:07.000Z", false},
		{"garbage", "not a time", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts ISOTime
			err := ts.Scan(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Scan() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && ts.String() != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, ts.String())
			}
		})
	}
}

func TestISOTime_JSON(t *testing.T) {
	var ev UpdateEvent
	data := `{"id":"e1","contentId":"s1","dateTime":"2025-06-01T10:00:00.000Z","mediaType":"sound","eventType":"created"}`
	if err := json.Unmarshal([]byte(data), &ev); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if ev.DateTime.String() != "2025-06-01T10:00:00.000Z" {
		t.Errorf("Expected parsed dateTime, got %s", ev.DateTime.String())
	}
	if ev.DidSucceed != nil {
		t.Error("Expected didSucceed to be nil")
	}

	out, err := json.Marshal(ev.DateTime)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(out) != `"2025-06-01T10:00:00.000Z"` {
		t.Errorf("Expected quoted timestamp, got %s", out)
	}
}
