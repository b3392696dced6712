package dto

import (
	"testing"

	"github.com/cesargomez89/soundboard/internal/domain"
)

func TestValidationError_Error(t *testing.T) {
	err := ValidationError{Field: "name", Message: "is required"}
	if err.Error() != "name: is required" {
		t.Errorf("Error() = %q, want %q", err.Error(), "name: is required")
	}
}

func TestToMap(t *testing.T) {
	errs := []ValidationError{
		{Field: "contentId", Message: "is required"},
		{Field: "contentType", Message: "must be 'sound' or 'song'"},
	}
	m := ToMap(errs)
	if len(m) != 2 {
		t.Errorf("ToMap() returned %d items, want 2", len(m))
	}
	if m["contentId"] != "is required" {
		t.Errorf("ToMap()[contentId] = %q, want %q", m["contentId"], "is required")
	}
}

func TestToResponse(t *testing.T) {
	errs := []ValidationError{
		{Field: "a", Message: "bad"},
		{Field: "b", Message: "worse"},
	}
	if got := ToResponse(errs); got != "a: bad; b: worse" {
		t.Errorf("ToResponse() = %q", got)
	}
}

func TestShareRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     ShareRequest
		wantErr int
	}{
		{"valid sound", ShareRequest{ContentID: "s1", ContentType: domain.ContentKindSound}, 0},
		{"valid song", ShareRequest{ContentID: "m1", ContentType: domain.ContentKindSong}, 0},
		{"missing id", ShareRequest{ContentType: domain.ContentKindSound}, 1},
		{"bad type", ShareRequest{ContentID: "s1", ContentType: "podcast"}, 1},
		{"empty", ShareRequest{}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(tt.req.Validate()); got != tt.wantErr {
				t.Errorf("Validate() returned %d errors, want %d", got, tt.wantErr)
			}
		})
	}
}

func TestFolderSortRequest_Validate(t *testing.T) {
	title := domain.FolderSortTitle
	bad := domain.FolderSort(7)

	if errs := (&FolderSortRequest{Sort: &title}).Validate(); len(errs) != 0 {
		t.Errorf("Expected valid, got %v", errs)
	}
	if errs := (&FolderSortRequest{Sort: &bad}).Validate(); len(errs) != 1 {
		t.Errorf("Expected 1 error, got %v", errs)
	}
	if errs := (&FolderSortRequest{}).Validate(); len(errs) != 1 {
		t.Errorf("Expected 1 error for missing sort, got %v", errs)
	}
}

func TestFolderRequest_Validate(t *testing.T) {
	if errs := (&FolderRequest{Name: "  "}).Validate(); len(errs) != 1 {
		t.Errorf("Expected 1 error for blank name, got %v", errs)
	}
	if errs := (&FolderRequest{Name: "Memes"}).Validate(); len(errs) != 0 {
		t.Errorf("Expected valid, got %v", errs)
	}
}
