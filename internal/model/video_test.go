package model

import (
	"math"
	"testing"
)

func TestIsValidVideoID(t *testing.T) {
	tests := []struct {
		id       string
		expected bool
	}{
		{"M7lc1UVf-VE", true},
		{"dQw4w9WgXcQ", true},
		{"abc_DEF-123", true},
		{"short", false},
		{"M7lc1UVf-VE1", false},
		{"M7lc1UVf VE", false},
		{"", false},
	}

	for _, test := range tests {
		if got := IsValidVideoID(test.id); got != test.expected {
			t.Errorf("IsValidVideoID(%q) = %v, expected %v", test.id, got, test.expected)
		}
	}
}

func TestClampRate(t *testing.T) {
	tests := []struct {
		rate     float64
		expected float64
	}{
		{0.1, MinPlaybackRate},
		{0.25, 0.25},
		{1.5, 1.5},
		{4.0, 4.0},
		{9, MaxPlaybackRate},
		{0, DefaultPlaybackRate},
		{math.NaN(), DefaultPlaybackRate},
	}

	for _, test := range tests {
		if got := ClampRate(test.rate); got != test.expected {
			t.Errorf("ClampRate(%v) = %v, expected %v", test.rate, got, test.expected)
		}
	}
}

func TestFavoriteEntry_Normalize(t *testing.T) {
	entry := FavoriteEntry{Ref: VideoRef{ID: "M7lc1UVf-VE"}, Category: "  "}.Normalize()
	if entry.Category != DefaultCategory {
		t.Errorf("Expected category %q, got %q", DefaultCategory, entry.Category)
	}

	entry = FavoriteEntry{Ref: VideoRef{ID: "M7lc1UVf-VE"}, Category: " Music "}.Normalize()
	if entry.Category != "Music" {
		t.Errorf("Expected category 'Music', got %q", entry.Category)
	}
}

func TestAddResult_String(t *testing.T) {
	tests := map[AddResult]string{
		AddNone:       "none",
		Added:         "added",
		AlreadyExists: "already_exists",
	}
	for res, expected := range tests {
		if got := res.String(); got != expected {
			t.Errorf("AddResult(%d).String() = %s, expected %s", int(res), got, expected)
		}
	}
}

func TestVideoRef_SameVideoAndDisplayTitle(t *testing.T) {
	a := VideoRef{ID: "M7lc1UVf-VE", Title: "One"}
	b := VideoRef{ID: "M7lc1UVf-VE", Title: "Two"}
	if !a.SameVideo(b) {
		t.Error("Refs with the same id should be the same video")
	}

	if got := (VideoRef{ID: "M7lc1UVf-VE"}).DisplayTitle(); got != "M7lc1UVf-VE" {
		t.Errorf("Expected id fallback, got %q", got)
	}
}

func TestParseImportMode(t *testing.T) {
	tests := []struct {
		in   string
		mode ImportMode
		ok   bool
	}{
		{"merge", ImportMerge, true},
		{"", ImportMerge, true},
		{"REPLACE", ImportReplace, true},
		{"append", ImportMerge, false},
	}

	for _, test := range tests {
		mode, ok := ParseImportMode(test.in)
		if mode != test.mode || ok != test.ok {
			t.Errorf("ParseImportMode(%q) = (%v, %v), expected (%v, %v)", test.in, mode, ok, test.mode, test.ok)
		}
	}
}
