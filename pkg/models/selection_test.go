package models

import "testing"

func TestParseYesNo(t *testing.T) {
	tests := []struct {
		answer string
		def    bool
		want   bool
	}{
		{"", true, true},
		{"", false, false},
		{"   ", true, true},
		{"y", false, true},
		{"Yes", false, true},
		{"yep", false, true},
		{"n", true, false},
		{"NO", true, false},
		{"nope", true, false},
		{"maybe", true, true},
		{"maybe", false, false},
		{"1", false, false},
	}
	for _, tt := range tests {
		if got := ParseYesNo(tt.answer, tt.def); got != tt.want {
			t.Errorf("ParseYesNo(%q, %v) = %v, want %v", tt.answer, tt.def, got, tt.want)
		}
	}
}

func TestSelection_Has(t *testing.T) {
	s := Selection{Architecture: ArchFlat, Features: []string{"logging", "cors"}}
	if !s.Has("cors") {
		t.Error("Has(cors) = false, want true")
	}
	if s.Has("database") {
		t.Error("Has(database) = true, want false")
	}
}
