package models

import (
	"strings"
	"testing"
)

func TestSegmentValidate(t *testing.T) {
	tests := []struct {
		name          string
		segment       Segment
		WantError     bool
		ErrorContains string
	}{
		{name: "Valid Segment", segment: Segment{Start: 0, Duration: 2.5, Text: "hello"}, WantError: false},
		{name: "Zero duration", segment: Segment{Start: 10, Duration: 0, Text: "hello"}, WantError: false},
		{name: "Fractional start", segment: Segment{Start: 65.28, Duration: 1, Text: "hello"}, WantError: false},
		{name: "Negative start", segment: Segment{Start: -1, Duration: 1, Text: "hello"}, WantError: true, ErrorContains: "start must not be negative"},
		{name: "Negative duration", segment: Segment{Start: 1, Duration: -0.5, Text: "hello"}, WantError: true, ErrorContains: "duration must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.segment.Validate()
			if tt.WantError {
				if err == nil {
					t.Errorf("Expected error but got nil")
				} else if !strings.Contains(err.Error(), tt.ErrorContains) {
					t.Errorf("Expected error to contain '%s', but got '%s'", tt.ErrorContains, err.Error())
				}
			} else if err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
		})
	}
}

func TestNewSegment(t *testing.T) {
	seg, err := NewSegment(65, 3, "hello")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if seg.End() != 68 {
		t.Errorf("Expected end 68, got %.2f", seg.End())
	}

	if _, err := NewSegment(-5, 1, "x"); err == nil {
		t.Error("Expected error for negative start")
	} else if !strings.HasPrefix(err.Error(), "invalid segment:") {
		t.Errorf("Expected wrapped error, got '%s'", err.Error())
	}
}

func TestSegment_IsBlank(t *testing.T) {
	tests := []struct {
		text     string
		expected bool
	}{
		{"", true},
		{"   ", true},
		{"\n\t", true},
		{"a", false},
		{"  [Music]  ", false},
	}

	for _, tt := range tests {
		s := Segment{Text: tt.text}
		if s.IsBlank() != tt.expected {
			t.Errorf("IsBlank(%q) = %v; want %v", tt.text, s.IsBlank(), tt.expected)
		}
	}
}
