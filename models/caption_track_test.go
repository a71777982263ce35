package models

import "testing"

func TestCaptionTrackValidate(t *testing.T) {
	tests := []struct {
		name      string
		track     CaptionTrack
		WantError bool
	}{
		{name: "Valid track", track: CaptionTrack{LanguageCode: "en", URL: "https://example.com/tt"}, WantError: false},
		{name: "Missing language code", track: CaptionTrack{URL: "https://example.com/tt"}, WantError: true},
		{name: "Whitespace language code", track: CaptionTrack{LanguageCode: "  ", URL: "https://example.com/tt"}, WantError: true},
		{name: "Missing URL", track: CaptionTrack{LanguageCode: "en"}, WantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.track.Validate()
			if tt.WantError && err == nil {
				t.Error("Expected error but got nil")
			}
			if !tt.WantError && err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
		})
	}
}

func TestCaptionTrack_Origin(t *testing.T) {
	manual := CaptionTrack{LanguageCode: "en"}
	if manual.Origin() != OriginManual {
		t.Errorf("Expected origin %s, got %s", OriginManual, manual.Origin())
	}

	generated := CaptionTrack{LanguageCode: "en", Generated: true}
	if generated.Origin() != OriginGenerated {
		t.Errorf("Expected origin %s, got %s", OriginGenerated, generated.Origin())
	}
}

func TestCaptionTrack_String(t *testing.T) {
	tests := []struct {
		track    CaptionTrack
		expected string
	}{
		{CaptionTrack{Language: "English", LanguageCode: "en"}, "English (en) - Manual"},
		{CaptionTrack{Language: "German (auto-generated)", LanguageCode: "de", Generated: true}, "German (auto-generated) (de) - Auto-generated"},
		{CaptionTrack{LanguageCode: "fr"}, "fr (fr) - Manual"},
	}

	for _, tt := range tests {
		if got := tt.track.String(); got != tt.expected {
			t.Errorf("String() = %q; want %q", got, tt.expected)
		}
	}
}
