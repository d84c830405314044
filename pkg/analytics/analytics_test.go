package analytics

import "testing"

func TestOpeningPhrase(t *testing.T) {
	tests := []struct {
		name    string
		content string
		window  int
		want    string
		wantOK  bool
	}{
		{name: "longer than window", content: "Can you please fix the header now", window: 5, want: "Can you please fix the", wantOK: true},
		{name: "exactly three tokens", content: "fix it now", window: 5, want: "fix it now", wantOK: true},
		{name: "two tokens excluded", content: "fix it", window: 5, wantOK: false},
		{name: "one token excluded", content: "ok", window: 5, wantOK: false},
		{name: "empty excluded", content: "", window: 5, wantOK: false},
		{name: "whitespace collapsed", content: "Can\tyou\n\nplease   fix", window: 5, want: "Can you please fix", wantOK: true},
		{name: "custom window", content: "one two three four", window: 3, want: "one two three", wantOK: true},
		{name: "zero window uses default", content: "a b c d e f g", window: 0, want: "a b c d e", wantOK: true},
		{name: "case preserved", content: "WHY is This broken", window: 5, want: "WHY is This broken", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := OpeningPhrase(tt.content, tt.window)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("OpeningPhrase(%q, %d) = (%q, %v), want (%q, %v)", tt.content, tt.window, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNewLanguageDetector_Validation(t *testing.T) {
	if _, err := NewLanguageDetector([]string{"english"}); err == nil {
		t.Error("NewLanguageDetector() with one language should fail")
	}
	if _, err := NewLanguageDetector([]string{"english", "klingon"}); err == nil {
		t.Error("NewLanguageDetector() with unknown language should fail")
	}
	if _, err := NewLanguageDetector([]string{"English", "english"}); err == nil {
		t.Error("NewLanguageDetector() with duplicate language should count it once and fail")
	}
}

func TestLanguageDetector_Detect(t *testing.T) {
	d, err := NewLanguageDetector([]string{"english", "german"})
	if err != nil {
		t.Fatalf("NewLanguageDetector() error = %v", err)
	}

	if got := d.Detect("Can you please deploy the application to the server today"); got != "english" {
		t.Errorf("Detect(english sentence) = %q, want english", got)
	}
	if got := d.Detect("Kannst du bitte die Anwendung heute auf den Server bringen"); got != "german" {
		t.Errorf("Detect(german sentence) = %q, want german", got)
	}
}
