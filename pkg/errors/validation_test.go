package errors

import (
	"strings"
	"testing"
)

func TestValidateAppID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"simple", "billing", false},
		{"with dashes", "auth-service-2", false},
		{"unicode", "zahlungsverkehr-ü", false},
		{"empty", "", true},
		{"control character", "bad\nid", true},
		{"null byte", "bad\x00id", true},
		{"too long", strings.Repeat("a", 257), true},
		{"max length", strings.Repeat("a", 256), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAppID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAppID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateAppID(%q) code = %v, want %v", tt.id, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{"app.json", false},
		{"/srv/data/app.json", false},
		{"./public/app.json", false},
		{"", true},
		{"bad\x00path", true},
		{strings.Repeat("a", 4097), true},
	}

	for _, tt := range tests {
		err := ValidatePath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://example.com/app.json", false},
		{"http://localhost:3000/app.json", false},
		{"", true},
		{"ftp://example.com/app.json", true},
		{"app.json", true},
	}

	for _, tt := range tests {
		err := ValidateURL(tt.url)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
		}
	}
}
