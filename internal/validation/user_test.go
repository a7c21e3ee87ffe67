package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email   string
		wantErr bool
	}{
		{"user@example.com", false},
		{"first.last@sub.example.co", false},
		{"  user@example.com  ", false},
		{"", true},
		{"plainaddress", true},
		{"@example.com", true},
		{"user@", true},
		{"user@example", true},
		{"user name@example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"minimum length", "12345", false},
		{"normal", "correct horse", false},
		{"too short", "1234", true},
		{"whitespace does not count", "  1234  ", true},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 129), true},
		{"max length", strings.Repeat("a", 128), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"minimum length", "Jo", false},
		{"normal", "Maria Santos", false},
		{"single char", "J", true},
		{"whitespace only", "   ", true},
		{"empty", "", true},
		{"too long", strings.Repeat("x", 71), true},
		{"max length", strings.Repeat("x", 70), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
