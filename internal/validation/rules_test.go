package validation

import (
	"strings"
	"testing"
	"time"
)

func TestRequiredString(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
		errMsg    string
	}{
		{
			name:  "valid value",
			value: "General Admission",
		},
		{
			name:    "empty",
			value:   "",
			wantErr: true,
			errMsg:  "name is required",
		},
		{
			name:    "whitespace only",
			value:   "   \t ",
			wantErr: true,
			errMsg:  "name is required",
		},
		{
			name:  "trims before length check",
			value: "  " + strings.Repeat("a", 255) + "  ",
		},
		{
			name:    "too long",
			value:   strings.Repeat("a", 256),
			wantErr: true,
			errMsg:  "name must be less than 255 characters",
		},
		{
			name:      "custom max length",
			value:     strings.Repeat("a", 101),
			maxLength: 100,
			wantErr:   true,
			errMsg:    "name must be less than 100 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequiredString("name", tt.value, tt.maxLength)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if err.Error() != tt.errMsg {
					t.Errorf("error = %q, want %q", err.Error(), tt.errMsg)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr string
	}{
		{name: "valid", value: "john@example.com"},
		{name: "valid with trim", value: "  john@example.com  "},
		{name: "required", value: "", wantErr: "email is required"},
		{name: "whitespace is required", value: "   ", wantErr: "email is required"},
		{name: "invalid format", value: "not-an-email", wantErr: "please enter a valid email address"},
		{name: "missing domain", value: "john@", wantErr: "please enter a valid email address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Email("email", tt.value)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestPassword(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr string
	}{
		{name: "valid", value: "Password123"},
		{name: "too short", value: "Pass1", wantErr: "password must be at least 8 characters"},
		{
			name:    "too long",
			value:   "P1" + strings.Repeat("a", 127),
			wantErr: "password must be less than 128 characters",
		},
		{name: "no uppercase", value: "password123", wantErr: "password must contain at least one uppercase letter"},
		{name: "no lowercase", value: "PASSWORD123", wantErr: "password must contain at least one lowercase letter"},
		{name: "no digit", value: "PasswordOnly", wantErr: "password must contain at least one digit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Password(tt.value)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestPriceCents(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    int
		wantErr string
	}{
		{name: "valid", value: "2500", want: 2500},
		{name: "zero", value: "0", want: 0},
		{name: "trims whitespace", value: " 100 ", want: 100},
		{name: "required", value: "", wantErr: "price is required"},
		{name: "decimal rejected", value: "25.00", wantErr: "price must be a whole number of cents"},
		{name: "not a number", value: "abc", wantErr: "price must be a whole number of cents"},
		{name: "negative", value: "-100", wantErr: "price cannot be negative"},
		{name: "too large", value: "10000001", wantErr: "price cannot exceed $100,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PriceCents("price", tt.value)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Errorf("error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("cents = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDateValidators(t *testing.T) {
	fixed := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	restore := now
	now = func() time.Time { return fixed }
	defer func() { now = restore }()

	past := fixed.Add(-24 * time.Hour)
	future := fixed.Add(24 * time.Hour)

	if err := RequiredDate("start date", time.Time{}); err == nil || err.Error() != "start date is required" {
		t.Errorf("RequiredDate zero = %v", err)
	}
	if err := RequiredDate("start date", future); err != nil {
		t.Errorf("RequiredDate valid = %v", err)
	}

	if err := FutureDate("start date", future); err != nil {
		t.Errorf("FutureDate future = %v", err)
	}
	if err := FutureDate("start date", past); err == nil || err.Error() != "start date must be in the future" {
		t.Errorf("FutureDate past = %v", err)
	}
	if err := FutureDate("start date", fixed); err == nil {
		t.Error("FutureDate now should fail")
	}

	if err := PastDate("birth date", past); err != nil {
		t.Errorf("PastDate past = %v", err)
	}
	if err := PastDate("birth date", future); err == nil || err.Error() != "birth date must be in the past" {
		t.Errorf("PastDate future = %v", err)
	}

	if err := OptionalFutureDate("end date", time.Time{}); err != nil {
		t.Errorf("OptionalFutureDate zero = %v", err)
	}
	if err := OptionalFutureDate("end date", past); err == nil {
		t.Error("OptionalFutureDate past should fail")
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "empty is optional", value: ""},
		{name: "valid international", value: "+254712345678"},
		{name: "valid with separators", value: "0712 345-678"},
		{name: "letters rejected", value: "phone123", wantErr: true},
		{name: "too short", value: "12345", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Phone("phone", tt.value)
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
