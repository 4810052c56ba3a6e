package model

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantOK bool
		want   time.Time
	}{
		{
			name:   "date only",
			input:  "2025-06-15",
			wantOK: true,
			want:   time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "rfc3339",
			input:  "2025-06-15T08:30:00Z",
			wantOK: true,
			want:   time.Date(2025, 6, 15, 8, 30, 0, 0, time.UTC),
		},
		{
			name:   "datetime without zone",
			input:  "2025-06-15T08:30:00",
			wantOK: true,
			want:   time.Date(2025, 6, 15, 8, 30, 0, 0, time.UTC),
		},
		{
			name:   "empty",
			input:  "",
			wantOK: false,
		},
		{
			name:   "garbage",
			input:  "tomorrow-ish",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseDate(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDateOnly(t *testing.T) {
	if got := DateOnly("2025-06-15T23:59:00Z"); got != "2025-06-15" {
		t.Errorf("DateOnly = %q, want 2025-06-15", got)
	}
	if got := DateOnly("nonsense"); got != "" {
		t.Errorf("DateOnly(nonsense) = %q, want empty", got)
	}
}

func TestTransactionLabel(t *testing.T) {
	tx := Transaction{Title: "Groceries", Description: "weekly shop"}
	if got := tx.Label(); got != "Groceries" {
		t.Errorf("Label = %q, want title to win", got)
	}

	tx = Transaction{Description: "weekly shop"}
	if got := tx.Label(); got != "weekly shop" {
		t.Errorf("Label = %q, want description fallback", got)
	}

	tx = Transaction{}
	if got := tx.Label(); got != "" {
		t.Errorf("Label = %q, want empty", got)
	}
}

func TestIsLocalToken(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{token: "local-token", want: true},
		{token: "local-abc123", want: true},
		{token: "demo-session", want: true},
		{token: "eyJhbGciOi.server.jwt", want: false},
		{token: "", want: false},
	}

	for _, tt := range tests {
		if got := IsLocalToken(tt.token); got != tt.want {
			t.Errorf("IsLocalToken(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}

func TestTransactionTypeIsValid(t *testing.T) {
	if !TypeIncome.IsValid() || !TypeExpense.IsValid() {
		t.Error("known types must be valid")
	}
	if TransactionType("transfer").IsValid() {
		t.Error("unknown type must be invalid")
	}
}
