package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"spendlog/internal/core"
)

func TestParseCandidate(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	now := time.Date(2025, time.March, 2, 8, 45, 10, 0, time.UTC)

	tests := []struct {
		name    string
		form    url.Values
		want    core.Candidate
		wantErr error
	}{
		{
			name: "full form",
			form: url.Values{
				"date": {"2025-03-01"}, "time": {"19:05"}, "category": {"Food"},
				"product": {"Pizza"}, "payment_mode": {"UPI"}, "amount": {"₹1,250.5"},
			},
			want: core.Candidate{
				Timestamp:   time.Date(2025, time.March, 1, 19, 5, 0, 0, kolkata),
				Category:    core.Food,
				Product:     "Pizza",
				PaymentMode: core.UPI,
				Amount:      core.AmountFromFloat(1250.5),
			},
		},
		{
			name: "seconds and custom product",
			form: url.Values{
				"date": {"2025-03-01"}, "time": {"19:05:30"}, "category": {"Gaming"},
				"product": {"Other"}, "product_custom": {" Season Pass "}, "game_item": {"UC (BGMI)"},
				"payment_mode": {"Wallet"}, "amount": {"99"},
			},
			want: core.Candidate{
				Timestamp:   time.Date(2025, time.March, 1, 19, 5, 30, 0, kolkata),
				Category:    core.Gaming,
				Product:     "Season Pass",
				GameItem:    "UC (BGMI)",
				PaymentMode: core.Wallet,
				Amount:      core.AmountFromFloat(99),
			},
		},
		{
			name: "missing date and time default to now",
			form: url.Values{"category": {"Food"}, "product": {"Coffee"}, "payment_mode": {"Cash"}, "amount": {"40"}},
			want: core.Candidate{
				Timestamp:   now.In(kolkata).Truncate(time.Second),
				Category:    core.Food,
				Product:     "Coffee",
				PaymentMode: core.Cash,
				Amount:      core.AmountFromFloat(40),
			},
		},
		{
			name:    "empty amount",
			form:    url.Values{"category": {"Food"}, "payment_mode": {"Cash"}},
			wantErr: core.ErrInvalidAmount,
		},
		{
			name:    "bad time",
			form:    url.Values{"date": {"2025-03-01"}, "time": {"25:99"}, "amount": {"1"}},
			wantErr: ErrInvalidTimestamp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCandidate(tt.form, kolkata, now)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Timestamp.Equal(tt.want.Timestamp) {
				t.Errorf("Timestamp = %v, want %v", got.Timestamp, tt.want.Timestamp)
			}
			if got.Category != tt.want.Category || got.Product != tt.want.Product ||
				got.GameItem != tt.want.GameItem || got.PaymentMode != tt.want.PaymentMode {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
			if !got.Amount.Equal(tt.want.Amount) {
				t.Errorf("Amount = %s, want %s", got.Amount, tt.want.Amount)
			}
		})
	}
}

func TestChooseProduct(t *testing.T) {
	tests := []struct {
		selected, custom, want string
	}{
		{"Coffee", "ignored", "Coffee"},
		{"Other", "Bubble Tea", "Bubble Tea"},
		{"", "Bubble Tea", "Bubble Tea"},
		{"Other", "   ", "Other"},
		{"", "", ""},
	}
	for _, tt := range tests {
		if got := chooseProduct(tt.selected, tt.custom); got != tt.want {
			t.Errorf("chooseProduct(%q, %q) = %q, want %q", tt.selected, tt.custom, got, tt.want)
		}
	}
}

func TestFilterParam(t *testing.T) {
	q := url.Values{"q": {"  cof\x00fee "}}
	if got := FilterParam(q); got != "coffee" {
		t.Errorf("FilterParam = %q, want %q", got, "coffee")
	}
	if got := FilterParam(url.Values{}); got != "" {
		t.Errorf("FilterParam(empty) = %q", got)
	}
}

func TestRequestBodyParser_JSON(t *testing.T) {
	body := `{"product": "Coffee", "category": "Food", "amount": 42.5, "flag": true}`
	req := httptest.NewRequest(http.MethodPost, "/api/expenses", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	parser := NewRequestBodyParser(req)
	if err := parser.Parse(); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !parser.IsJSON() {
		t.Error("Expected IsJSON() to be true")
	}
	if got := parser.Get("product"); got != "Coffee" {
		t.Errorf("Get('product') = %q", got)
	}
	if got := parser.Get("amount"); got != "42.5" {
		t.Errorf("Get('amount') = %q, want '42.5'", got)
	}
	if got := parser.Get("flag"); got != "true" {
		t.Errorf("Get('flag') = %q", got)
	}
	if got := parser.Get("missing"); got != "" {
		t.Errorf("Get('missing') = %q", got)
	}
}

func TestRequestBodyParser_FormData(t *testing.T) {
	body := "product=Cold+Coffee&amount=100"
	req := httptest.NewRequest(http.MethodPost, "/api/expenses", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	parser := NewRequestBodyParser(req)
	if err := parser.Parse(); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if parser.IsJSON() {
		t.Error("Expected IsJSON() to be false for form data")
	}
	if got := parser.Get("product"); got != "Cold Coffee" {
		t.Errorf("Get('product') = %q", got)
	}
}

func TestRequestBodyParser_InvalidJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/expenses", strings.NewReader(`{"amount":`))
	parser := NewRequestBodyParser(req)
	if err := parser.Parse(); err == nil {
		t.Fatal("expected error for truncated JSON")
	}
	if err := parser.Parse(); err == nil {
		t.Fatal("second Parse should return the same error")
	}
}

func TestRequestBodyParser_EmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/expenses", strings.NewReader(""))
	parser := NewRequestBodyParser(req)
	if err := parser.Parse(); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if val := parser.Get("nonexistent"); val != "" {
		t.Errorf("Get('nonexistent') = %q, want empty string", val)
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := map[string]string{
		"  plain  ":       "plain",
		"tab\tkept":       "tab\tkept",
		"bell\x07gone":    "bellgone",
		"line\nbreak":     "line\nbreak",
		"\x1b[31mred\x00": "[31mred",
	}
	for in, want := range tests {
		if got := sanitizeInput(in); got != want {
			t.Errorf("sanitizeInput(%q) = %q, want %q", in, got, want)
		}
	}
}
