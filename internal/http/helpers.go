package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"spendlog/internal/core"
)

const rupee = "₹"

// formatRupees renders an amount with thousands grouping, e.g. "₹1,299.50".
func formatRupees(a core.Amount) string {
	return rupee + humanize.FormatFloat("#,###.##", a.Float64())
}

// formatShare renders a percentage with one decimal.
func formatShare(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// createdMessage is the confirmation shown after a successful submit.
func createdMessage(r core.Record) string {
	return fmt.Sprintf("Added %s to %s (%s)", formatRupees(r.Amount), r.Category, r.Product)
}

// validationMessage maps validation errors to the text shown to the user.
func validationMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, core.ErrInvalidAmount):
		return "Please enter an amount greater than 0.", true
	case errors.Is(err, core.ErrInvalidEnum):
		return "Please choose a " + enumField(err) + " from the list.", true
	case errors.Is(err, ErrInvalidTimestamp):
		return "Please enter a valid date and time.", true
	}
	return "", false
}

func enumField(err error) string {
	var enumErr *core.EnumError
	if errors.As(err, &enumErr) && enumErr.Field != "" {
		return enumErr.Field
	}
	return core.FieldCategory
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "JSON encode failed", "error", err, "path", r.URL.Path)
	}
}

func writeJSONError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, status, map[string]string{"error": message})
}
