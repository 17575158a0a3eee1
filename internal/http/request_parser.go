// Package http provides HTTP server and handler implementations.
//
// This file implements utilities for parsing and validating HTTP request data.
// Both the HTMX form and the JSON API feed the same candidate parser.

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"spendlog/internal/core"
)

const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04"
	timeLayoutSecs = "15:04:05"

	maxBodyBytes = 64 << 10
)

// ErrInvalidTimestamp is returned when the date or time field cannot be parsed.
var ErrInvalidTimestamp = errors.New("invalid date or time")

// valueGetter is satisfied by url.Values and RequestBodyParser.
type valueGetter interface {
	Get(key string) string
}

// ParseCandidate builds a candidate from submitted fields.
//
// Fields: date (YYYY-MM-DD), time (HH:MM or HH:MM:SS), category, product,
// product_custom, amount, payment_mode, game_item. A missing date or time
// defaults to now. When product is empty or "Other" the free-text
// product_custom is used instead.
func ParseCandidate(v valueGetter, loc *time.Location, now time.Time) (core.Candidate, error) {
	if loc == nil {
		loc = time.Local
	}
	ts, err := parseTimestamp(strings.TrimSpace(v.Get("date")), strings.TrimSpace(v.Get("time")), loc, now.In(loc))
	if err != nil {
		return core.Candidate{}, err
	}

	amount, err := core.ParseAmount(v.Get("amount"))
	if err != nil {
		return core.Candidate{}, err
	}

	return core.Candidate{
		Timestamp:   ts,
		Category:    core.Category(sanitizeInput(v.Get("category"))),
		Product:     chooseProduct(v.Get("product"), v.Get("product_custom")),
		GameItem:    sanitizeInput(v.Get("game_item")),
		PaymentMode: core.PaymentMode(sanitizeInput(v.Get("payment_mode"))),
		Amount:      amount,
	}, nil
}

func chooseProduct(selected, custom string) string {
	selected = sanitizeInput(selected)
	if selected == "" || selected == core.CustomProduct {
		if c := sanitizeInput(custom); c != "" {
			return c
		}
	}
	return selected
}

func parseTimestamp(date, clock string, loc *time.Location, now time.Time) (time.Time, error) {
	if date == "" {
		date = now.Format(dateLayout)
	}
	if clock == "" {
		clock = now.Format(timeLayoutSecs)
	}

	layout := dateLayout + " " + timeLayout
	if strings.Count(clock, ":") == 2 {
		layout = dateLayout + " " + timeLayoutSecs
	}
	ts, err := time.ParseInLocation(layout, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q %q", ErrInvalidTimestamp, date, clock)
	}
	return ts, nil
}

// FilterParam returns the product filter from the q query parameter.
func FilterParam(query url.Values) string {
	return sanitizeInput(query.Get("q"))
}

// RequestBodyParser handles different content types for request body parsing.
// It supports both JSON and form-encoded data, commonly used with HTMX.
type RequestBodyParser struct {
	body        []byte
	contentType string
	jsonData    map[string]interface{}
	formData    url.Values
	parsed      bool
	err         error
}

// NewRequestBodyParser creates a parser for the given request.
// It reads the body once and stores it for subsequent parsing.
func NewRequestBodyParser(r *http.Request) *RequestBodyParser {
	p := &RequestBodyParser{
		contentType: r.Header.Get("Content-Type"),
	}

	p.body, p.err = io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	return p
}

// Parse attempts to parse the body as JSON or form data.
func (p *RequestBodyParser) Parse() error {
	if p.parsed {
		return p.err
	}
	p.parsed = true

	if p.err != nil {
		return p.err
	}

	if len(p.body) == 0 {
		p.formData = url.Values{}
		return nil
	}

	// Try JSON first if content looks like JSON
	if p.body[0] == '{' {
		p.jsonData = make(map[string]interface{})
		if err := json.Unmarshal(p.body, &p.jsonData); err != nil {
			p.err = err
			return err
		}
		return nil
	}

	p.formData, p.err = url.ParseQuery(string(p.body))
	return p.err
}

// Get returns a string value from the parsed data (JSON or form).
func (p *RequestBodyParser) Get(key string) string {
	if p.jsonData != nil {
		if val, ok := p.jsonData[key]; ok {
			return strings.TrimSpace(sanitizeInput(stringValue(val)))
		}
	}
	if p.formData != nil {
		return strings.TrimSpace(sanitizeInput(p.formData.Get(key)))
	}
	return ""
}

// IsJSON returns true if the parsed content was JSON.
func (p *RequestBodyParser) IsJSON() bool {
	return p.jsonData != nil
}

func stringValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// sanitizeInput trims whitespace and removes control characters except tab,
// newline and carriage return.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
