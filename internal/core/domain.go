package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DescriptionSeparator joins the parts of a record description.
const DescriptionSeparator = " | "

type (
	// Category is one entry of the fixed category catalog.
	Category string

	// PaymentMode is one entry of the fixed payment catalog.
	PaymentMode string

	// Candidate is a submitted expense before it is admitted to the ledger.
	Candidate struct {
		Timestamp   time.Time
		Category    Category
		Product     string
		GameItem    string
		PaymentMode PaymentMode
		Amount      Amount
	}

	// Record is an expense stored in the ledger. Records are values and are
	// never changed once appended.
	Record struct {
		ID          int
		Timestamp   time.Time
		Category    Category
		Product     string
		GameItem    string // only set for Gaming
		PaymentMode PaymentMode
		Amount      Amount
		Description string
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidEnum   = errors.New("invalid enum value")
)

// Enum field names carried by EnumError.
const (
	FieldCategory    = "category"
	FieldPaymentMode = "payment mode"
)

// EnumError reports a value outside one of the fixed catalogs. It matches
// ErrInvalidEnum with errors.Is.
type EnumError struct {
	Field string
	Value string
}

func (e *EnumError) Error() string {
	return fmt.Sprintf("%v: %s %q", ErrInvalidEnum, e.Field, e.Value)
}

func (e *EnumError) Unwrap() error { return ErrInvalidEnum }

// Valid reports whether c belongs to the category catalog.
func (c Category) Valid() bool {
	_, ok := categoryIndex[c]
	return ok
}

func (c Category) String() string { return string(c) }

// Valid reports whether p belongs to the payment catalog.
func (p PaymentMode) Valid() bool {
	for _, m := range paymentModes {
		if m == p {
			return true
		}
	}
	return false
}

func (p PaymentMode) String() string { return string(p) }

// Validate checks the amount and both enums. It does not reject a game item
// on a non-Gaming candidate: Normalize drops it instead.
func (c Candidate) Validate() error {
	if !c.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !c.Category.Valid() {
		return &EnumError{Field: FieldCategory, Value: string(c.Category)}
	}
	if !c.PaymentMode.Valid() {
		return &EnumError{Field: FieldPaymentMode, Value: string(c.PaymentMode)}
	}
	return nil
}

// Normalize trims free-text fields and clears the game item outside Gaming.
func (c Candidate) Normalize() Candidate {
	c.Product = sanitize(c.Product)
	c.GameItem = sanitize(c.GameItem)
	if c.Category != Gaming {
		c.GameItem = ""
	}
	return c
}

// NewRecord validates and normalizes c and builds the record stored at
// position id.
func NewRecord(id int, c Candidate) (Record, error) {
	if err := c.Validate(); err != nil {
		return Record{}, err
	}
	c = c.Normalize()
	return Record{
		ID:          id,
		Timestamp:   c.Timestamp,
		Category:    c.Category,
		Product:     c.Product,
		GameItem:    c.GameItem,
		PaymentMode: c.PaymentMode,
		Amount:      c.Amount,
		Description: Describe(c.Category, c.Product, c.GameItem, c.PaymentMode),
	}, nil
}

// Describe builds "category | product | game item | payment mode", leaving
// out empty parts.
func Describe(category Category, product, gameItem string, mode PaymentMode) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{string(category), product, gameItem, string(mode)} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, DescriptionSeparator)
}

// sanitize trims whitespace and drops control characters.
func sanitize(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, s)
}
