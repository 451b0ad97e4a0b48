// Package validate holds the per-field form validators. Validation
// runs before any mutation is issued; a failing form never reaches the
// network.
package validate

import (
	"math"
	"net/mail"
	"strconv"
	"strings"
)

// Errors maps field names to human-readable messages.
type Errors map[string]string

// Check records msg under field when msg is non-empty.
func (e Errors) Check(field, msg string) {
	if msg != "" {
		e[field] = msg
	}
}

// Valid reports whether no field failed.
func (e Errors) Valid() bool {
	return len(e) == 0
}

// Required rejects empty or whitespace-only values.
func Required(value, label string) string {
	if strings.TrimSpace(value) == "" {
		return label + " is required"
	}
	return ""
}

// Email rejects malformed addresses.
func Email(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Email is required"
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return "Invalid email"
	}
	return ""
}

// MinLen rejects values shorter than n characters.
func MinLen(value, label string, n int) string {
	if len(value) < n {
		return label + " must be at least " + strconv.Itoa(n) + " characters"
	}
	return ""
}

// Price parses a price field and rejects non-numeric, zero, and
// negative values. Any positive decimal is accepted.
func Price(raw string) (float64, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, "Price is required"
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, "Price must be a number"
	}
	if price <= 0 {
		return 0, "Price must be positive"
	}
	return price, ""
}

// Amount parses the add-funds amount with the same rule as Price but
// the wallet page's message.
func Amount(raw string) (float64, string) {
	raw = strings.TrimSpace(raw)
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, "Please enter a valid amount greater than 0"
	}
	return amount, ""
}
