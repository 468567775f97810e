// Package payment simulates the card checkout that unlocks Pro. Nothing
// leaves the machine: a card that passes local validation is treated as
// charged.
package payment

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	ProPrice = "$9.99"

	// TestCardNumber is the card the checkout hint shows.
	TestCardNumber = "4242 4242 4242 4242"
)

var (
	ErrInvalidNumber = errors.New("card number is invalid")
	ErrInvalidExpiry = errors.New("expiry must be MM/YY")
	ErrCardExpired   = errors.New("card has expired")
	ErrInvalidCVC    = errors.New("CVC must be 3 or 4 digits")
)

type Card struct {
	Number string
	Expiry string
	CVC    string
}

// Validate checks the number (Luhn), expiry (not before now's month) and
// CVC.
func (c Card) Validate(now time.Time) error {
	digits := stripSpaces(c.Number)
	if len(digits) < 12 || len(digits) > 19 || !isDigits(digits) || !luhn(digits) {
		return ErrInvalidNumber
	}

	month, year, err := parseExpiry(c.Expiry)
	if err != nil {
		return err
	}
	// First instant after the expiry month.
	end := time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC)
	if !now.UTC().Before(end) {
		return ErrCardExpired
	}

	if cvc := strings.TrimSpace(c.CVC); len(cvc) < 3 || len(cvc) > 4 || !isDigits(cvc) {
		return ErrInvalidCVC
	}
	return nil
}

// Last4 is the masked number shown in receipts.
func (c Card) Last4() string {
	d := stripSpaces(c.Number)
	if len(d) < 4 {
		return d
	}
	return d[len(d)-4:]
}

func parseExpiry(s string) (int, int, error) {
	mm, yy, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || len(mm) != 2 || len(yy) != 2 {
		return 0, 0, ErrInvalidExpiry
	}
	month, err := strconv.Atoi(mm)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, ErrInvalidExpiry
	}
	year, err := strconv.Atoi(yy)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidExpiry, err)
	}
	return month, 2000 + year, nil
}

func luhn(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

func stripSpaces(s string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(s)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
