package utils

import (
	"errors"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// ErrInvalidPhoneNumber is returned when a phone number cannot be parsed or
// is not a valid number for its region.
var ErrInvalidPhoneNumber = errors.New("invalid phone number")

// NormalizePhone parses raw and returns it in E.164 form. Numbers without a
// leading "+" are interpreted in defaultRegion (ISO 3166-1 alpha-2).
func NormalizePhone(raw, defaultRegion string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidPhoneNumber
	}

	num, err := phonenumbers.Parse(raw, strings.ToUpper(defaultRegion))
	if err != nil {
		return "", errors.Join(ErrInvalidPhoneNumber, err)
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", ErrInvalidPhoneNumber
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}
