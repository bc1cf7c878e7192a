// Package validate holds the pure validation and normalization pipeline run
// by the worker. Malformed input is an expected outcome here: every failure
// is returned as an error whose message is shown to the caller verbatim.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/you/orderq/internal/domain"
)

const (
	minPhoneDigits = 7
	maxPhoneDigits = 15
)

var (
	spaceRun     = regexp.MustCompile(`\s+`)
	namePattern  = regexp.MustCompile(`^[\p{L} '-]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9()\- ]+$`)
	nonDigit     = regexp.MustCompile(`[^0-9]`)
)

// UserName collapses whitespace runs, trims, and checks the result against a
// Unicode-letter/space/apostrophe/hyphen class.
func UserName(raw string) (string, error) {
	name := strings.TrimSpace(spaceRun.ReplaceAllString(raw, " "))
	if !namePattern.MatchString(name) {
		return "", errors.New("User name contains invalid characters")
	}
	return name, nil
}

// PhoneNumber normalizes an international phone number to E.164. The digit
// count is checked before parsing so out-of-range input gets the specific
// digit-count reason rather than a generic parse failure.
func PhoneNumber(raw string) (string, error) {
	phone := strings.TrimSpace(spaceRun.ReplaceAllString(raw, " "))
	if !phonePattern.MatchString(phone) {
		return "", errors.New("Phone number contains invalid characters")
	}
	if n := len(nonDigit.ReplaceAllString(phone, "")); n < minPhoneDigits || n > maxPhoneDigits {
		return "", fmt.Errorf("Phone number must contain %d to %d digits", minPhoneDigits, maxPhoneDigits)
	}
	if !strings.HasPrefix(phone, "+") {
		phone = "+" + phone
	}
	num, err := phonenumbers.Parse(phone, "")
	if err != nil {
		return "", fmt.Errorf("Invalid phone number format: %v", err)
	}
	if !phonenumbers.IsPossibleNumber(num) || !phonenumbers.IsValidNumber(num) {
		return "", errors.New("Phone number is not valid")
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// Request runs the validators in a fixed order (name, then phone) and stops
// at the first failure. Input-shape checks (missing fields, length bounds)
// belong to the HTTP boundary, not here.
func Request(req domain.OrderRequest) (domain.OrderRequest, error) {
	name, err := UserName(req.UserName)
	if err != nil {
		return domain.OrderRequest{}, err
	}
	phone, err := PhoneNumber(req.PhoneNumber)
	if err != nil {
		return domain.OrderRequest{}, err
	}
	return domain.OrderRequest{UserName: name, PhoneNumber: phone}, nil
}
