// Package phone validates and normalizes free-text phone numbers to E.164.
package phone

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var nonDialable = regexp.MustCompile(`[^\d+]`)

// Normalizer validates phone numbers for a single region.
type Normalizer struct {
	region      string
	callingCode string
}

// NewNormalizer creates a Normalizer for the given region, e.g. ("IN", "91").
func NewNormalizer(region, callingCode string) *Normalizer {
	return &Normalizer{region: region, callingCode: callingCode}
}

// Normalize returns the E.164 form of raw and true, or ("", false) when raw
// is empty or does not validate. An invalid phone is an expected outcome,
// not an error.
//
// The cleaned input is tried as-is first, then with leading zeros stripped
// and the region calling code prepended. The first candidate that parses,
// is valid, and is a mobile or fixed line wins; the order matters because
// it decides how ambiguous digit strings are interpreted.
func (n *Normalizer) Normalize(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}

	cleaned := nonDialable.ReplaceAllString(raw, "")
	if cleaned == "" {
		return "", false
	}

	candidates := []string{
		cleaned,
		"+" + n.callingCode + strings.TrimLeft(cleaned, "0"),
	}

	for _, candidate := range candidates {
		num, err := phonenumbers.Parse(candidate, n.region)
		if err != nil {
			continue
		}
		if !phonenumbers.IsValidNumber(num) {
			continue
		}
		if !reachableLine(phonenumbers.GetNumberType(num)) {
			continue
		}
		return phonenumbers.Format(num, phonenumbers.E164), true
	}

	return "", false
}

// reachableLine reports whether the number type is a callable business
// line. Toll-free, premium-rate, VOIP and the like are rejected.
func reachableLine(t phonenumbers.PhoneNumberType) bool {
	switch t {
	case phonenumbers.MOBILE, phonenumbers.FIXED_LINE, phonenumbers.FIXED_LINE_OR_MOBILE:
		return true
	default:
		return false
	}
}
