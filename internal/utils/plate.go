package utils

import (
	"regexp"
	"strings"
)

var (
	nonAlnumRe     = regexp.MustCompile(`[^A-Za-z0-9]`)
	legacyPlateRe  = regexp.MustCompile(`^[A-Z]{3}[0-9]{4}$`)
	mercosulPlateRe = regexp.MustCompile(`^[A-Z]{3}[0-9][A-Z][0-9]{2}$`)
)

// ValidatePlate validates a Brazilian vehicle plate in either the legacy
// (LLLDDDD) or Mercosul (LLLDLDD) format
func ValidatePlate(plate string) bool {
	plate = strings.ToUpper(nonAlnumRe.ReplaceAllString(plate, ""))
	return legacyPlateRe.MatchString(plate) || mercosulPlateRe.MatchString(plate)
}

// FormatPlate uppercases a plate and inserts the hyphen after the third
// character for complete plates. Incomplete input is returned cleaned,
// truncated to 8 characters.
func FormatPlate(plate string) string {
	clean := strings.ToUpper(nonAlnumRe.ReplaceAllString(plate, ""))
	if len(clean) == 7 {
		return clean[:3] + "-" + clean[3:]
	}
	if len(clean) > 8 {
		clean = clean[:8]
	}
	return clean
}
