package utils

import (
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// NormalizePhone parses a claimant contact phone and returns it in E.164.
// Numbers without a country code are assumed to be Brazilian.
func NormalizePhone(phoneString string) (string, error) {
	cleanPhone := strings.TrimSpace(phoneString)
	if cleanPhone == "" {
		return "", fmt.Errorf("empty phone number")
	}

	if !strings.HasPrefix(cleanPhone, "+") {
		if strings.HasPrefix(cleanPhone, "55") && len(cleanPhone) > 11 {
			cleanPhone = "+" + cleanPhone
		} else {
			cleanPhone = "+55" + cleanPhone
		}
	}

	num, err := phonenumbers.Parse(cleanPhone, "")
	if err != nil {
		return "", fmt.Errorf("failed to parse phone number: %w", err)
	}

	if !phonenumbers.IsValidNumber(num) {
		return "", fmt.Errorf("invalid phone number: %s", phoneString)
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}
