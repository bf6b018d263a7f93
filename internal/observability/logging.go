package observability

import (
	"strings"

	"github.com/autoprotege/app-sinistro/internal/logging"
)

// Logger returns the global safe logger instance
func Logger() *logging.SafeLogger {
	return logging.Logger
}

// MaskCPF masks a CPF number for logging. Accepts bare or formatted input.
func MaskCPF(cpf string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, cpf)
	if len(digits) != 11 {
		return "***.***.***-**"
	}
	return digits[:3] + ".***" + "." + digits[6:9] + "-**"
}

// MaskToken masks a completion token for logging, keeping only a short prefix
func MaskToken(token string) string {
	if len(token) <= 8 {
		return "********"
	}
	return token[:8] + "…"
}
