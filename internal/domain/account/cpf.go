package account

import (
	"strings"
	"unicode"
)

// NormalizeCPF strips punctuation and reports whether what is left is a
// plausible CPF: eleven digits, not all the same.
func NormalizeCPF(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	cpf := b.String()

	if len(cpf) != 11 {
		return "", false
	}
	if strings.Count(cpf, cpf[:1]) == 11 {
		return "", false
	}
	return cpf, true
}

// FormatCPF renders 00000000000 as 000.000.000-00.
func FormatCPF(cpf string) string {
	if len(cpf) != 11 {
		return cpf
	}
	return cpf[:3] + "." + cpf[3:6] + "." + cpf[6:9] + "-" + cpf[9:]
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
