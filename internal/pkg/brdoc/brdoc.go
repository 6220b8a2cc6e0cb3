// Package brdoc holds formatting and validation helpers for Brazilian
// documents and contact fields (CPF, telefone, CEP).
package brdoc

import "strings"

// DigitsOnly strips everything that is not an ASCII digit.
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCPF renders an 11-digit CPF as 000.000.000-00.
// Inputs that are not 11 digits after normalization are returned unchanged.
func FormatCPF(cpf string) string {
	d := DigitsOnly(cpf)
	if len(d) != 11 {
		return cpf
	}
	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
}

// ValidCPF reports whether cpf has valid check digits.
func ValidCPF(cpf string) bool {
	d := DigitsOnly(cpf)
	if len(d) != 11 {
		return false
	}

	// Sequences like 00000000000 pass the check-digit math but are not
	// assignable CPFs.
	allSame := true
	for i := 1; i < 11; i++ {
		if d[i] != d[0] {
			allSame = false
			break
		}
	}
	if allSame {
		return false
	}

	return int(d[9]-'0') == cpfCheckDigit(d, 9) && int(d[10]-'0') == cpfCheckDigit(d, 10)
}

// cpfCheckDigit computes the verification digit over the first n digits.
func cpfCheckDigit(digits string, n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += int(digits[i]-'0') * (n + 1 - i)
	}
	rest := (sum * 10) % 11
	if rest == 10 {
		return 0
	}
	return rest
}

// FormatTelefone renders a phone number with DDD: 11 digits become
// (00) 00000-0000 and 10 digits become (00) 0000-0000. Anything else is
// returned unchanged.
func FormatTelefone(telefone string) string {
	d := DigitsOnly(telefone)
	switch len(d) {
	case 11:
		return "(" + d[0:2] + ") " + d[2:7] + "-" + d[7:11]
	case 10:
		return "(" + d[0:2] + ") " + d[2:6] + "-" + d[6:10]
	default:
		return telefone
	}
}

// FormatCEP renders an 8-digit CEP as 00000-000.
func FormatCEP(cep string) string {
	d := DigitsOnly(cep)
	if len(d) != 8 {
		return cep
	}
	return d[0:5] + "-" + d[5:8]
}
