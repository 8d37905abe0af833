// Package cpf validates Brazilian CPF taxpayer identifiers.
package cpf

import (
	"fmt"
	"strings"
)

// CPF is a validated 11-digit taxpayer identifier.
type CPF struct {
	value string
}

// sandboxFixtures are identifiers used by partner sandbox environments that do
// not carry valid check digits. They are only accepted when the caller opts in
// via NewWithSandboxFixtures; production validation rejects them.
var sandboxFixtures = map[string]struct{}{
	"12345678900": {},
	"98765432100": {},
	"11144477700": {},
}

// New validates and creates a CPF. The input may contain the usual formatting
// characters ("123.456.789-09"); they are stripped before validation.
func New(value string) (CPF, error) {
	return parse(value, false)
}

// NewWithSandboxFixtures behaves like New but additionally accepts the fixed
// set of sandbox test identifiers, bypassing the checksum for those values
// only. Must not be used outside sandbox deployments.
func NewWithSandboxFixtures(value string) (CPF, error) {
	return parse(value, true)
}

func parse(value string, allowFixtures bool) (CPF, error) {
	digits, err := strip(value)
	if err != nil {
		return CPF{}, err
	}

	if len(digits) != 11 {
		return CPF{}, fmt.Errorf("cpf must have 11 digits, got %d", len(digits))
	}

	if allowFixtures {
		if _, ok := sandboxFixtures[digits]; ok {
			return CPF{value: digits}, nil
		}
	}

	if allSameDigit(digits) {
		return CPF{}, fmt.Errorf("cpf with repeated digits is invalid")
	}

	if !checkDigitsValid(digits) {
		return CPF{}, fmt.Errorf("cpf checksum is invalid")
	}

	return CPF{value: digits}, nil
}

// String returns the bare 11-digit identifier.
func (c CPF) String() string {
	return c.value
}

// Formatted returns the identifier in the conventional 000.000.000-00 layout.
func (c CPF) Formatted() string {
	if len(c.value) != 11 {
		return c.value
	}
	return fmt.Sprintf("%s.%s.%s-%s", c.value[0:3], c.value[3:6], c.value[6:9], c.value[9:11])
}

// strip removes the conventional formatting characters. Any other non-digit
// character makes the input malformed; it must never reach the checksum.
func strip(value string) (string, error) {
	var b strings.Builder
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == ' ':
			// formatting, ignore
		default:
			return "", fmt.Errorf("cpf contains invalid character %q", r)
		}
	}
	return b.String(), nil
}

func allSameDigit(digits string) bool {
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}

// checkDigitsValid runs the two-stage mod-11 verification: the 10th digit is
// computed over the first 9 digits with weights 10..2, the 11th over the
// first 10 with weights 11..2.
func checkDigitsValid(digits string) bool {
	return checkDigit(digits, 9) == int(digits[9]-'0') &&
		checkDigit(digits, 10) == int(digits[10]-'0')
}

func checkDigit(digits string, length int) int {
	sum := 0
	for i := 0; i < length; i++ {
		weight := length + 1 - i
		sum += int(digits[i]-'0') * weight
	}
	d := 11 - sum%11
	if d >= 10 {
		return 0
	}
	return d
}
