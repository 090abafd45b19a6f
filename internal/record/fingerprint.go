package record

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// NormalizeName lowercases, trims and collapses internal whitespace so the
// same patient name always produces the same fingerprint input.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// Fingerprint derives the stable patient key from the normalized full name,
// the exact date-of-birth string and the last four phone digits. The hash is
// deterministic across processes and restarts; record creation and intake
// matching must both go through this function.
func Fingerprint(fullName, dob, phoneLast4 string) string {
	input := NormalizeName(fullName) + "|" + strings.TrimSpace(dob) + "|" + strings.TrimSpace(phoneLast4)
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}
