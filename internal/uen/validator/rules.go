package validator

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
)

// Field error messages.
const (
	MsgBusinessReg  = "BusinessReg must be 8 digits followed by a letter."
	MsgLocalCompany = "LocalCompany must follow yyyyNNNNNX format (1800–2028)."
	MsgOtherEntity  = "OtherEntity must follow T/S/RyyXXNNNNX format."
	MsgMissingInput = "Please provide 1 input for the field under (BusinessReg, LocalCompany, or OtherEntity)."
)

// entityCodes is the closed set of entity type codes accepted in the
// OtherEntity entity position. RPTU is the only four-letter code.
var entityCodes = []string{
	"LP", "LL", "FC", "PF", "RF", "MQ", "MM", "NB", "CC", "CS",
	"MB", "FM", "GS", "DP", "CP", "NR", "CM", "CD", "MD", "HS",
	"VH", "CH", "MH", "CL", "XL", "CX", "HC", "RPTU", "TC", "FB",
	"FN", "PA", "PB", "SS", "MC", "SM", "GA", "GB",
}

var (
	// 8 digits + letter, e.g. 12345678A.
	businessRegPattern = regexp.MustCompile(`^[0-9]{8}[A-Za-z]$`)

	// yyyyNNNNNX with yyyy in 1800..2028, e.g. 200312345A.
	localCompanyPattern = regexp.MustCompile(
		`^(?:18[0-9]{2}|19[0-9]{2}|20(?:0[0-9]|1[0-9]|2[0-8]))[0-9]{5}[A-Za-z]$`)

	// T/S/R + yy + entity code + NNNN + letter, e.g. T19LL0001K.
	otherEntityPattern = regexp.MustCompile(
		`^(?:[Tt](?:0[0-9]|1[0-9]|2[0-8])|[SsRr][0-9]{2})(?:` +
			asciiFoldAlternation(entityCodes) +
			`)[0-9]{4}[A-Za-z]$`)
)

// asciiFoldAlternation renders codes as a regexp alternation in which every
// letter matches both ASCII cases and nothing else. The (?i) flag is avoided
// because it also folds K to U+212A and S to U+017F.
func asciiFoldAlternation(codes []string) string {
	alts := make([]string, 0, len(codes))
	for _, code := range codes {
		var b strings.Builder
		for _, r := range code {
			b.WriteByte('[')
			b.WriteRune(unicode.ToUpper(r))
			b.WriteRune(unicode.ToLower(r))
			b.WriteByte(']')
		}
		alts = append(alts, b.String())
	}
	return strings.Join(alts, "|")
}

// EntityCodes returns a copy of the accepted OtherEntity entity codes.
func EntityCodes() []string {
	return slices.Clone(entityCodes)
}

// IsBusinessReg reports whether s is a business registration number.
func IsBusinessReg(s string) bool {
	return businessRegPattern.MatchString(s)
}

// IsLocalCompany reports whether s is a local company registration number.
func IsLocalCompany(s string) bool {
	return localCompanyPattern.MatchString(s)
}

// IsOtherEntity reports whether s is an other-entity registration number.
func IsOtherEntity(s string) bool {
	return otherEntityPattern.MatchString(s)
}
