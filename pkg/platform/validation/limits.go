package validation

import (
	"fmt"
	"unicode/utf8"

	dErrors "uenvalidator/pkg/domain-errors"
)

// HTTP body limits
const (
	// MaxBodySize caps request bodies (64 KB); a UEN submission is three short strings.
	MaxBodySize = 64 * 1024
)

// Input limits shared by the HTTP and CLI boundaries. The validation engine
// itself accepts any length.
const (
	// MaxFieldLength is the longest value accepted for any single UEN field.
	MaxFieldLength = 256

	// MaxBatchRecords bounds how many rows a single batch run will read.
	MaxBatchRecords = 100_000
)

// CheckStringLength fails when value has more than max characters. Invalid
// UTF-8 bytes count one each, matching the validator's max tag.
func CheckStringLength(fieldName, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s exceeds max length of %d", fieldName, max))
	}
	return nil
}

// CheckCount fails when count is above max.
func CheckCount(what string, count, max int) error {
	if count > max {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("too many %s: max %d allowed", what, max))
	}
	return nil
}
