package ocr

import (
	"errors"
	"fmt"

	"github.com/aretw0/bankocr/pkg/domain"
)

// ErrNotAccountNumber is returned by Checksum when its input is not nine decimal digits.
var ErrNotAccountNumber = errors.New("not a 9-digit account number")

// Checksum reports whether digits is a valid account number.
//
// With positions labelled d9..d1 from left to right, the number is valid when
// (d1 + 2*d2 + 3*d3 + ... + 9*d9) mod 11 == 0.
func Checksum(digits string) (bool, error) {
	if len(digits) != domain.DigitsPerLine {
		return false, fmt.Errorf("%w: got %d characters", ErrNotAccountNumber, len(digits))
	}
	sum := 0
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		if c < '0' || c > '9' {
			return false, fmt.Errorf("%w: %q at position %d", ErrNotAccountNumber, c, i)
		}
		sum += (domain.DigitsPerLine - i) * int(c-'0')
	}
	return sum%11 == 0, nil
}

// Classify derives the status of a reading: illegible first, then checksum.
func Classify(r domain.Reading) domain.Status {
	if !r.Legible() {
		return domain.StatusIllegible
	}
	ok, err := Checksum(r.Digits)
	if err != nil || !ok {
		return domain.StatusError
	}
	return domain.StatusOK
}
