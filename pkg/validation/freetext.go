// Package validation screens user-supplied free text before it is
// persisted or echoed back through the API.
package validation

import (
	"fmt"

	libinjection "github.com/corazawaf/libinjection-go"

	"github.com/hortechia/hortechia-engine/pkg/apperrors"
)

// MaxFreeTextLength caps free-text fields (feedback comments, garden
// notes) so a single row cannot balloon storage or log output.
const MaxFreeTextLength = 2000

// Injection kinds reported by ScreenFreeText.
const (
	KindSQLi = "sqli"
	KindXSS  = "xss"
)

// InjectionError reports a free-text value that tripped libinjection.
// It wraps apperrors.ErrValidation so handlers map it to a 400, while
// callers that audit security events can recover the detection details
// with errors.As.
type InjectionError struct {
	Field       string
	Value       string
	Kind        string
	Fingerprint string // libinjection fingerprint, empty for XSS
}

func (e *InjectionError) Error() string {
	return fmt.Sprintf("%s contains a disallowed pattern: %v", e.Field, apperrors.ErrValidation)
}

func (e *InjectionError) Unwrap() error { return apperrors.ErrValidation }

// ScreenFreeText validates a free-text field value. It rejects text
// that exceeds MaxFreeTextLength or trips libinjection's SQLi/XSS
// detectors. All queries are parameterized, so the injection check is
// about keeping hostile payloads out of stored data that other
// clients will later render.
//
// The returned error wraps apperrors.ErrValidation.
func ScreenFreeText(fieldName, value string) error {
	if len(value) > MaxFreeTextLength {
		return fmt.Errorf("%s exceeds %d characters: %w", fieldName, MaxFreeTextLength, apperrors.ErrValidation)
	}

	if isSQLi, fingerprint := libinjection.IsSQLi(value); isSQLi {
		return &InjectionError{Field: fieldName, Value: value, Kind: KindSQLi, Fingerprint: fingerprint}
	}

	if libinjection.IsXSS(value) {
		return &InjectionError{Field: fieldName, Value: value, Kind: KindXSS}
	}

	return nil
}
