package domain

import (
	"errors"

	"github.com/samber/oops"
)

// ErrSaveNotFound is returned by save stores when the key holds no data.
var ErrSaveNotFound = errors.New("save not found")

// ErrorKind categorizes failures at the persistence boundary.
// It is carried as the oops error code.
type ErrorKind string

const (
	KindInvalidFormat      ErrorKind = "INVALID_FORMAT"
	KindValidationFailed   ErrorKind = "VALIDATION_FAILED"
	KindStorageWriteFailed ErrorKind = "STORAGE_WRITE_FAILED"
	KindStorageReadFailed  ErrorKind = "STORAGE_READ_FAILED"
	KindExportFailed       ErrorKind = "EXPORT_FAILED"
	KindFileReadFailed     ErrorKind = "FILE_READ_FAILED"
)

// Errorf builds a kinded error.
func (k ErrorKind) Errorf(format string, args ...any) error {
	return oops.Code(string(k)).Errorf(format, args...)
}

// Wrap attaches the kind to err. Extra context is given as key/value pairs.
func (k ErrorKind) Wrap(err error, kv ...any) error {
	return oops.Code(string(k)).With(kv...).Wrap(err)
}

// KindOf returns the kind carried by err, or "" when err has none.
func KindOf(err error) ErrorKind {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}
	if code, ok := oopsErr.Code().(string); ok {
		return ErrorKind(code)
	}
	return ""
}

// IsKind reports whether err carries kind k.
func IsKind(err error, k ErrorKind) bool {
	return err != nil && KindOf(err) == k
}
