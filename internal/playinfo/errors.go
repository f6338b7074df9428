package playinfo

import (
	"encoding/json"
	"errors"
	"fmt"
)

var errMissingField = errors.New("required field missing")

// DecodeError reports metadata JSON that failed strict decoding. Field holds
// the dotted path of the offending member when it is known.
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("decode metadata: field %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("decode metadata: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func missingField(path string) error {
	return &DecodeError{Field: path, Err: errMissingField}
}

func wrapJSONError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &DecodeError{Field: typeErr.Field, Err: err}
	}
	return &DecodeError{Err: err}
}
