// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
)

// validate checks struct tags on request bodies.
var validate = validator.New(validator.WithRequiredStructEnabled())

// ErrUnknownField indicates the body carried a field the endpoint does not accept.
var ErrUnknownField = errors.New("unexpected field in request body")

// DecodeStrict decodes a request body into v, rejecting unknown fields and
// enforcing the struct's validate tags. Strictly-validated endpoints must
// receive exactly the expected fields.
func DecodeStrict(r io.Reader, v any) error {
	if err := decodeBody(r, v); err != nil {
		return err
	}
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// DecodeLoose decodes a request body into v, rejecting unknown fields but
// leaving every field optional. Absent fields keep their zero value.
func DecodeLoose(r io.Reader, v any) error {
	return decodeBody(r, v)
}

func decodeBody(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var unmarshalErr *json.UnmarshalTypeError
		if errors.As(err, &unmarshalErr) {
			return fmt.Errorf("invalid type for field %q: %w", unmarshalErr.Field, err)
		}
		return fmt.Errorf("decode body: %w", err)
	}
	// Reject trailing garbage after the JSON value
	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}
