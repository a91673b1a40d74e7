// Package request decodes the inputs of an HTTP request: JSON bodies,
// the {id} path segment and limit/offset query parameters. Every failure
// is returned as validation.Errors so handlers can answer 422 uniformly.
package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/aanand-mishra/campus-api/internal/types"
	"github.com/aanand-mishra/campus-api/internal/validation"
)

const (
	// MaxBodyBytes caps how much of a request body is read.
	MaxBodyBytes = 1 << 20

	DefaultLimit = 100
	MaxLimit     = 1000
)

func invalid(field, msg string) error {
	return validation.Errors{{Field: field, Message: msg}}
}

func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, invalid("body", "could not be read")
	}
	if len(body) > MaxBodyBytes {
		return nil, invalid("body", fmt.Sprintf("must not exceed %d bytes", MaxBodyBytes))
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, invalid("body", "request body is empty")
	}
	return body, nil
}

// decodeErr turns an encoding/json error into a field error.
func decodeErr(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			return invalid("body", "must be a JSON object")
		}
		return invalid(field, fmt.Sprintf("must be of type %s", typeErr.Type))
	}
	return invalid("body", "malformed JSON: "+err.Error())
}

// DecodeJSON reads the request body into dst.
func DecodeJSON(r *http.Request, dst any) error {
	body, err := readBody(r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return decodeErr(err)
	}
	return nil
}

// DecodePatch reads a partial body into dst and records in fields which
// keys were supplied and which of them were null. Keys must match the
// JSON names of dst exactly; any other key, including a case variant
// such as "Name", is ignored.
func DecodePatch(r *http.Request, dst any, fields *types.Fields) error {
	body, err := readBody(r)
	if err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return decodeErr(err)
	}

	known := make(map[string]json.RawMessage, len(raw))
	for _, key := range validation.JSONNames(dst) {
		val, ok := raw[key]
		if !ok {
			continue
		}
		known[key] = val
		fields.Supply(key, bytes.Equal(bytes.TrimSpace(val), []byte("null")))
	}

	// Only the exact keys reach dst, so encoding/json's case-insensitive
	// matching cannot pick up a value that fields did not record.
	filtered, err := json.Marshal(known)
	if err != nil {
		return invalid("body", "malformed JSON: "+err.Error())
	}
	if err := json.Unmarshal(filtered, dst); err != nil {
		return decodeErr(err)
	}
	return nil
}

// PathID parses the {id} path segment.
func PathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, invalid("id", "must be an integer")
	}
	return id, nil
}

// Page parses the limit and offset query parameters.
// limit defaults to DefaultLimit and must be within 1..MaxLimit;
// offset defaults to 0 and must not be negative.
func Page(r *http.Request) (limit, offset int, err error) {
	var errs validation.Errors
	q := r.URL.Query()

	limit = DefaultLimit
	if s := q.Get("limit"); s != "" {
		n, convErr := strconv.Atoi(s)
		switch {
		case convErr != nil:
			errs = append(errs, validation.FieldError{Field: "limit", Message: "must be an integer"})
		case n < 1 || n > MaxLimit:
			errs = append(errs, validation.FieldError{Field: "limit", Message: fmt.Sprintf("must be between 1 and %d", MaxLimit)})
		default:
			limit = n
		}
	}

	if s := q.Get("offset"); s != "" {
		n, convErr := strconv.Atoi(s)
		switch {
		case convErr != nil:
			errs = append(errs, validation.FieldError{Field: "offset", Message: "must be an integer"})
		case n < 0:
			errs = append(errs, validation.FieldError{Field: "offset", Message: "must not be negative"})
		default:
			offset = n
		}
	}

	if len(errs) > 0 {
		return 0, 0, errs
	}
	return limit, offset, nil
}
