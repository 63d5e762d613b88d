package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// JSON decodes an application/json body into v. Numbers decode as
// json.Number so integer values survive a round trip. Other content types
// return ErrBinderNotApplicable unless WithAnyContentType is set; trailing
// data after the value is rejected.
func JSON(opts ...Option) func(r *http.Request, v any) error {
	o := newOptions(opts)
	return func(r *http.Request, v any) error {
		if !o.anyContentType {
			switch mediaType(r) {
			case "":
				return fmt.Errorf("%w: expected %s", ErrMissingContentType, mimeJSON)
			case mimeJSON:
			default:
				return ErrBinderNotApplicable
			}
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, o.maxBodySize+1))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
		if int64(len(body)) > o.maxBodySize {
			return fmt.Errorf("%w: limit is %d bytes", ErrRequestTooLarge, o.maxBodySize)
		}

		dec := json.NewDecoder(bytes.NewReader(body))
		dec.UseNumber()
		if err := dec.Decode(v); err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: empty body", ErrInvalidJSON)
			}
			return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
		var extra json.RawMessage
		if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: unexpected data after JSON value", ErrInvalidJSON)
		}
		return nil
	}
}
