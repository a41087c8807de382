package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Param returns the path wildcard value for key.
func Param(r *http.Request, key string) string {
	return r.PathValue(key)
}

// QueryParamFold returns the value of the first query parameter, in request
// order, whose name matches key case-insensitively. Pairs that fail to
// unescape are skipped, as url.ParseQuery does.
func QueryParamFold(r *http.Request, key string) string {
	query := r.URL.RawQuery
	for query != "" {
		var pair string
		pair, query, _ = strings.Cut(query, "&")
		if pair == "" {
			continue
		}

		name, value, _ := strings.Cut(pair, "=")
		name, err := url.QueryUnescape(name)
		if err != nil || !strings.EqualFold(name, key) {
			continue
		}

		value, err = url.QueryUnescape(value)
		if err != nil {
			continue
		}
		return value
	}
	return ""
}

// Decoder represents data that can decode itself.
type Decoder interface {
	Decode(data []byte) error
}

type validator interface {
	Validate() error
}

// ErrEmptyBody is returned by Decode for requests without a body.
var ErrEmptyBody = errors.New("request body is empty")

// Decode reads the body of an HTTP request into v. Values implementing
// Decoder decode themselves, everything else is decoded as JSON. Values
// implementing Validate() error are validated afterwards.
func Decode(r *http.Request, v any) error {
	if r.Body == nil {
		return ErrEmptyBody
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("unable to read request body: %w", err)
	}

	if len(data) == 0 {
		return ErrEmptyBody
	}

	if decoder, ok := v.(Decoder); ok {
		if err := decoder.Decode(data); err != nil {
			return fmt.Errorf("decode: %w", err)
		}
	} else if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("json decode: %w", err)
	}

	if validator, ok := v.(validator); ok {
		if err := validator.Validate(); err != nil {
			return fmt.Errorf("validation: %w", err)
		}
	}

	return nil
}
