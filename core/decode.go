package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
)

// MaxJSONBody is the largest request body DecodeJSON accepts.
const MaxJSONBody = 64 << 10

// DecodeJSON decodes a strict JSON request body into v. Failures map to
// HTTPErrors: 415 for a wrong content type, 413 for an oversized body and 400
// for anything that does not decode.
func DecodeJSON(r *http.Request, v any) error {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return ErrUnsupportedMediaType
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxJSONBody+1))
	if err != nil {
		return errors.Join(ErrBadRequest, err)
	}
	if len(body) > MaxJSONBody {
		return ErrRequestTooLarge
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Join(ErrBadRequest, err)
	}
	if dec.More() {
		return ErrBadRequest
	}
	return nil
}
