package utils

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ParseJSON decodes the request body into v. Every endpoint that calls this
// requires a payload, so a missing body is an error rather than a zero value.
func ParseJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("missing request body")
	}
	return json.NewDecoder(r.Body).Decode(v)
}
