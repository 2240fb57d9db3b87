// Package claims reads the display fields out of a compact signed token.
//
// The signature is never checked here. Whether a token is genuine is the
// server's decision; decoded claims are for display only.
package claims

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/octabyte/bm-social/errs"
	"github.com/octabyte/bm-social/models"
	"github.com/tidwall/gjson"
)

var ErrMalformedToken = errors.New("token is not a compact header.payload.signature value")

var parser = jwt.NewParser()

// Decode parses the token payload into Claims without verifying anything.
func Decode(token string) (models.Claims, error) {
	var out models.Claims
	if strings.Count(token, ".") != 2 {
		return out, &errs.DecodeError{Err: ErrMalformedToken}
	}
	if _, _, err := parser.ParseUnverified(token, &out); err != nil {
		return models.Claims{}, &errs.DecodeError{Err: err}
	}
	return out, nil
}

// Field returns a single payload field as a string, or "" when the token
// cannot be read or the field is absent.
func Field(token, path string) string {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return ""
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return ""
	}
	return gjson.GetBytes(payload, path).String()
}
