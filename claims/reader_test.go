package claims

import (
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/octabyte/bm-social/errs"
	"github.com/octabyte/bm-social/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("some-server-secret"))
	require.NoError(t, err)
	return token
}

func TestDecode(t *testing.T) {
	token := signedToken(t, models.Claims{
		FirstName:        "Ana",
		LastName:         "Silva",
		Email:            "ana@example.com",
		Picture:          "https://cdn.example.com/ana.png",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "42"},
	})

	decoded, err := Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "Ana", decoded.FirstName)
	assert.Equal(t, "Silva", decoded.LastName)
	assert.Equal(t, "ana@example.com", decoded.Email)
	assert.Equal(t, "https://cdn.example.com/ana.png", decoded.Picture)
	assert.Equal(t, "42", decoded.Subject)
}

func TestDecodeIgnoresSignatureAndExpiry(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"firstName": "Ana", "exp": 1})

	// Swap the signature for garbage: decoding must still succeed.
	tampered := token[:len(token)-4] + "AAAA"

	decoded, err := Decode(tampered)
	require.NoError(t, err)
	assert.Equal(t, "Ana", decoded.FirstName)
}

func TestDecodeOptionalFields(t *testing.T) {
	decoded, err := Decode(signedToken(t, jwt.MapClaims{"sub": "7"}))
	require.NoError(t, err)
	assert.Empty(t, decoded.FirstName)
	assert.Empty(t, decoded.Email)
}

func TestDecodeMalformed(t *testing.T) {
	testCases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"opaque string", "not-a-token"},
		{"two segments", "aaa.bbb"},
		{"four segments", "a.b.c.d"},
		{"bad base64 payload", "eyJhbGciOiJIUzI1NiJ9.%%%.sig"},
		{"payload not json", "eyJhbGciOiJIUzI1NiJ9.bm90IGpzb24.sig"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.token)
			require.Error(t, err)

			var decodeErr *errs.DecodeError
			assert.True(t, errors.As(err, &decodeErr), "expected DecodeError, got %T", err)
		})
	}
}

func TestField(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"given_name": "Ana", "userId": 42})

	assert.Equal(t, "Ana", Field(token, "given_name"))
	assert.Equal(t, "42", Field(token, "userId"))
	assert.Equal(t, "", Field(token, "missing"))
	assert.Equal(t, "", Field("garbage", "given_name"))
}
