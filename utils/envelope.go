package utils

import (
	"strings"

	"github.com/tidwall/gjson"
)

// ErrorMessagePath is where the backend puts the human readable message of
// a rejected request: {"message": "..."}.
const ErrorMessagePath = "message"

// ErrorMessage extracts the message of an error envelope. It returns an
// empty string when the body is not JSON or carries no message.
func ErrorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	return strings.TrimSpace(gjson.GetBytes(body, ErrorMessagePath).String())
}

// StringField returns the value at path as a string. Numbers are rendered
// in their JSON form, so numeric ids come back as "42".
func StringField(body []byte, path string) string {
	result := gjson.GetBytes(body, path)
	if !result.Exists() || result.Type == gjson.Null {
		return ""
	}
	return result.String()
}
