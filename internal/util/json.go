// Package util holds small helpers shared by the configuration schema.
package util

import (
	"encoding/json"

	"go.arcalot.io/lang"
)

// JSONEncode encodes a value as JSON or panics.
func JSONEncode(value any) string {
	return string(lang.Must2(json.Marshal(value)))
}

// JSONDefault encodes a value as JSON for use as a schema default.
func JSONDefault(value any) *string {
	encoded := JSONEncode(value)
	return &encoded
}
