// Package uuid wraps google/uuid for ids sent by clients in URIs and request bodies.
package uuid

import (
	"bytes"

	google_uuid "github.com/google/uuid"
)

type UUID struct {
	google_uuid.UUID
}

var Nil UUID

// UnmarshalParam parses a gift id from a URI parameter. An empty
// parameter is the Nil UUID.
func (u *UUID) UnmarshalParam(p string) error {
	if p == "" {
		*u = Nil
		return nil
	}

	parsed, e := google_uuid.Parse(p)
	if e != nil {
		return e
	}

	*u = UUID{parsed}
	return nil
}

// UnmarshalJSON parses a gift id from a request body. null and "" are
// the Nil UUID so that handlers can report a missing id.
func (u *UUID) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) || bytes.Equal(b, []byte(`""`)) {
		*u = Nil
		return nil
	}

	return u.UUID.UnmarshalText(bytes.Trim(b, `"`))
}
