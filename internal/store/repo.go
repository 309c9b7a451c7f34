package store

import (
	"context"
	"encoding/json"
	"errors"
	"maps"
)

// ErrNotFound is returned by Get for an unknown email.
var ErrNotFound = errors.New("user not found")

// Record is a stored user document. Values are kept as raw JSON so the
// store never needs to understand their shape.
type Record map[string]json.RawMessage

// Repo persists one record per email. Writes are last-write-wins.
type Repo interface {
	// Get returns the record for email, or ErrNotFound.
	Get(ctx context.Context, email string) (Record, error)

	// Put shallow-merges patch into the stored record, replacing top-level
	// keys. An absent record is created from patch alone.
	Put(ctx context.Context, email string, patch Record) error

	// Create returns the existing record for email or stores and returns a
	// fresh one. created reports whether the record is new.
	Create(ctx context.Context, email string) (rec Record, created bool, err error)

	// Emails lists every stored email in ascending order.
	Emails(ctx context.Context) ([]string, error)

	Close() error
}

// NewRecord returns the document stored for a first login. The email is
// the record key and is not repeated inside the document.
func NewRecord() Record {
	return Record{"history": json.RawMessage(`{}`)}
}

// Merge returns a copy of base with every key of patch replaced.
func Merge(base, patch Record) Record {
	out := make(Record, len(base)+len(patch))
	maps.Copy(out, base)
	maps.Copy(out, patch)
	return out
}

func decode(b []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, err
	}
	if r == nil {
		r = Record{}
	}
	return r, nil
}
