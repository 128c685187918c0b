package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"time"
)

// Selection is the place a user picked, in the shape the host persists.
type Selection struct {
	// DisplayName is the human readable label of the place.
	DisplayName string

	// Latitude in decimal degrees.
	Latitude string

	// Longitude in decimal degrees.
	Longitude string
}

// NewSelection builds the selection for a picked candidate.
func NewSelection(c Candidate) Selection {
	return Selection{
		DisplayName: c.Label(),
		Latitude:    c.Latitude,
		Longitude:   c.Longitude,
	}
}

// selectionWire is the persisted representation of a Selection.
// Pointer fields let the decoder tell a missing key from an empty value.
type selectionWire struct {
	Name *string `json:"name"`
	Lat  *string `json:"lat"`
	Lng  *string `json:"lng"`
}

// EncodeSelection serialises a selection into a single opaque string.
// DecodeSelection(EncodeSelection(s)) always yields s.
func EncodeSelection(s Selection) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding three strings cannot fail.
	_ = enc.Encode(selectionWire{
		Name: &s.DisplayName,
		Lat:  &s.Latitude,
		Lng:  &s.Longitude,
	})
	return strings.TrimSuffix(buf.String(), "\n")
}

// DecodeSelection parses a value produced by EncodeSelection.
// Any other input fails with a *DecodeError.
func DecodeSelection(value string) (Selection, error) {
	dec := json.NewDecoder(strings.NewReader(value))
	dec.DisallowUnknownFields()

	var w selectionWire
	if err := dec.Decode(&w); err != nil {
		return Selection{}, &DecodeError{Value: value, Reason: "invalid encoding", Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Selection{}, &DecodeError{Value: value, Reason: "trailing data"}
	}

	switch {
	case w.Name == nil:
		return Selection{}, &DecodeError{Value: value, Reason: "missing name"}
	case w.Lat == nil:
		return Selection{}, &DecodeError{Value: value, Reason: "missing lat"}
	case w.Lng == nil:
		return Selection{}, &DecodeError{Value: value, Reason: "missing lng"}
	}

	return Selection{
		DisplayName: *w.Name,
		Latitude:    *w.Lat,
		Longitude:   *w.Lng,
	}, nil
}

// DecodeError reports a selection value that was not produced by EncodeSelection.
// It points at corrupted persisted data rather than a transient condition.
type DecodeError struct {
	// Value is the offending input.
	Value string

	// Reason describes what was wrong with it.
	Reason string

	// Err is the underlying parse error, if any.
	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Err != nil {
		return "decode selection: " + e.Reason + ": " + e.Err.Error()
	}
	return "decode selection: " + e.Reason
}

// Unwrap returns the underlying parse error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is makes every DecodeError match ErrMalformedSelection.
func (e *DecodeError) Is(target error) bool {
	return target == ErrMalformedSelection
}

// SelectionRecord is an encoded selection kept by a selection store.
type SelectionRecord struct {
	// ID uniquely identifies the record.
	ID string

	// Value is the encoded selection exactly as persisted.
	Value string

	// Selection is the decoded form of Value.
	Selection Selection

	// CreatedAt is when the selection was saved.
	CreatedAt time.Time
}

// Pick is the outcome of choosing a candidate in the picker.
type Pick struct {
	// Candidate is the chosen place.
	Candidate Candidate

	// Selection is the persisted shape of the pick.
	Selection Selection

	// Encoded is Selection serialised by EncodeSelection.
	Encoded string
}
