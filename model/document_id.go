package model

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// DocumentID is the opaque identifier the ingestion endpoint returns for an
// uploaded document. It holds the raw JSON value (a string or a number) and is
// never interpreted by the client.
//
// The zero value is an absent identifier.
type DocumentID []byte

// ParseDocumentID turns user input into a DocumentID.
// Input that is already a JSON number or a JSON string is kept as is, anything
// else is encoded as a JSON string.
func ParseDocumentID(s string) DocumentID {
	if s == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil && json.Valid([]byte(s)) {
		return DocumentID(s)
	}
	if len(s) >= 2 && s[0] == '"' && json.Valid([]byte(s)) {
		return DocumentID(s)
	}
	bs, _ := json.Marshal(s)
	return DocumentID(bs)
}

// Present reports whether the identifier counts as set.
// absent, null, false, 0 and "" do not.
func (d DocumentID) Present() bool {
	raw := bytes.TrimSpace(d)
	if len(raw) == 0 {
		return false
	}

	switch raw[0] {
	case 'n':
		return string(raw) != "null"
	case 'f':
		return string(raw) != "false"
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return true
		}
		return s != ""
	case '{', '[', 't':
		return true
	}

	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return true
	}
	return f != 0
}

// String returns a human readable form: strings are unquoted, other values are
// returned as their JSON text.
func (d DocumentID) String() string {
	if len(d) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(d, &s); err == nil {
		return s
	}
	return string(d)
}

func (d DocumentID) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("null"), nil
	}
	return d, nil
}

func (d *DocumentID) UnmarshalJSON(data []byte) error {
	*d = append((*d)[0:0], data...)
	return nil
}
