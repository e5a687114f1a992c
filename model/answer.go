package model

import (
	"bytes"
	"encoding/json"
)

// Answer is the raw answer value returned by the question-answering endpoint.
type Answer json.RawMessage

// Text returns the answer the way it is displayed.
// JSON strings are returned verbatim, null or a missing answer yields "",
// any other value is returned as its JSON text.
func (a Answer) Text() string {
	raw := bytes.TrimSpace(a)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	*a = append((*a)[0:0], data...)
	return nil
}
