package domain

import (
	"bytes"
	"encoding/json"
)

// RawStamp carries a start/end timestamp from the remote service, which
// sends either a bare number of seconds or an "HH:MM:SS[.sss]" string.
// The concrete normalization to "HH:MM:SS" happens in internal/convert;
// RawStamp only preserves which of the two shapes arrived.
type RawStamp struct {
	Seconds   float64
	String    string
	IsString  bool
	IsPresent bool
}

// UnmarshalJSON accepts a JSON number, a JSON string, or null/absent.
func (s *RawStamp) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*s = RawStamp{}
		return nil
	}
	if trimmed[0] == '"' {
		var str string
		if err := json.Unmarshal(trimmed, &str); err != nil {
			return err
		}
		*s = RawStamp{String: str, IsString: true, IsPresent: true}
		return nil
	}
	var f float64
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return err
	}
	*s = RawStamp{Seconds: f, IsPresent: true}
	return nil
}

// MarshalJSON round-trips a RawStamp in whichever shape it was read as.
// Used by the raw-transcript pretty-printer when persisting raw/*.json.
func (s RawStamp) MarshalJSON() ([]byte, error) {
	if !s.IsPresent {
		return []byte("null"), nil
	}
	if s.IsString {
		return json.Marshal(s.String)
	}
	return json.Marshal(s.Seconds)
}
