package models

import (
	"encoding/json"
	"fmt"
)

// ID normalizes record identifiers to strings. The backend returns numeric
// ids while locally seeded records carry timestamp-derived string ids, so
// comparisons must always happen on the string form.
type ID string

func (id ID) String() string { return string(id) }

// Equals compares two identifiers on their string form, tolerating
// numeric/string mismatches between server and cache.
func (id ID) Equals(other string) bool { return string(id) == other }

func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

func (id *ID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*id = ID(n.String())
	return nil
}
