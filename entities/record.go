package entities

import (
	"encoding/json"
	"strconv"
)

// Record is one row of any tracked kind. Values holds every data column of the
// kind's schema; columns stored as NULL come back as "".
type Record struct {
	ID     uint
	Kind   Kind
	Values map[string]string
}

func (r Record) Get(col string) string { return r.Values[col] }

func (r Record) AnimalID() string { return r.Values["animal_id"] }

// Row returns id followed by the data columns in schema order.
func (r Record) Row() []string {
	s, _ := SchemaOf(r.Kind)
	out := make([]string, 0, len(s.Columns)+1)
	out = append(out, strconv.FormatUint(uint64(r.ID), 10))
	for _, c := range s.Columns {
		out = append(out, r.Values[c.Name])
	}
	return out
}

// MarshalJSON flattens the record into {"id":..,"kind":..,<column>:..}.
func (r Record) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(r.Values)+2)
	for k, v := range r.Values {
		m[k] = v
	}
	m["id"] = r.ID
	m["kind"] = r.Kind.String()
	return json.Marshal(m)
}
