package serviceImp

import (
	"math"
	"strconv"
	"strings"
	"time"

	"evergraze/entities"
	"evergraze/pkg/apperr"
)

// normalize checks fields against the schema. For a full record every column is
// returned (absent optional columns as ""); for a partial one only the given keys.
func normalize(s entities.Schema, fields map[string]string, partial bool) (map[string]string, error) {
	for name := range fields {
		if _, ok := s.Column(name); !ok {
			return nil, apperr.Validation("unknown field %q for %s", name, s.Name)
		}
	}

	out := make(map[string]string, len(s.Columns))
	for _, c := range s.Columns {
		raw, present := fields[c.Name]
		if partial && !present {
			continue
		}
		v := strings.TrimSpace(raw)
		if v == "" {
			if c.Required {
				return nil, apperr.Validation("%s is required", c.Name)
			}
			out[c.Name] = ""
			continue
		}
		if err := checkValue(c, v); err != nil {
			return nil, err
		}
		out[c.Name] = v
	}
	if partial && len(out) == 0 {
		return nil, apperr.Validation("no fields to update")
	}
	return out, nil
}

func checkValue(c entities.Column, v string) error {
	switch c.Type {
	case entities.ColNumber:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return apperr.Validation("%s must be a number, got %q", c.Name, v)
		}
		if f < 0 {
			return apperr.Validation("%s must not be negative", c.Name)
		}
	case entities.ColDate:
		if _, err := time.Parse(entities.DateLayout, v); err != nil {
			return apperr.Validation("%s must be a date (YYYY-MM-DD), got %q", c.Name, v)
		}
	}
	return nil
}
