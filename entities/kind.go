package entities

import "strings"

// Kind is one of the tracked record kinds. The zero value is not a valid kind.
type Kind uint8

const (
	KindLivestock Kind = iota + 1
	KindWeight
	KindVaccination
)

// Kinds lists every tracked kind in migration and export order.
var Kinds = []Kind{KindLivestock, KindWeight, KindVaccination}

type ColumnType int

const (
	ColText ColumnType = iota
	ColNumber
	ColDate
)

const DateLayout = "2006-01-02"

type Column struct {
	Name     string
	Label    string
	Type     ColumnType
	Required bool
}

// Schema describes the table backing a kind. Table and column names only ever
// come from these descriptors, never from request input.
type Schema struct {
	Kind    Kind
	Name    string // path name: livestock|weight|vaccination
	Table   string
	Sheet   string
	Columns []Column
}

var schemas = map[Kind]Schema{
	KindLivestock: {
		Kind:  KindLivestock,
		Name:  "livestock",
		Table: "livestock",
		Sheet: "Livestock",
		Columns: []Column{
			{Name: "animal_id", Label: "Animal ID", Type: ColText, Required: true},
			{Name: "name", Label: "Name", Type: ColText},
			{Name: "breed", Label: "Breed", Type: ColText},
			{Name: "age", Label: "Age", Type: ColNumber},
			{Name: "purchase_date", Label: "Purchase Date", Type: ColDate},
			{Name: "source", Label: "Source", Type: ColText},
		},
	},
	KindWeight: {
		Kind:  KindWeight,
		Name:  "weight",
		Table: "weight_tracking",
		Sheet: "WeightTracking",
		Columns: []Column{
			{Name: "animal_id", Label: "Animal ID", Type: ColText, Required: true},
			{Name: "date", Label: "Date", Type: ColDate, Required: true},
			{Name: "weight", Label: "Weight", Type: ColNumber, Required: true},
			{Name: "notes", Label: "Notes", Type: ColText},
		},
	},
	KindVaccination: {
		Kind:  KindVaccination,
		Name:  "vaccination",
		Table: "vaccinations",
		Sheet: "Vaccinations",
		Columns: []Column{
			{Name: "animal_id", Label: "Animal ID", Type: ColText, Required: true},
			{Name: "vaccine_name", Label: "Vaccine", Type: ColText, Required: true},
			{Name: "date_given", Label: "Date Given", Type: ColDate, Required: true},
			{Name: "next_due", Label: "Next Due", Type: ColDate},
			{Name: "vet_name", Label: "Vet", Type: ColText},
		},
	},
}

// SchemaOf returns the descriptor of k; ok is false for anything outside the enumeration.
func SchemaOf(k Kind) (Schema, bool) {
	s, ok := schemas[k]
	return s, ok
}

// ParseKind resolves a caller supplied kind name. Both the short path name and
// the table name are accepted.
func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds {
		sc := schemas[k]
		if s == sc.Name || s == sc.Table {
			return k, true
		}
	}
	return 0, false
}

func (k Kind) String() string {
	if s, ok := schemas[k]; ok {
		return s.Name
	}
	return "unknown"
}

// ColumnNames returns the ordered data columns, without id.
func (s Schema) ColumnNames() []string {
	out := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = c.Name
	}
	return out
}

func (s Schema) Column(name string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}
