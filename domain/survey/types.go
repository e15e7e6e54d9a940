package survey

import (
	"strconv"

	"buret/domain/core"
)

// Raw questionnaire columns, exact CSV headers
const (
	ColEdad                  core.ColumnName = "edad"
	ColSexo                  core.ColumnName = "sexo"
	ColUsoRedes              core.ColumnName = "uso_redes"
	ColBurnout               core.ColumnName = "burnout"
	ColFactoresPsicosociales core.ColumnName = "factores_psicosociales"
)

// Derived classification columns
const (
	ColNivelBurnout core.ColumnName = "nivel_burnout"
	ColNivelCopsoq  core.ColumnName = "nivel_copsoq"
)

// RequiredColumns lists the integer columns every input file must carry, in coercion order.
var RequiredColumns = []core.ColumnName{
	ColEdad,
	ColSexo,
	ColUsoRedes,
	ColBurnout,
	ColFactoresPsicosociales,
}

// NumericColumns are the continuous measures used by the descriptive and correlation reports.
var NumericColumns = []core.ColumnName{
	ColEdad,
	ColUsoRedes,
	ColBurnout,
	ColFactoresPsicosociales,
}

// MissingLabel is how a missing value is shown in categorical output.
const MissingLabel = "<NA>"

// NullInt is an integer that may be missing after coercion.
type NullInt struct {
	Value int
	Valid bool
}

// Int returns a present value
func Int(v int) NullInt {
	return NullInt{Value: v, Valid: true}
}

// Missing returns an absent value
func Missing() NullInt {
	return NullInt{}
}

// String renders the value, or MissingLabel when absent
func (n NullInt) String() string {
	if !n.Valid {
		return MissingLabel
	}
	return strconv.Itoa(n.Value)
}

// Level is a derived categorical label that may be missing.
type Level struct {
	Label string
	Valid bool
}

// String renders the label, or MissingLabel when absent
func (l Level) String() string {
	if !l.Valid {
		return MissingLabel
	}
	return l.Label
}

// Record is one participant's row.
type Record struct {
	Edad                  NullInt
	Sexo                  NullInt
	UsoRedes              NullInt
	Burnout               NullInt
	FactoresPsicosociales NullInt

	NivelBurnout Level
	NivelCopsoq  Level
}

// Dataset is an ordered set of records sharing the survey schema.
type Dataset struct {
	Records    []Record
	classified bool
}

// NewDataset wraps records; classification is not applied yet.
func NewDataset(records []Record) *Dataset {
	return &Dataset{Records: records}
}

// Len returns the number of records
func (d *Dataset) Len() int {
	return len(d.Records)
}

// Classified reports whether derived columns have been computed
func (d *Dataset) Classified() bool {
	return d.classified
}

// Classify fills nivel_burnout and nivel_copsoq. Derived columns are computed once;
// later calls leave them untouched.
func (d *Dataset) Classify() {
	if d.classified {
		return
	}
	for i := range d.Records {
		r := &d.Records[i]
		r.NivelBurnout = BurnoutLevel(r.Burnout)
		r.NivelCopsoq = CopsoqLevel(r.FactoresPsicosociales)
	}
	d.classified = true
}

// Column returns a copy of an integer column by name.
func (d *Dataset) Column(name core.ColumnName) ([]NullInt, error) {
	get, ok := intAccessors[name]
	if !ok {
		return nil, core.ErrUnknownColumn
	}
	out := make([]NullInt, len(d.Records))
	for i := range d.Records {
		out[i] = get(&d.Records[i])
	}
	return out, nil
}

// Levels returns a copy of a derived categorical column by name.
func (d *Dataset) Levels(name core.ColumnName) ([]Level, error) {
	var get func(*Record) Level
	switch name {
	case ColNivelBurnout:
		get = func(r *Record) Level { return r.NivelBurnout }
	case ColNivelCopsoq:
		get = func(r *Record) Level { return r.NivelCopsoq }
	default:
		return nil, core.ErrUnknownColumn
	}
	out := make([]Level, len(d.Records))
	for i := range d.Records {
		out[i] = get(&d.Records[i])
	}
	return out, nil
}

// SetInt assigns an integer column on a record by name.
func (r *Record) SetInt(name core.ColumnName, v NullInt) error {
	switch name {
	case ColEdad:
		r.Edad = v
	case ColSexo:
		r.Sexo = v
	case ColUsoRedes:
		r.UsoRedes = v
	case ColBurnout:
		r.Burnout = v
	case ColFactoresPsicosociales:
		r.FactoresPsicosociales = v
	default:
		return core.ErrUnknownColumn
	}
	return nil
}

var intAccessors = map[core.ColumnName]func(*Record) NullInt{
	ColEdad:                  func(r *Record) NullInt { return r.Edad },
	ColSexo:                  func(r *Record) NullInt { return r.Sexo },
	ColUsoRedes:              func(r *Record) NullInt { return r.UsoRedes },
	ColBurnout:               func(r *Record) NullInt { return r.Burnout },
	ColFactoresPsicosociales: func(r *Record) NullInt { return r.FactoresPsicosociales },
}

// Floats extracts the present values of a column as float64, dropping missing ones.
func Floats(values []NullInt) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if v.Valid {
			out = append(out, float64(v.Value))
		}
	}
	return out
}
