package param

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cast"
)

var (
	ErrMissing    = errors.New("param: missing parameter")
	ErrInvalid    = errors.New("param: invalid parameter value")
	ErrUnexpected = errors.New("param: unexpected parameters")
)

type Kind int

const (
	KindFloat Kind = iota
	KindInt
	KindBool
	KindString
	KindVector
)

var kindNames = map[Kind]string{
	KindFloat:  "float",
	KindInt:    "int",
	KindBool:   "bool",
	KindString: "string",
	KindVector: "vector",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(name, s) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown parameter kind: %s", s)
}

// Declaration is the parameter channel of an equation: a Schema or NullParameters.
type Declaration interface {
	declaration()
}

// Parameters is the parameter channel of a problem: a Record or NullParameters.
type Parameters interface {
	parameters()
}

// NullParameters marks the absence of parameters on either side.
type NullParameters struct{}

func (NullParameters) declaration() {}
func (NullParameters) parameters()  {}

type Schema map[string]Kind

func (Schema) declaration() {}

// Names returns the declared parameter names in sorted order.
func (s Schema) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type Record map[string]any

func (Record) parameters() {}

func (r Record) Float(name string) float64 { return cast.ToFloat64(r[name]) }
func (r Record) Int(name string) int       { return cast.ToInt(r[name]) }
func (r Record) Bool(name string) bool     { return cast.ToBool(r[name]) }
func (r Record) Text(name string) string   { return cast.ToString(r[name]) }

// Vector returns the named parameter as a float64 slice, or nil if it
// cannot be read as one.
func (r Record) Vector(name string) []float64 {
	v, err := toVector(r[name])
	if err != nil {
		return nil
	}
	return v
}

func (r Record) Clone() Record {
	c := make(Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// Names returns the record's keys in sorted order.
func (r Record) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Check reports whether params satisfies decl. A schema needs a record
// holding every declared name with a value coercible to its kind; extra
// record entries are allowed. NullParameters accepts only NullParameters or
// an empty record.
func Check(decl Declaration, params Parameters) error {
	switch d := decl.(type) {
	case NullParameters:
		switch p := params.(type) {
		case NullParameters:
			return nil
		case Record:
			if len(p) == 0 {
				return nil
			}
			return fmt.Errorf("%w: equation declares none, got %v", ErrUnexpected, p.Names())
		}
		return fmt.Errorf("%w: %T", ErrUnexpected, params)
	case Schema:
		rec, ok := params.(Record)
		if !ok {
			if len(d) == 0 {
				return nil
			}
			return fmt.Errorf("%w: equation declares %v, got %T", ErrMissing, d.Names(), params)
		}
		for _, name := range d.Names() {
			v, ok := rec[name]
			if !ok {
				return fmt.Errorf("%w: %s", ErrMissing, name)
			}
			if _, err := coerce(d[name], v); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalid, name, err)
			}
		}
		return nil
	}
	return fmt.Errorf("%w: unknown declaration %T", ErrInvalid, decl)
}

// Coerce converts raw values (for example decoded from YAML) into a record
// whose values have the concrete Go types of their declared kinds. Names not
// in the schema are carried over unchanged.
func Coerce(schema Schema, raw map[string]any) (Record, error) {
	rec := make(Record, len(raw))
	for k, v := range raw {
		rec[k] = v
	}
	for _, name := range schema.Names() {
		v, ok := raw[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissing, name)
		}
		c, err := coerce(schema[name], v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, name, err)
		}
		rec[name] = c
	}
	return rec, nil
}

func coerce(kind Kind, v any) (any, error) {
	switch kind {
	case KindFloat:
		return cast.ToFloat64E(v)
	case KindInt:
		return cast.ToIntE(v)
	case KindBool:
		return cast.ToBoolE(v)
	case KindString:
		return cast.ToStringE(v)
	case KindVector:
		return toVector(v)
	}
	return nil, fmt.Errorf("unknown kind %v", kind)
}

func toVector(v any) ([]float64, error) {
	switch s := v.(type) {
	case []float64:
		return s, nil
	case []float32:
		out := make([]float64, len(s))
		for i, x := range s {
			out[i] = float64(x)
		}
		return out, nil
	case []int:
		out := make([]float64, len(s))
		for i, x := range s {
			out[i] = float64(x)
		}
		return out, nil
	case []any:
		out := make([]float64, len(s))
		for i, x := range s {
			f, err := cast.ToFloat64E(x)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out[i] = f
		}
		return out, nil
	}
	return nil, fmt.Errorf("unable to cast %#v of type %T to []float64", v, v)
}
