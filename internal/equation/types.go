package equation

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Float is the element type of state vectors.
type Float interface {
	~float32 | ~float64
}

type Kind int

const (
	KindODE Kind = iota
	KindPODE
	KindHODE
	KindIODE
	KindLODE
	KindSODE
	KindDAE
	KindPDAE
	KindHDAE
	KindIDAE
	KindLDAE
	KindSDE
	KindPSDE
	KindSPSDE
)

var kindNames = []string{"ODE", "PODE", "HODE", "IODE", "LODE", "SODE", "DAE", "PDAE", "HDAE", "IDAE", "LDAE", "SDE", "PSDE", "SPSDE"}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Kinds lists every equation variant.
func Kinds() []Kind {
	kinds := make([]Kind, len(kindNames))
	for i := range kindNames {
		kinds[i] = Kind(i)
	}
	return kinds
}

func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if strings.EqualFold(name, s) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown equation kind: %s", s)
}

// Initial-condition keys.
const (
	KeyQ      = "q"
	KeyP      = "p"
	KeyV      = "v"
	KeyLambda = "λ"
	KeyMu     = "μ"
)

// multiplier keys hold algebraic variables whose length is independent of q.
var multiplierKeys = map[string]bool{KeyLambda: true, KeyMu: true}

// InitialConditions maps a role name (q, p, λ, ...) to its state vector.
type InitialConditions[T Float] map[string][]T

// Keys returns the record's keys in sorted order.
func (ics InitialConditions[T]) Keys() []string {
	keys := make([]string, 0, len(ics))
	for k := range ics {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy.
func (ics InitialConditions[T]) Clone() InitialConditions[T] {
	c := make(InitialConditions[T], len(ics))
	for k, x := range ics {
		c[k] = append([]T(nil), x...)
	}
	return c
}

// SameStructure reports whether both records hold the same keys with state
// vectors of the same lengths.
func (ics InitialConditions[T]) SameStructure(other InitialConditions[T]) bool {
	if len(ics) != len(other) {
		return false
	}
	for k, x := range ics {
		y, ok := other[k]
		if !ok || len(x) != len(y) {
			return false
		}
	}
	return true
}

// Matrix is a dense row-major matrix, the output buffer of diffusion roles.
type Matrix[T Float] struct {
	rows, cols int
	data       []T
}

// NewMatrix returns a zeroed rows×cols matrix.
func NewMatrix[T Float](rows, cols int) *Matrix[T] {
	return &Matrix[T]{rows: rows, cols: cols, data: make([]T, rows*cols)}
}

// Dims returns the number of rows and columns.
func (m *Matrix[T]) Dims() (int, int) { return m.rows, m.cols }

// At returns the element at row i, column j.
func (m *Matrix[T]) At(i, j int) T { return m.data[i*m.cols+j] }

// Set stores v at row i, column j.
func (m *Matrix[T]) Set(i, j int, v T) { m.data[i*m.cols+j] = v }

// Raw returns the backing row-major slice.
func (m *Matrix[T]) Raw() []T { return m.data }

// Zero clears every element in place.
func (m *Matrix[T]) Zero() {
	for i := range m.data {
		m.data[i] = 0
	}
}

// Dense copies m into a gonum matrix.
func (m *Matrix[T]) Dense() *mat.Dense {
	if len(m.data) == 0 {
		return &mat.Dense{}
	}
	data := make([]float64, len(m.data))
	for i, v := range m.data {
		data[i] = float64(v)
	}
	return mat.NewDense(m.rows, m.cols, data)
}
