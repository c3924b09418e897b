package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/ivp/internal/equation"
	"github.com/san-kum/ivp/internal/param"
	"github.com/san-kum/ivp/internal/problem"
)

// Store persists problem manifests for external solvers: metadata.json
// describes the equation and timing, ics.csv holds one row of initial
// conditions per sample.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type Manifest struct {
	ID           string             `json:"id"`
	Model        string             `json:"model"`
	Kind         string             `json:"kind"`
	Timestamp    time.Time          `json:"timestamp"`
	Span         [2]float64         `json:"tspan"`
	Step         float64            `json:"tstep"`
	Integrator   string             `json:"integrator,omitempty"`
	NSamples     int                `json:"nsamples"`
	NConstraints int                `json:"nconstraints"`
	NNoise       int                `json:"nnoise,omitempty"`
	Roles        []string           `json:"roles"`
	Keys         []string           `json:"keys"`
	Invariants   []string           `json:"invariants,omitempty"`
	Periodicity  []float64          `json:"periodicity,omitempty"`
	Parameters   []map[string]any   `json:"parameters,omitempty"`
	Metrics      map[string]float64 `json:"metrics,omitempty"`
}

// NewManifest describes ens without writing it.
func NewManifest(model string, ens *problem.Ensemble[float64]) *Manifest {
	equ := ens.Equation()
	m := &Manifest{
		Model:        model,
		Kind:         equ.Kind().String(),
		Span:         ens.Span(),
		Step:         ens.Step(),
		NSamples:     ens.NSamples(),
		NConstraints: ens.NConstraints(),
		Roles:        equation.RoleNames[float64](equ),
		Keys:         ens.InitialCondition(0).Keys(),
	}
	if s, ok := equ.(equation.Stochastic); ok {
		m.NNoise = s.NNoise()
	}
	if inv, ok := equ.Invariants().(equation.Invariants); ok {
		m.Invariants = inv.Names()
	}
	if p, ok := equ.Periodicity().(equation.Periodicity[float64]); ok {
		m.Periodicity = append([]float64(nil), p...)
	}
	for i := range ens.NSamples() {
		if rec, ok := ens.Parameter(i).(param.Record); ok {
			m.Parameters = append(m.Parameters, rec)
		}
	}
	return m
}

func (s *Store) Save(m *Manifest, ens *problem.Ensemble[float64]) (string, error) {
	m.Timestamp = time.Now()
	m.ID = fmt.Sprintf("%s_%s_%d", m.Model, strings.ToLower(m.Kind), m.Timestamp.UnixNano())
	runDir := filepath.Join(s.baseDir, m.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "ics.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)

	first := ens.InitialCondition(0)
	header := []string{"sample"}
	for _, k := range first.Keys() {
		for i := range first[k] {
			header = append(header, column(k, i))
		}
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for n := range ens.NSamples() {
		ic := ens.InitialCondition(n)
		row := []string{strconv.Itoa(n)}
		for _, k := range ic.Keys() {
			for _, val := range ic[k] {
				row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
			}
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return m.ID, nil
}

func column(key string, i int) string {
	return fmt.Sprintf("%s[%d]", key, i)
}

func parseColumn(name string) (string, int, error) {
	open := strings.LastIndexByte(name, '[')
	if open <= 0 || !strings.HasSuffix(name, "]") {
		return "", 0, fmt.Errorf("bad column %q", name)
	}
	i, err := strconv.Atoi(name[open+1 : len(name)-1])
	if err != nil {
		return "", 0, fmt.Errorf("bad column %q: %w", name, err)
	}
	return name[:open], i, nil
}

func (s *Store) List() ([]Manifest, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Manifest{}, nil
		}
		return nil, err
	}

	runs := make([]Manifest, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		m, err := s.Load(entry.Name())
		if err != nil {
			continue
		}

		runs = append(runs, *m)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(id string) (*Manifest, error) {
	metaPath := filepath.Join(s.baseDir, id, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	return &m, nil
}

// LoadConditions reads back the initial conditions of every sample.
func (s *Store) LoadConditions(id string) ([]equation.InitialConditions[float64], error) {
	csvPath := filepath.Join(s.baseDir, id, "ics.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []equation.InitialConditions[float64]{}, nil
	}

	type slot struct {
		key   string
		index int
	}
	header := records[0]
	slots := make([]slot, len(header)-1)
	for j, name := range header[1:] {
		key, i, err := parseColumn(name)
		if err != nil {
			return nil, err
		}
		slots[j] = slot{key, i}
	}

	out := make([]equation.InitialConditions[float64], 0, len(records)-1)
	for _, record := range records[1:] {
		ic := make(equation.InitialConditions[float64])
		for j, field := range record[1:] {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("sample %s, %s: %w", record[0], header[j+1], err)
			}
			sl := slots[j]
			if len(ic[sl.key]) <= sl.index {
				grown := make([]float64, sl.index+1)
				copy(grown, ic[sl.key])
				ic[sl.key] = grown
			}
			ic[sl.key][sl.index] = val
		}
		out = append(out, ic)
	}

	return out, nil
}
