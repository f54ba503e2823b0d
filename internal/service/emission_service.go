package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

// ErrUnknownActivityType signals an activity type without an emission
// factor. The caller is expected to fall back to manual emission entry;
// this is distinct from a legitimate zero emission.
var ErrUnknownActivityType = errors.New("no emission factor for activity type")

// Built-in emission factors, kg CO2-equivalent per unit of quantity.
// Sources: Our World in Data for transport; global averages for electricity.
var builtinFactors = map[string]float64{
	"Driving":              0.170, // per km, petrol car average
	"Flying Domestic":      0.246, // per km
	"Flying International": 0.154, // per km, short-haul
	"Bus":                  0.089, // per km
	"Train":                0.035, // per km, national rail
	"Electricity":          0.475, // per kWh, global average
}

// EmissionService converts activity quantities to estimated emissions
// using an immutable factor table fixed at construction.
type EmissionService struct {
	factors map[string]float64
}

// NewEmissionService returns a calculator over the built-in factor table.
func NewEmissionService() *EmissionService {
	factors := make(map[string]float64, len(builtinFactors))
	for name, factor := range builtinFactors {
		factors[name] = factor
	}
	return &EmissionService{factors: factors}
}

// NewEmissionServiceFromFile extends the built-in table with factors from
// a JSON file of {"type": factor} pairs. Built-in entries win on conflict
// so configuration can only add types, never redefine the published ones.
func NewEmissionServiceFromFile(path string) (*EmissionService, error) {
	s := NewEmissionService()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read factors file: %w", err)
	}

	extra := make(map[string]float64)
	if err := json.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("parse factors file: %w", err)
	}

	for name, factor := range extra {
		if name == "" || factor < 0 {
			return nil, fmt.Errorf("invalid factor %q: %v", name, factor)
		}
		if _, builtin := s.factors[name]; builtin {
			continue
		}
		s.factors[name] = factor
	}

	return s, nil
}

// Calculate returns factor × quantity for a known activity type, or
// ErrUnknownActivityType otherwise. Deterministic, no side effects.
func (s *EmissionService) Calculate(activityType string, quantity float64) (float64, error) {
	factor, ok := s.factors[activityType]
	if !ok {
		return 0, ErrUnknownActivityType
	}
	return factor * quantity, nil
}

// KnownTypes lists the activity types with factors, sorted for display.
func (s *EmissionService) KnownTypes() []string {
	types := make([]string, 0, len(s.factors))
	for name := range s.factors {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}
