package model

import (
	"fmt"
	"slices"

	"github.com/astrokit/modelfit/errs"
)

// Parameter holds the state and fitting metadata of a single model parameter.
//
// Fields:
//   - Name: Unique name within the owning model
//   - Value: Current value, updated in place by a completed fit
//   - Default: Value the parameter was constructed with
//   - Fixed: Excludes the parameter from the fitter's search space
//   - Min, Max: Optional inclusive bounds (nil means unbounded on that side)
//
// When Fixed is set, bounds are ignored by the fitter.
type Parameter struct {
	Name    string
	Value   float64
	Default float64
	Fixed   bool
	Min     *float64
	Max     *float64
}

// paramSet is the shared parameter storage embedded by every concrete model.
// It implements the parameter-access half of the Model interface.
type paramSet struct {
	params []Parameter
}

func newParamSet(params ...Parameter) paramSet {
	return paramSet{params: params}
}

// Params returns a copy of the ordered parameter sequence.
func (s *paramSet) Params() []Parameter {
	return slices.Clone(s.params)
}

// Values returns the current parameter values in declaration order.
func (s *paramSet) Values() []float64 {
	vals := make([]float64, len(s.params))
	for i := range s.params {
		vals[i] = s.params[i].Value
	}

	return vals
}

func (s *paramSet) lookup(name string) (*Parameter, error) {
	for i := range s.params {
		if s.params[i].Name == name {
			return &s.params[i], nil
		}
	}

	return nil, fmt.Errorf("%w: no parameter named %q", errs.ErrInvalidParameter, name)
}

// SetValue assigns a new current value to the named parameter.
func (s *paramSet) SetValue(name string, value float64) error {
	p, err := s.lookup(name)
	if err != nil {
		return err
	}
	p.Value = value

	return nil
}

// Fix freezes the named parameter at its current value for fitting.
func (s *paramSet) Fix(name string) error {
	p, err := s.lookup(name)
	if err != nil {
		return err
	}
	p.Fixed = true

	return nil
}

// Free releases a previously fixed parameter back into the search space.
func (s *paramSet) Free(name string) error {
	p, err := s.lookup(name)
	if err != nil {
		return err
	}
	p.Fixed = false

	return nil
}

// SetBounds sets inclusive [min, max] bounds on the named parameter.
// Bound consistency is validated at fit time, not here, so callers may
// set bounds in any order.
func (s *paramSet) SetBounds(name string, minVal, maxVal float64) error {
	p, err := s.lookup(name)
	if err != nil {
		return err
	}
	p.Min = &minVal
	p.Max = &maxVal

	return nil
}

// clone returns a deep copy of the parameter set. Bound pointers are
// duplicated so the copy cannot alias the original's constraints.
func (s *paramSet) clone() paramSet {
	params := slices.Clone(s.params)
	for i := range params {
		if params[i].Min != nil {
			v := *params[i].Min
			params[i].Min = &v
		}
		if params[i].Max != nil {
			v := *params[i].Max
			params[i].Max = &v
		}
	}

	return paramSet{params: params}
}
