package model

import (
	"fmt"
	"math"
)

// Const implements the constant model: f(x) = amplitude.
type Const struct {
	paramSet
}

// NewConst creates a constant model with the given amplitude.
func NewConst(amplitude float64) *Const {
	return &Const{newParamSet(
		Parameter{Name: "amplitude", Value: amplitude, Default: amplitude},
	)}
}

// Name returns the model's shape name.
func (c *Const) Name() string { return "const" }

// Eval evaluates f(x) = amplitude at every sample.
func (c *Const) Eval(x []float64) ([]float64, error) {
	if err := checkInput(x); err != nil {
		return nil, err
	}

	amp := c.params[0].Value
	out := make([]float64, len(x))
	for i := range out {
		out[i] = amp
	}

	return out, nil
}

// Derivs returns the analytic derivative [∂f/∂amplitude].
func (c *Const) Derivs(x []float64) ([][]float64, error) {
	if err := checkInput(x); err != nil {
		return nil, err
	}

	dAmp := make([]float64, len(x))
	for i := range dAmp {
		dAmp[i] = 1
	}

	return [][]float64{dAmp}, nil
}

// BasisFuncs returns the linear basis [1].
func (c *Const) BasisFuncs(x []float64) ([][]float64, error) {
	return c.Derivs(x)
}

// Clone returns an independent copy.
func (c *Const) Clone() Model { return &Const{c.paramSet.clone()} }

// Linear implements the straight-line model: f(x) = slope*x + intercept.
type Linear struct {
	paramSet
}

// NewLinear creates a straight-line model with the given slope and intercept.
func NewLinear(slope, intercept float64) *Linear {
	return &Linear{newParamSet(
		Parameter{Name: "slope", Value: slope, Default: slope},
		Parameter{Name: "intercept", Value: intercept, Default: intercept},
	)}
}

// Name returns the model's shape name.
func (l *Linear) Name() string { return "linear" }

// Eval evaluates f(x) = slope*x + intercept at every sample.
func (l *Linear) Eval(x []float64) ([]float64, error) {
	if err := checkInput(x); err != nil {
		return nil, err
	}

	slope, intercept := l.params[0].Value, l.params[1].Value
	out := make([]float64, len(x))
	for i, xi := range x {
		out[i] = slope*xi + intercept
	}

	return out, nil
}

// Derivs returns the analytic derivatives [∂f/∂slope, ∂f/∂intercept] = [x, 1].
func (l *Linear) Derivs(x []float64) ([][]float64, error) {
	if err := checkInput(x); err != nil {
		return nil, err
	}

	dSlope := make([]float64, len(x))
	dIntercept := make([]float64, len(x))
	for i, xi := range x {
		dSlope[i] = xi
		dIntercept[i] = 1
	}

	return [][]float64{dSlope, dIntercept}, nil
}

// BasisFuncs returns the linear basis [x, 1].
func (l *Linear) BasisFuncs(x []float64) ([][]float64, error) {
	return l.Derivs(x)
}

// Clone returns an independent copy.
func (l *Linear) Clone() Model { return &Linear{l.paramSet.clone()} }

// Polynomial implements f(x) = Σ c_i * x^i with parameters c0..cd, where
// d = len(coeffs)-1 is the polynomial degree.
type Polynomial struct {
	paramSet
}

// NewPolynomial creates a polynomial model from its coefficients in
// ascending-power order. At least one coefficient is required; a single
// coefficient degenerates to a constant.
func NewPolynomial(coeffs ...float64) *Polynomial {
	if len(coeffs) == 0 {
		coeffs = []float64{0}
	}

	params := make([]Parameter, len(coeffs))
	for i, c := range coeffs {
		params[i] = Parameter{Name: fmt.Sprintf("c%d", i), Value: c, Default: c}
	}

	return &Polynomial{newParamSet(params...)}
}

// Name returns the model's shape name.
func (p *Polynomial) Name() string { return "polynomial" }

// Degree returns the polynomial degree (number of coefficients minus one).
func (p *Polynomial) Degree() int { return len(p.params) - 1 }

// Eval evaluates the polynomial at every sample using Horner's scheme.
func (p *Polynomial) Eval(x []float64) ([]float64, error) {
	if err := checkInput(x); err != nil {
		return nil, err
	}

	coeffs := p.Values()
	out := make([]float64, len(x))
	for i, xi := range x {
		acc := 0.0
		for j := len(coeffs) - 1; j >= 0; j-- {
			acc = acc*xi + coeffs[j]
		}
		out[i] = acc
	}

	return out, nil
}

// Derivs returns one array per coefficient: ∂f/∂c_i = x^i.
func (p *Polynomial) Derivs(x []float64) ([][]float64, error) {
	if err := checkInput(x); err != nil {
		return nil, err
	}

	derivs := make([][]float64, len(p.params))
	for i := range derivs {
		derivs[i] = make([]float64, len(x))
	}
	for j, xi := range x {
		pow := 1.0
		for i := range derivs {
			derivs[i][j] = pow
			pow *= xi
		}
	}

	return derivs, nil
}

// BasisFuncs returns the monomial basis [1, x, x², ...].
func (p *Polynomial) BasisFuncs(x []float64) ([][]float64, error) {
	return p.Derivs(x)
}

// Clone returns an independent copy.
func (p *Polynomial) Clone() Model { return &Polynomial{p.paramSet.clone()} }

// Gaussian implements the Gaussian line profile:
// f(x) = amplitude * exp(-(x-mean)² / (2*stddev²)).
type Gaussian struct {
	paramSet
}

// NewGaussian creates a Gaussian model with the given amplitude, mean and
// standard deviation.
func NewGaussian(amplitude, mean, stddev float64) *Gaussian {
	return &Gaussian{newParamSet(
		Parameter{Name: "amplitude", Value: amplitude, Default: amplitude},
		Parameter{Name: "mean", Value: mean, Default: mean},
		Parameter{Name: "stddev", Value: stddev, Default: stddev},
	)}
}

// Name returns the model's shape name.
func (g *Gaussian) Name() string { return "gaussian" }

// Eval evaluates the Gaussian at every sample.
func (g *Gaussian) Eval(x []float64) ([]float64, error) {
	if err := checkInput(x); err != nil {
		return nil, err
	}

	amp, mean, stddev := g.params[0].Value, g.params[1].Value, g.params[2].Value
	out := make([]float64, len(x))
	for i, xi := range x {
		d := xi - mean
		out[i] = amp * math.Exp(-d*d/(2*stddev*stddev))
	}

	return out, nil
}

// Derivs returns the analytic derivatives with respect to amplitude, mean
// and stddev, in that order.
func (g *Gaussian) Derivs(x []float64) ([][]float64, error) {
	if err := checkInput(x); err != nil {
		return nil, err
	}

	amp, mean, stddev := g.params[0].Value, g.params[1].Value, g.params[2].Value
	dAmp := make([]float64, len(x))
	dMean := make([]float64, len(x))
	dStddev := make([]float64, len(x))
	for i, xi := range x {
		d := xi - mean
		e := math.Exp(-d * d / (2 * stddev * stddev))
		dAmp[i] = e
		dMean[i] = amp * e * d / (stddev * stddev)
		dStddev[i] = amp * e * d * d / (stddev * stddev * stddev)
	}

	return [][]float64{dAmp, dMean, dStddev}, nil
}

// Clone returns an independent copy.
func (g *Gaussian) Clone() Model { return &Gaussian{g.paramSet.clone()} }

// Lorentz implements the Lorentzian line profile:
// f(x) = amplitude * γ² / ((x-center)² + γ²) with γ = fwhm/2.
type Lorentz struct {
	paramSet
}

// NewLorentz creates a Lorentzian model with the given amplitude, center
// and full width at half maximum.
func NewLorentz(amplitude, center, fwhm float64) *Lorentz {
	return &Lorentz{newParamSet(
		Parameter{Name: "amplitude", Value: amplitude, Default: amplitude},
		Parameter{Name: "center", Value: center, Default: center},
		Parameter{Name: "fwhm", Value: fwhm, Default: fwhm},
	)}
}

// Name returns the model's shape name.
func (l *Lorentz) Name() string { return "lorentz" }

// Eval evaluates the Lorentzian at every sample.
func (l *Lorentz) Eval(x []float64) ([]float64, error) {
	if err := checkInput(x); err != nil {
		return nil, err
	}

	amp, center, fwhm := l.params[0].Value, l.params[1].Value, l.params[2].Value
	gamma := fwhm / 2
	out := make([]float64, len(x))
	for i, xi := range x {
		d := xi - center
		out[i] = amp * gamma * gamma / (d*d + gamma*gamma)
	}

	return out, nil
}

// Derivs returns the analytic derivatives with respect to amplitude,
// center and fwhm, in that order.
func (l *Lorentz) Derivs(x []float64) ([][]float64, error) {
	if err := checkInput(x); err != nil {
		return nil, err
	}

	amp, center, fwhm := l.params[0].Value, l.params[1].Value, l.params[2].Value
	gamma := fwhm / 2
	dAmp := make([]float64, len(x))
	dCenter := make([]float64, len(x))
	dFwhm := make([]float64, len(x))
	for i, xi := range x {
		d := xi - center
		denom := d*d + gamma*gamma
		dAmp[i] = gamma * gamma / denom
		dCenter[i] = 2 * amp * gamma * gamma * d / (denom * denom)
		dFwhm[i] = amp * gamma * d * d / (denom * denom)
	}

	return [][]float64{dAmp, dCenter, dFwhm}, nil
}

// Clone returns an independent copy.
func (l *Lorentz) Clone() Model { return &Lorentz{l.paramSet.clone()} }

// Sine implements f(x) = amplitude * sin(2π*(frequency*x + phase)).
type Sine struct {
	paramSet
}

// NewSine creates a sinusoidal model with the given amplitude, frequency
// and phase (in cycles).
func NewSine(amplitude, frequency, phase float64) *Sine {
	return &Sine{newParamSet(
		Parameter{Name: "amplitude", Value: amplitude, Default: amplitude},
		Parameter{Name: "frequency", Value: frequency, Default: frequency},
		Parameter{Name: "phase", Value: phase, Default: phase},
	)}
}

// Name returns the model's shape name.
func (s *Sine) Name() string { return "sine" }

// Eval evaluates the sinusoid at every sample.
func (s *Sine) Eval(x []float64) ([]float64, error) {
	if err := checkInput(x); err != nil {
		return nil, err
	}

	amp, freq, phase := s.params[0].Value, s.params[1].Value, s.params[2].Value
	out := make([]float64, len(x))
	for i, xi := range x {
		out[i] = amp * math.Sin(2*math.Pi*(freq*xi+phase))
	}

	return out, nil
}

// Derivs returns the analytic derivatives with respect to amplitude,
// frequency and phase, in that order.
func (s *Sine) Derivs(x []float64) ([][]float64, error) {
	if err := checkInput(x); err != nil {
		return nil, err
	}

	amp, freq, phase := s.params[0].Value, s.params[1].Value, s.params[2].Value
	dAmp := make([]float64, len(x))
	dFreq := make([]float64, len(x))
	dPhase := make([]float64, len(x))
	for i, xi := range x {
		arg := 2 * math.Pi * (freq*xi + phase)
		cos := math.Cos(arg)
		dAmp[i] = math.Sin(arg)
		dFreq[i] = amp * cos * 2 * math.Pi * xi
		dPhase[i] = amp * cos * 2 * math.Pi
	}

	return [][]float64{dAmp, dFreq, dPhase}, nil
}

// Clone returns an independent copy.
func (s *Sine) Clone() Model { return &Sine{s.paramSet.clone()} }

// PowerLaw implements f(x) = amplitude * x^(-alpha).
type PowerLaw struct {
	paramSet
}

// NewPowerLaw creates a power-law model with the given amplitude and index.
func NewPowerLaw(amplitude, alpha float64) *PowerLaw {
	return &PowerLaw{newParamSet(
		Parameter{Name: "amplitude", Value: amplitude, Default: amplitude},
		Parameter{Name: "alpha", Value: alpha, Default: alpha},
	)}
}

// Name returns the model's shape name.
func (p *PowerLaw) Name() string { return "powerlaw" }

// Eval evaluates the power law at every sample. Non-positive samples
// produce IEEE Inf/NaN per standard math.Pow semantics.
func (p *PowerLaw) Eval(x []float64) ([]float64, error) {
	if err := checkInput(x); err != nil {
		return nil, err
	}

	amp, alpha := p.params[0].Value, p.params[1].Value
	out := make([]float64, len(x))
	for i, xi := range x {
		out[i] = amp * math.Pow(xi, -alpha)
	}

	return out, nil
}

// Derivs returns the analytic derivatives with respect to amplitude and
// alpha, in that order.
func (p *PowerLaw) Derivs(x []float64) ([][]float64, error) {
	if err := checkInput(x); err != nil {
		return nil, err
	}

	amp, alpha := p.params[0].Value, p.params[1].Value
	dAmp := make([]float64, len(x))
	dAlpha := make([]float64, len(x))
	for i, xi := range x {
		pow := math.Pow(xi, -alpha)
		dAmp[i] = pow
		dAlpha[i] = -amp * pow * math.Log(xi)
	}

	return [][]float64{dAmp, dAlpha}, nil
}

// Clone returns an independent copy.
func (p *PowerLaw) Clone() Model { return &PowerLaw{p.paramSet.clone()} }
