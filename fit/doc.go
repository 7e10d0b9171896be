// Package fit provides fitters that optimize a model's free parameters
// against observed data by weighted least squares.
//
// Two fitters are available:
//
//   - LevMar: Levenberg–Marquardt nonlinear optimization for arbitrary
//     models, preferring a model's analytic derivatives when present and
//     falling back to numeric differentiation otherwise.
//   - LinearLSQ: exact weighted linear least squares via QR factorization
//     for models that are linear in their parameters (Const, Linear,
//     Polynomial, and additive compounds of those).
//
// Both fitters honor the model's constraint metadata: fixed parameters are
// excluded from the free-variable vector and keep their assigned value for
// every evaluation, and LevMar clips bounded parameters to [min, max]
// during its search. Inconsistent bounds (min > max) fail fast with
// ErrInvalidConstraint at fit time.
//
// On success the model's parameter values are updated in place to the
// solution and the returned Result carries the free-parameter covariance
// matrix plus the reduced chi-square statistic when per-point uncertainties
// were supplied. A model instance must not be fitted concurrently.
//
// # Basic Usage
//
//	g := model.NewGaussian(1, 6563, 30)
//	fitter, _ := fit.NewLevMar()
//	res, err := fitter.Fit(g, wavelengths, fluxes, fit.WithUncertainties(sigmas))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.ReducedChiSq)
package fit
