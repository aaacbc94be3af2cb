// Package physics implements the closed-form impact and deflection models
// behind the asteroid impact assessment service.
//
// # Model Chain
//
// An impact assessment runs a fixed chain of published scaling laws:
//
//	composition → atmospheric entry → kinetic energy → crater scaling
//	            → damage zones → population & casualties
//
// Every stage is a pure function of its inputs. There is no shared state,
// no I/O, and no retry anywhere in this package; any number of assessments
// may run concurrently without coordination.
//
// # Composition
//
// Bulk density is inferred from the absolute magnitude H using the
// Bus-DeMeo taxonomy and the density measurements in Carry (2012):
// faint objects (H > 22) are assumed carbonaceous at 1410 kg/m³, brighter
// ones silicaceous at 2700 kg/m³. Objects under 100 m get a 20% porosity
// correction (rubble piles). An explicit density override bypasses the
// taxonomy entirely.
//
// # Atmospheric Entry
//
// Velocity retention is a three-bin step function of diameter (70% below
// 50 m, 85% to 200 m, 95% above). The discontinuities at the 50 m and
// 200 m bin edges are a known limitation of the model, not a bug; a
// continuous drag integration is deliberately out of scope.
//
// # Crater Scaling
//
// Transient crater diameter follows the Collins et al. (2005) scaling law
// with K1 = 1.25, a 2500 kg/m³ crustal target, and 9.81 m/s² gravity.
// Fractional exponents are applied to absolute values so that edge-case
// negative inputs can never produce NaN; regression tests depend on this
// exact formulation.
//
// # Casualties
//
// The overpressure-to-mortality table follows Glasstone & Dolan (1977)
// nuclear weapons effects data, evaluated at the 20 psi total-destruction
// boundary. Population density comes from an embedded table of major
// population centers with square-root distance falloff, falling back to
// latitude-band heuristics. An optional remote density lookup is advisory
// only and never sits on the casualty path; see [DensityProvider].
//
// # Validation
//
// [RunValidationSuite] replays the Chelyabinsk (2013) and Tunguska (1908)
// events against published energy estimates. It is a regression oracle:
// an out-of-tolerance record is reported, never fatal.
package physics
