// Package errors provides structured error types for the ritprem module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries context: field path, Go type name, offending value and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseAdopt, errors.KindAllocation).
//		GoType("wafer.Concentration").
//		Detail("count cell budget of %d exhausted", 8).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NullDereference(errors.PhaseDereference, "wafer.Concentration")
//	err := errors.NotFound(errors.PhaseLookup, "element", "Xx")
//
// All errors implement the standard error interface and support errors.Is/As.
// The Err* sentinels match any error of their Kind regardless of Phase:
//
//	if errors.Is(err, rerrors.ErrNullDereference) { ... }
package errors
