package registry

import (
	"errors"
	"fmt"
	"strings"

	"desergen/internal/diagnostic"
	"desergen/internal/modpath"
	"desergen/internal/schema"
)

// LoadError reports that the document for a requested path could not be
// found or decoded.
type LoadError struct {
	Path modpath.Path
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load schema %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Failure is the error that kept one requested schema out of the registry.
type Failure struct {
	Path modpath.Path
	Err  error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Path, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// BuildError aggregates every failing schema of a batch. A build that
// returns it returns no registry.
type BuildError struct {
	Failures []Failure
}

func (e *BuildError) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = f.Error()
	}

	noun := "schemas"
	if len(e.Failures) == 1 {
		noun = "schema"
	}

	return fmt.Sprintf("schema build failed: %d %s invalid: %s", len(e.Failures), noun, strings.Join(parts, "; "))
}

// Unwrap exposes every failure to errors.Is and errors.As.
func (e *BuildError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}

	return errs
}

// Diagnostics reports one error diagnostic per failure.
func (e *BuildError) Diagnostics() diagnostic.Diagnostics {
	var d diagnostic.Diagnostics

	for _, f := range e.Failures {
		d.Add(failureDiagnostic(f))
	}

	d.Sort()

	return d
}

func failureDiagnostic(f Failure) diagnostic.Diagnostic {
	diag := diagnostic.Diagnostic{
		Severity: diagnostic.SeverityError,
		Code:     diagnostic.CodeBuildFailed,
		Message:  f.Err.Error(),
		Schema:   f.Path.String(),
	}

	var fieldErr *schema.FieldError
	if errors.As(f.Err, &fieldErr) {
		diag.Field = fieldErr.Field
		diag.Message = fieldErr.Err.Error()
	}

	var (
		loadErr    *LoadError
		refErr     *schema.UnresolvedReferenceError
		keyErr     *schema.InvalidMapKeyError
		optErr     *schema.InvalidOptionalError
		defaultErr *schema.EnumDefaultError
		emptyErr   *schema.EmptyEnumError
		shapeErr   *schema.DefaultsShapeError
	)

	switch {
	case errors.As(f.Err, &loadErr):
		diag.Code = diagnostic.CodeLoadFailed
		diag.Message = loadErr.Err.Error()
	case errors.As(f.Err, &refErr):
		diag.Code = diagnostic.CodeUnresolvedReference
		diag.Message = fmt.Sprintf("unresolved reference to %s", refErr.Path)

		if !refErr.Suggestion.IsZero() {
			diag.Suggestions = []string{refErr.Suggestion.String()}
		}
	case errors.As(f.Err, &keyErr):
		diag.Code = diagnostic.CodeInvalidMapKey
	case errors.As(f.Err, &optErr):
		diag.Code = diagnostic.CodeInvalidOptional
	case errors.As(f.Err, &defaultErr):
		diag.Code = diagnostic.CodeInvalidEnumDefault
	case errors.As(f.Err, &emptyErr):
		diag.Code = diagnostic.CodeEmptyEnum
	case errors.As(f.Err, &shapeErr):
		diag.Code = diagnostic.CodeInvalidDefaults
	case errors.Is(f.Err, modpath.ErrInvalid):
		diag.Code = diagnostic.CodeInvalidModulePath
	}

	return diag
}
