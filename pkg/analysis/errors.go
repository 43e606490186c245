package analysis

import "fmt"

// ConfigurationError reports an invalid analysis parameter, such as
// non-positive grid dimensions or a grid size that does not match the
// number of spectrum files in the input directory.
type ConfigurationError struct {
	// Field is the name of the offending parameter.
	Field string

	// Reason describes why the value is invalid.
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// DataLoadError reports a missing or malformed spectrum input. It is fatal
// to the whole analysis: no partial results are produced.
type DataLoadError struct {
	// Path identifies the directory or file that failed.
	Path string

	// Err is the underlying cause.
	Err error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.Path, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// ParseError reports malformed ground-truth coordinate text. It is fatal to
// the reconciliation step only; the computational outputs remain valid.
type ParseError struct {
	// Token is the offending token, or empty when the problem is the token
	// count rather than a specific token.
	Token string

	// Reason describes the problem.
	Reason string
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("parsing ground truth: %s", e.Reason)
	}
	return fmt.Sprintf("parsing ground truth: token %q: %s", e.Token, e.Reason)
}
