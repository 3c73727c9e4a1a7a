package argv

import (
	"fmt"
	"strings"
)

// DuplicateFlagNameError reports a registration under a name that an earlier
// non-pattern flag already owns. Registration returns it immediately, and
// [Registry.Parse] repeats it in the aggregate so the failure surfaces even
// when the registration result was discarded.
type DuplicateFlagNameError struct {
	Name string
}

func (e *DuplicateFlagNameError) Error() string {
	return fmt.Sprintf("flag %q already registered", e.Name)
}

// MissingValueError reports a value-taking flag that appeared as the final
// token of the vector with nothing left to consume.
type MissingValueError struct {
	Flag string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("missing value for flag -%s", e.Flag)
}

// CoercionError reports a value token that could not be parsed as the matched
// flag's kind. The flag's handle keeps its previous value.
type CoercionError struct {
	Flag  string
	Kind  Kind
	Token string
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("invalid %s value %q for flag -%s", e.Kind, e.Token, e.Flag)
}

// MissingRequiredFlagError reports a required flag that was never matched
// during the scan.
type MissingRequiredFlagError struct {
	Flag string
}

func (e *MissingRequiredFlagError) Error() string {
	return fmt.Sprintf("required flag -%s not set", e.Flag)
}

// BoolValueError reports an inline value attached to a registered boolean
// flag, as in -verbose=true. Boolean flags are set by bare name alone. It is
// produced only under [WithStrictFlags]; by default such tokens pass through
// to [Registry.Args].
type BoolValueError struct {
	Flag string
}

func (e *BoolValueError) Error() string {
	return fmt.Sprintf("boolean flag -%s takes no value", e.Flag)
}

// UnknownFlagError reports a flag-shaped token that matched no registered
// name. It is produced only under [WithStrictFlags]; by default unrecognized
// tokens pass through to [Registry.Args].
type UnknownFlagError struct {
	Flag        string
	Suggestions []string
}

func (e *UnknownFlagError) Error() string {
	if len(e.Suggestions) > 0 {
		return fmt.Sprintf("unknown flag -%s (did you mean -%s?)", e.Flag, strings.Join(e.Suggestions, ", -"))
	}
	return fmt.Sprintf("unknown flag -%s", e.Flag)
}

// ParseError aggregates every problem a single parsing pass found, in the
// order they were recorded: registration failures first, then scan errors in
// token order, then required-flag omissions in registration order. Callers
// present the whole list at once rather than forcing users to fix one error
// per run.
type ParseError struct {
	Errors []error
}

func (e *ParseError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// Unwrap exposes the aggregated errors to errors.Is and errors.As.
func (e *ParseError) Unwrap() []error { return e.Errors }
