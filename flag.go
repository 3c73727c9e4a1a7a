package argv

import "regexp"

// Kind identifies the value type of a registered flag. Every flag carries
// exactly one kind, assigned at registration, and all kind-specific behavior
// (coercion, help rendering, error text) dispatches on it.
type Kind int

const (
	// KindBool flags are presence flags: the bare name sets them to true and
	// no value token is consumed.
	KindBool Kind = iota
	// KindInt flags take a base-10, optionally signed integer value.
	KindInt
	// KindFloat flags take a decimal floating-point value.
	KindFloat
	// KindString flags take the next token verbatim, empty included.
	KindString
	// KindDuration flags take a time.ParseDuration literal such as "1h30m".
	KindDuration
	// KindPattern flags match tokens by content against a regular expression
	// rather than by name.
	KindPattern
)

// String returns the kind's name as it appears in help output and error
// messages.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "boolean"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindDuration:
		return "duration"
	case KindPattern:
		return "pattern"
	default:
		return "unknown"
	}
}

// Handle is the caller-visible cell a flag's value lands in. Registration
// returns a handle pre-populated with the flag's default, and
// [Registry.Parse] is the only writer after that. Read the value once parsing
// has finished; a Handle has no locking of its own.
type Handle[T any] struct {
	name     string
	value    T
	supplied bool
}

// Value returns the handle's current value: the registration default before
// parsing, or the coerced command-line value after a parse that matched the
// flag.
func (h *Handle[T]) Value() T { return h.value }

// Supplied reports whether a parse has explicitly assigned the handle. It
// stays false while the value still stems from the registration default.
func (h *Handle[T]) Supplied() bool { return h.supplied }

// Name returns the name the flag was registered under.
func (h *Handle[T]) Name() string { return h.name }

// entry is the registry-owned descriptor for one flag. The typed handle is
// reachable only through the closures bound at registration, which keeps the
// kind dispatch in one place per kind.
type entry struct {
	name        string
	description string
	kind        Kind
	required    bool
	defText     string         // rendered default, "" when there is none
	pattern     *regexp.Regexp // KindPattern only

	matched bool // claimed by name or by rule during the current scan

	assign  func(token string) error // coerce token and write the handle
	current func() string            // render the handle's current value
	get     func() any               // boxed value for Lookup and flag.Getter
}
