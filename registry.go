package argv

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Registry is an ordered collection of flag declarations. Create one with
// [NewRegistry]; the zero value is not usable. Registration order is
// preserved and drives both help rendering and pattern-flag precedence.
//
// A Registry is not safe for concurrent use. Register every flag, then parse;
// interleaving the two is an error.
type Registry struct {
	entries  []*entry
	byName   map[string]*entry // non-pattern flags only
	patterns []*entry          // registration order

	args    []string // tokens the most recent Parse left unclaimed
	regErrs []error  // registration failures, re-reported by Parse
	parsed  bool     // set once the first Parse completes
}

// NewRegistry returns an empty registry ready for registration.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*entry)}
}

// Bool registers a presence flag. Boolean flags default to false and are
// never required: the bare name in the argument vector sets the handle to
// true, and no value token is consumed. An inline -name=value form does not
// match a boolean flag.
func (r *Registry) Bool(name, description string) (*Handle[bool], error) {
	h := &Handle[bool]{name: name}
	e := &entry{
		name:        name,
		description: description,
		kind:        KindBool,
		defText:     "false",
		assign: func(token string) error {
			// The scanner passes "" for bare presence. Explicit tokens only
			// arrive through the flag-package bridge.
			if token == "" {
				h.value = true
				h.supplied = true
				return nil
			}
			b, err := coerceBool(name, token)
			if err != nil {
				return err
			}
			h.value = b
			h.supplied = true
			return nil
		},
		current: func() string { return strconv.FormatBool(h.value) },
		get:     func() any { return h.value },
	}
	if err := r.add(e); err != nil {
		return nil, err
	}
	return h, nil
}

// Int registers a flag taking a base-10 integer value. When required is
// false, def is the value of an absent flag. When required is true, def only
// pre-populates the handle and an absent flag still fails the parse.
func (r *Registry) Int(name, description string, def int, required bool) (*Handle[int], error) {
	h := &Handle[int]{name: name, value: def}
	e := &entry{
		name:        name,
		description: description,
		kind:        KindInt,
		required:    required,
		defText:     strconv.Itoa(def),
		assign: func(token string) error {
			n, err := coerceInt(name, token)
			if err != nil {
				return err
			}
			h.value = n
			h.supplied = true
			return nil
		},
		current: func() string { return strconv.Itoa(h.value) },
		get:     func() any { return h.value },
	}
	if err := r.add(e); err != nil {
		return nil, err
	}
	return h, nil
}

// Float registers a flag taking a decimal floating-point value. Default and
// required semantics match [Registry.Int].
func (r *Registry) Float(name, description string, def float64, required bool) (*Handle[float64], error) {
	h := &Handle[float64]{name: name, value: def}
	e := &entry{
		name:        name,
		description: description,
		kind:        KindFloat,
		required:    required,
		defText:     strconv.FormatFloat(def, 'g', -1, 64),
		assign: func(token string) error {
			f, err := coerceFloat(name, token)
			if err != nil {
				return err
			}
			h.value = f
			h.supplied = true
			return nil
		},
		current: func() string { return strconv.FormatFloat(h.value, 'g', -1, 64) },
		get:     func() any { return h.value },
	}
	if err := r.add(e); err != nil {
		return nil, err
	}
	return h, nil
}

// String registers a flag taking the next token verbatim; the empty string is
// a legal value. Default and required semantics match [Registry.Int].
func (r *Registry) String(name, description, def string, required bool) (*Handle[string], error) {
	h := &Handle[string]{name: name, value: def}
	e := &entry{
		name:        name,
		description: description,
		kind:        KindString,
		required:    required,
		defText:     strconv.Quote(def),
		assign: func(token string) error {
			h.value = token
			h.supplied = true
			return nil
		},
		current: func() string { return h.value },
		get:     func() any { return h.value },
	}
	if err := r.add(e); err != nil {
		return nil, err
	}
	return h, nil
}

// Duration registers a flag taking a [time.ParseDuration] literal such as
// "30s" or "1h30m". Default and required semantics match [Registry.Int].
func (r *Registry) Duration(name, description string, def time.Duration, required bool) (*Handle[time.Duration], error) {
	h := &Handle[time.Duration]{name: name, value: def}
	e := &entry{
		name:        name,
		description: description,
		kind:        KindDuration,
		required:    required,
		defText:     def.String(),
		assign: func(token string) error {
			d, err := coerceDuration(name, token)
			if err != nil {
				return err
			}
			h.value = d
			h.supplied = true
			return nil
		},
		current: func() string { return h.value.String() },
		get:     func() any { return h.value },
	}
	if err := r.add(e); err != nil {
		return nil, err
	}
	return h, nil
}

// Pattern registers a flag matched by content instead of by name: a token
// that no named flag claimed and that is not flag-shaped is offered to
// pattern flags in registration order, and the first matching rule takes it.
// The rule is applied with [regexp.Regexp.MatchString]; anchor it when a full
// match is intended.
//
// Pattern flags have no default and no required semantics. An unmatched
// pattern handle reads as the empty string. The name is documentation only:
// it lives outside the named-flag namespace, may repeat, and is not reachable
// through [Lookup].
func (r *Registry) Pattern(name, description string, rule *regexp.Regexp) (*Handle[string], error) {
	if rule == nil {
		return nil, fmt.Errorf("pattern flag %q: rule must not be nil", name)
	}
	h := &Handle[string]{name: name}
	e := &entry{
		name:        name,
		description: description,
		kind:        KindPattern,
		pattern:     rule,
		assign: func(token string) error {
			h.value = token
			h.supplied = true
			return nil
		},
		current: func() string { return h.value },
		get:     func() any { return h.value },
	}
	if err := r.add(e); err != nil {
		return nil, err
	}
	return h, nil
}

// add appends the entry, enforcing registration-time constraints. Duplicate
// names are remembered so Parse can re-report them.
func (r *Registry) add(e *entry) error {
	if r.parsed {
		return fmt.Errorf("flag %q registered after parsing; register all flags before the first Parse call", e.name)
	}
	if e.kind == KindPattern {
		r.entries = append(r.entries, e)
		r.patterns = append(r.patterns, e)
		return nil
	}
	if err := validateName(e.name); err != nil {
		return err
	}
	if _, exists := r.byName[e.name]; exists {
		err := &DuplicateFlagNameError{Name: e.name}
		r.regErrs = append(r.regErrs, err)
		return err
	}
	r.byName[e.name] = e
	r.entries = append(r.entries, e)
	return nil
}

// validateName rejects names the scanner could never match back.
func validateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("flag name must not be empty")
	case strings.HasPrefix(name, "-"):
		return fmt.Errorf("flag name %q must not begin with a dash", name)
	case strings.ContainsAny(name, "= \t"):
		return fmt.Errorf("flag name %q must not contain %q", name, "= ")
	}
	return nil
}

// names returns the registered non-pattern flag names in registration order.
func (r *Registry) names() []string {
	out := make([]string, 0, len(r.byName))
	for _, e := range r.entries {
		if e.kind != KindPattern {
			out = append(out, e.name)
		}
	}
	return out
}

// Args returns the tokens the most recent [Registry.Parse] left unclaimed:
// everything that matched no flag name and no pattern rule. The slice is
// valid until the next parse.
func (r *Registry) Args() []string { return r.args }

// Lookup returns the current value of a named flag with type inference:
//
//	count := argv.Lookup[int](reg, "count")
//
// It panics when the name was never registered or T does not match the
// registered kind. Both are programming errors in the calling tool, and
// failing loudly beats handing back a zero value that silently misconfigures
// it. Pattern flags are not in the name namespace; read their handles
// directly.
func Lookup[T any](r *Registry, name string) T {
	e, ok := r.byName[name]
	if !ok {
		panic(fmt.Sprintf("argv: flag %q not registered", name))
	}
	v, ok := e.get().(T)
	if !ok {
		panic(fmt.Sprintf("argv: flag %q registered as %T, requested as %T", name, e.get(), *new(T)))
	}
	return v
}
