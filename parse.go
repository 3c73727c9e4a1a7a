package argv

import (
	"strings"

	"github.com/argvee/argv/pkg/suggest"
)

// maxSuggestions caps the near-miss names attached to an UnknownFlagError.
const maxSuggestions = 3

// ParseOption adjusts the behavior of a single [Registry.Parse] call.
type ParseOption func(*parseConfig)

type parseConfig struct {
	strictFlags bool
}

// WithStrictFlags turns flag-shaped tokens that match no flag into parse
// errors instead of letting them pass through to [Registry.Args]. Unknown
// names get near-miss suggestions attached; a registered boolean name with an
// inline value gets a [BoolValueError], since boolean flags take no value.
func WithStrictFlags() ParseOption {
	return func(c *parseConfig) { c.strictFlags = true }
}

// Parse scans the full argument vector and assigns every matched flag's
// handle in place. Element 0 is the program name and is skipped; call it as
// Parse(os.Args).
//
// Each token passes through two phases. Named matching first: -name and
// --name select a registered non-pattern flag, with the value taken from an
// inline -name=value form or consumed from the next element; boolean flags
// match by bare name alone. Content matching second: a token no name claimed,
// and which is not itself flag-shaped, is offered to pattern flags in
// registration order and the first matching rule takes it. A literal "--"
// disables named matching for the rest of the vector, so later tokens go
// straight to content matching. Anything still unclaimed passes through
// silently and is available from [Registry.Args].
//
// All problems found during the pass, missing values, uncoercible tokens and
// required flags that never appeared, are collected and returned together as
// a [ParseError] after the whole vector has been scanned. Handles assigned
// before an error was found keep their new values, so callers must treat any
// parse failure as fatal for the invocation rather than reading partial
// results.
//
// Parse may be called again with a new vector. Handles are not reset between
// calls: a flag absent from the second vector keeps whatever the previous
// parse or the registration default left in it.
func (r *Registry) Parse(argv []string, opts ...ParseOption) error {
	var cfg parseConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	errs := make([]error, 0, len(r.regErrs))
	errs = append(errs, r.regErrs...)
	for _, e := range r.entries {
		e.matched = false
	}
	r.args = nil

	// A bare -- switches off named matching for the rest of the vector.
	namesDone := false
	for i := 1; i < len(argv); i++ {
		tok := argv[i]
		if !namesDone && tok == "--" {
			namesDone = true
			continue
		}
		if !namesDone && isFlagToken(tok) {
			name, inline, hasInline := splitFlagToken(tok)
			e := r.byName[name]
			switch {
			case e == nil:
				if cfg.strictFlags {
					errs = append(errs, &UnknownFlagError{
						Flag:        name,
						Suggestions: suggest.Flags(name, r.names(), maxSuggestions),
					})
				} else {
					r.args = append(r.args, tok)
				}
			case e.kind == KindBool && hasInline:
				// Boolean flags match by bare name alone; an inline value
				// disqualifies the match. The name is registered, so strict
				// mode reports the value rather than an unknown flag.
				if cfg.strictFlags {
					errs = append(errs, &BoolValueError{Flag: name})
				} else {
					r.args = append(r.args, tok)
				}
			case e.kind == KindBool:
				e.matched = true
				_ = e.assign("")
			default:
				e.matched = true
				value := inline
				if !hasInline {
					if i+1 >= len(argv) {
						errs = append(errs, &MissingValueError{Flag: name})
						continue
					}
					i++
					value = argv[i]
				}
				if err := e.assign(value); err != nil {
					errs = append(errs, err)
				}
			}
			continue
		}

		claimed := false
		for _, p := range r.patterns {
			if p.pattern.MatchString(tok) {
				p.matched = true
				_ = p.assign(tok)
				claimed = true
				break
			}
		}
		if !claimed {
			r.args = append(r.args, tok)
		}
	}

	for _, e := range r.entries {
		if e.required && !e.matched {
			errs = append(errs, &MissingRequiredFlagError{Flag: e.name})
		}
	}

	r.parsed = true
	if len(errs) > 0 {
		return &ParseError{Errors: errs}
	}
	return nil
}

// isFlagToken reports whether tok has the -name shape: one or more leading
// dashes with something after them. A bare "-" or "--" is not a flag token.
func isFlagToken(tok string) bool {
	if !strings.HasPrefix(tok, "-") {
		return false
	}
	return strings.TrimLeft(tok, "-") != ""
}

// splitFlagToken strips the leading dashes and separates an inline =value
// form. A "=" in the first position stays part of the name, mirroring how an
// empty name could never have been registered.
func splitFlagToken(tok string) (name, inline string, hasInline bool) {
	name = strings.TrimLeft(tok, "-")
	if idx := strings.Index(name, "="); idx > 0 {
		return name[:idx], name[idx+1:], true
	}
	return name, "", false
}
