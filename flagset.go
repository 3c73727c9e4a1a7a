package argv

import (
	"flag"
	"io"

	"github.com/mfridman/xflag"
)

// flagValue adapts a registry entry to the [flag.Value] and [flag.Getter]
// contracts so a standard FlagSet can drive the same handle the registry
// owns.
type flagValue struct {
	e *entry
}

func (v flagValue) String() string {
	// The flag package calls String on a zero Value of this type when
	// printing defaults, so the nil entry must not panic.
	if v.e == nil {
		return ""
	}
	return v.e.current()
}

func (v flagValue) Set(s string) error {
	v.e.matched = true
	return v.e.assign(s)
}

func (v flagValue) Get() any { return v.e.get() }

// boolFlagValue additionally reports itself boolean so the flag package
// accepts the bare -name form without consuming a value token.
type boolFlagValue struct {
	flagValue
}

func (v boolFlagValue) IsBoolFlag() bool { return true }

// Set parses the token the way the flag package's own bool flags do. The
// -name= spelling hands an empty token to Set, which must error here rather
// than reach the scanner's bare-presence sentinel.
func (v boolFlagValue) Set(s string) error {
	if _, err := coerceBool(v.e.name, s); err != nil {
		return err
	}
	return v.flagValue.Set(s)
}

// BindFlagSet mirrors every named flag into fs, so code built on the standard
// flag package can parse into the registry's handles. Pattern flags have no
// name to bind and are skipped. The standard package's stricter semantics
// apply on this path: unknown flags error, and boolean flags accept an
// explicit -name=false.
func (r *Registry) BindFlagSet(fs *flag.FlagSet) {
	for _, e := range r.entries {
		if e.kind == KindPattern {
			continue
		}
		if e.kind == KindBool {
			fs.Var(boolFlagValue{flagValue{e}}, e.name, e.description)
		} else {
			fs.Var(flagValue{e}, e.name, e.description)
		}
	}
}

// StdFlagSet returns a new standard FlagSet named name with every named flag
// bound. The set continues on error and discards its own output; callers own
// error presentation, same as with [Registry.Parse].
func (r *Registry) StdFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	r.BindFlagSet(fs)
	return fs
}

// ParseToEnd parses the full argument vector with standard flag-package
// semantics while still allowing flags to appear after positional arguments,
// via [xflag.ParseToEnd]. Element 0 names the flag set. Unknown flags are
// errors on this path, a help token surfaces as [flag.ErrHelp], and required
// and pattern semantics are not applied; it exists for callers migrating from
// the flag package who want registry handles without changing their parsing
// contract. Positional leftovers land in [Registry.Args].
func ParseToEnd(r *Registry, argv []string) error {
	var name string
	var rest []string
	if len(argv) > 0 {
		name = argv[0]
		rest = argv[1:]
	}
	fs := r.StdFlagSet(name)
	if err := xflag.ParseToEnd(fs, rest); err != nil {
		return err
	}
	r.args = fs.Args()
	r.parsed = true
	return nil
}
