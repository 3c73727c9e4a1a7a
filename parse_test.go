package argv

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testFlags is a helper struct holding a registry with one flag of each of
// the common kinds:
//
//	-verbose    boolean
//	-count      integer, required
//	-name       string, default "anon"
type testFlags struct {
	reg     *Registry
	verbose *Handle[bool]
	count   *Handle[int]
	name    *Handle[string]
}

func newTestFlags(t *testing.T) testFlags {
	t.Helper()
	reg := NewRegistry()
	verbose, err := reg.Bool("verbose", "enable verbose output")
	require.NoError(t, err)
	count, err := reg.Int("count", "number of items", 0, true)
	require.NoError(t, err)
	name, err := reg.String("name", "user name", "anon", false)
	require.NoError(t, err)
	return testFlags{reg: reg, verbose: verbose, count: count, name: name}
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("all flags supplied", func(t *testing.T) {
		t.Parallel()
		s := newTestFlags(t)

		err := s.reg.Parse([]string{"prog", "-verbose", "-count", "5"})
		require.NoError(t, err)
		assert.True(t, s.verbose.Value())
		assert.Equal(t, 5, s.count.Value())
		assert.Equal(t, "anon", s.name.Value())
		assert.True(t, s.count.Supplied())
		assert.False(t, s.name.Supplied())
		assert.Empty(t, s.reg.Args())
	})
	t.Run("element zero never matches", func(t *testing.T) {
		t.Parallel()
		s := newTestFlags(t)

		err := s.reg.Parse([]string{"-verbose", "-count", "5"})
		require.NoError(t, err)
		assert.False(t, s.verbose.Value(), "program name slot must be skipped")
		assert.Equal(t, 5, s.count.Value())
	})
	t.Run("missing required flag", func(t *testing.T) {
		t.Parallel()
		s := newTestFlags(t)

		err := s.reg.Parse([]string{"prog", "-verbose"})
		require.Error(t, err)
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		require.Len(t, parseErr.Errors, 1)
		var missing *MissingRequiredFlagError
		require.ErrorAs(t, parseErr.Errors[0], &missing)
		assert.Equal(t, "count", missing.Flag)
		// Handles matched before the failure keep their values.
		assert.True(t, s.verbose.Value())
	})
	t.Run("defaults persist when absent", func(t *testing.T) {
		t.Parallel()
		reg := NewRegistry()
		retries, err := reg.Int("retries", "", 3, false)
		require.NoError(t, err)
		ratio, err := reg.Float("ratio", "", 0.5, false)
		require.NoError(t, err)
		wait, err := reg.Duration("wait", "", 2*time.Second, false)
		require.NoError(t, err)

		require.NoError(t, reg.Parse([]string{"prog"}))
		assert.Equal(t, 3, retries.Value())
		assert.InEpsilon(t, 0.5, ratio.Value(), 1e-9)
		assert.Equal(t, 2*time.Second, wait.Value())
	})
	t.Run("inline values", func(t *testing.T) {
		t.Parallel()
		s := newTestFlags(t)

		err := s.reg.Parse([]string{"prog", "-count=5", "--name=alice"})
		require.NoError(t, err)
		assert.Equal(t, 5, s.count.Value())
		assert.Equal(t, "alice", s.name.Value())
	})
	t.Run("inline empty string value", func(t *testing.T) {
		t.Parallel()
		s := newTestFlags(t)

		err := s.reg.Parse([]string{"prog", "-count", "1", "--name="})
		require.NoError(t, err)
		assert.Equal(t, "", s.name.Value())
		assert.True(t, s.name.Supplied())
	})
	t.Run("float and duration values", func(t *testing.T) {
		t.Parallel()
		reg := NewRegistry()
		ratio, err := reg.Float("ratio", "", 0, false)
		require.NoError(t, err)
		wait, err := reg.Duration("wait", "", 0, false)
		require.NoError(t, err)

		require.NoError(t, reg.Parse([]string{"prog", "-ratio", "2.5", "-wait", "1m30s"}))
		assert.InEpsilon(t, 2.5, ratio.Value(), 1e-9)
		assert.Equal(t, 90*time.Second, wait.Value())
	})
	t.Run("next token consumed even when flag shaped", func(t *testing.T) {
		t.Parallel()
		s := newTestFlags(t)

		err := s.reg.Parse([]string{"prog", "-name", "-verbose", "-count", "1"})
		require.NoError(t, err)
		assert.Equal(t, "-verbose", s.name.Value())
		assert.False(t, s.verbose.Value())
	})
	t.Run("boolean matches by bare name only", func(t *testing.T) {
		t.Parallel()
		s := newTestFlags(t)

		err := s.reg.Parse([]string{"prog", "-count", "1", "-verbose=true"})
		require.NoError(t, err)
		assert.False(t, s.verbose.Value())
		assert.Equal(t, []string{"-verbose=true"}, s.reg.Args())
	})
	t.Run("boolean consumes no value token", func(t *testing.T) {
		t.Parallel()
		s := newTestFlags(t)

		err := s.reg.Parse([]string{"prog", "-verbose", "extra", "-count", "2"})
		require.NoError(t, err)
		assert.True(t, s.verbose.Value())
		assert.Equal(t, 2, s.count.Value())
		assert.Equal(t, []string{"extra"}, s.reg.Args())
	})
	t.Run("missing value at end of vector", func(t *testing.T) {
		t.Parallel()
		s := newTestFlags(t)

		err := s.reg.Parse([]string{"prog", "-count"})
		require.Error(t, err)
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		// The flag was matched, so it must not also be reported as missing.
		require.Len(t, parseErr.Errors, 1)
		var missingVal *MissingValueError
		require.ErrorAs(t, parseErr.Errors[0], &missingVal)
		assert.Equal(t, "count", missingVal.Flag)
	})
	t.Run("coercion failure keeps previous value", func(t *testing.T) {
		t.Parallel()
		reg := NewRegistry()
		retries, err := reg.Int("retries", "", 7, false)
		require.NoError(t, err)

		err = reg.Parse([]string{"prog", "-retries", "banana"})
		require.Error(t, err)
		var coercion *CoercionError
		require.ErrorAs(t, err, &coercion)
		assert.Equal(t, "retries", coercion.Flag)
		assert.Equal(t, "banana", coercion.Token)
		assert.Equal(t, KindInt, coercion.Kind)
		assert.Equal(t, 7, retries.Value())
		assert.False(t, retries.Supplied())
	})
	t.Run("bad value on required flag is one error", func(t *testing.T) {
		t.Parallel()
		s := newTestFlags(t)

		err := s.reg.Parse([]string{"prog", "-count", "abc"})
		require.Error(t, err)
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		require.Len(t, parseErr.Errors, 1)
		var coercion *CoercionError
		require.ErrorAs(t, parseErr.Errors[0], &coercion)
	})
	t.Run("errors aggregate across the whole vector", func(t *testing.T) {
		t.Parallel()
		s := newTestFlags(t)

		err := s.reg.Parse([]string{"prog", "-count", "abc", "-name"})
		require.Error(t, err)
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		require.Len(t, parseErr.Errors, 2)
		var coercion *CoercionError
		require.ErrorAs(t, parseErr.Errors[0], &coercion)
		var missingVal *MissingValueError
		require.ErrorAs(t, parseErr.Errors[1], &missingVal)
		assert.Equal(t, "name", missingVal.Flag)
		assert.ErrorContains(t, err, `invalid integer value "abc" for flag -count`)
		assert.ErrorContains(t, err, "missing value for flag -name")
	})
	t.Run("required omissions reported after scan errors", func(t *testing.T) {
		t.Parallel()
		s := newTestFlags(t)

		err := s.reg.Parse([]string{"prog", "-name"})
		require.Error(t, err)
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		require.Len(t, parseErr.Errors, 2)
		var missingVal *MissingValueError
		require.ErrorAs(t, parseErr.Errors[0], &missingVal)
		var missing *MissingRequiredFlagError
		require.ErrorAs(t, parseErr.Errors[1], &missing)
		assert.Equal(t, "count", missing.Flag)
	})
	t.Run("unrecognized tokens pass through", func(t *testing.T) {
		t.Parallel()
		s := newTestFlags(t)

		err := s.reg.Parse([]string{"prog", "-unknown", "positional", "-count", "3"})
		require.NoError(t, err)
		assert.Equal(t, 3, s.count.Value())
		if diff := cmp.Diff([]string{"-unknown", "positional"}, s.reg.Args()); diff != "" {
			t.Errorf("unexpected leftover args (-want +got):\n%s", diff)
		}
	})
	t.Run("repeated flag last occurrence wins", func(t *testing.T) {
		t.Parallel()
		s := newTestFlags(t)

		err := s.reg.Parse([]string{"prog", "-count", "1", "-count", "2"})
		require.NoError(t, err)
		assert.Equal(t, 2, s.count.Value())
	})
	t.Run("end of options delimiter", func(t *testing.T) {
		t.Parallel()
		s := newTestFlags(t)

		err := s.reg.Parse([]string{"prog", "-count", "1", "--", "-verbose", "-name=x"})
		require.NoError(t, err)
		assert.Equal(t, 1, s.count.Value())
		assert.False(t, s.verbose.Value())
		assert.Equal(t, "anon", s.name.Value())
		assert.Equal(t, []string{"-verbose", "-name=x"}, s.reg.Args())
	})
	t.Run("reparse keeps earlier values", func(t *testing.T) {
		t.Parallel()
		s := newTestFlags(t)

		require.NoError(t, s.reg.Parse([]string{"prog", "-count", "1", "-name", "alice"}))
		require.NoError(t, s.reg.Parse([]string{"prog", "-count", "2"}))
		assert.Equal(t, 2, s.count.Value())
		assert.Equal(t, "alice", s.name.Value())

		// Required flags are re-checked on every scan.
		err := s.reg.Parse([]string{"prog"})
		require.Error(t, err)
		var missing *MissingRequiredFlagError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "count", missing.Flag)
	})
	t.Run("empty vectors", func(t *testing.T) {
		t.Parallel()
		reg := NewRegistry()
		quiet, err := reg.Bool("quiet", "")
		require.NoError(t, err)

		require.NoError(t, reg.Parse(nil))
		require.NoError(t, reg.Parse([]string{}))
		require.NoError(t, reg.Parse([]string{"prog"}))
		assert.False(t, quiet.Value())
	})
	t.Run("strict mode rejects unknown flags", func(t *testing.T) {
		t.Parallel()
		s := newTestFlags(t)

		err := s.reg.Parse([]string{"prog", "-cuont", "5"}, WithStrictFlags())
		require.Error(t, err)
		var unknown *UnknownFlagError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "cuont", unknown.Flag)
		assert.Equal(t, []string{"count"}, unknown.Suggestions)
		assert.ErrorContains(t, err, "unknown flag -cuont (did you mean -count?)")
	})
	t.Run("strict mode leaves plain tokens alone", func(t *testing.T) {
		t.Parallel()
		s := newTestFlags(t)

		err := s.reg.Parse([]string{"prog", "-count", "5", "positional"}, WithStrictFlags())
		require.NoError(t, err)
		assert.Equal(t, []string{"positional"}, s.reg.Args())
	})
	t.Run("strict mode rejects inline boolean values", func(t *testing.T) {
		t.Parallel()
		s := newTestFlags(t)

		err := s.reg.Parse([]string{"prog", "-count", "5", "-verbose=true"}, WithStrictFlags())
		require.Error(t, err)
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		// The name is registered, so this is not an unknown flag.
		require.Len(t, parseErr.Errors, 1)
		var boolVal *BoolValueError
		require.ErrorAs(t, parseErr.Errors[0], &boolVal)
		assert.Equal(t, "verbose", boolVal.Flag)
		assert.ErrorContains(t, err, "boolean flag -verbose takes no value")
		assert.False(t, s.verbose.Value())
	})
}

func TestParsePatterns(t *testing.T) {
	t.Parallel()

	newScriptFlags := func(t *testing.T) (*Registry, *Handle[string], *Handle[bool]) {
		t.Helper()
		reg := NewRegistry()
		script, err := reg.Pattern("script", "python script", regexp.MustCompile(`.+\.py$`))
		require.NoError(t, err)
		verbose, err := reg.Bool("verbose", "enable verbose output")
		require.NoError(t, err)
		return reg, script, verbose
	}

	t.Run("content match", func(t *testing.T) {
		t.Parallel()
		reg, script, verbose := newScriptFlags(t)

		err := reg.Parse([]string{"prog", "-verbose", "main.py"})
		require.NoError(t, err)
		assert.True(t, verbose.Value())
		assert.Equal(t, "main.py", script.Value())
		assert.True(t, script.Supplied())
		assert.Empty(t, reg.Args())
	})
	t.Run("unknown flag passes through while pattern claims", func(t *testing.T) {
		t.Parallel()
		reg, script, _ := newScriptFlags(t)

		err := reg.Parse([]string{"prog", "-x", "main.py"})
		require.NoError(t, err)
		assert.Equal(t, "main.py", script.Value())
		assert.Equal(t, []string{"-x"}, reg.Args())
	})
	t.Run("first registered rule claims", func(t *testing.T) {
		t.Parallel()
		reg := NewRegistry()
		py, err := reg.Pattern("python", "", regexp.MustCompile(`\.py$`))
		require.NoError(t, err)
		mains, err := reg.Pattern("mains", "", regexp.MustCompile(`^main\.`))
		require.NoError(t, err)

		require.NoError(t, reg.Parse([]string{"prog", "main.py"}))
		assert.Equal(t, "main.py", py.Value())
		assert.False(t, mains.Supplied(), "token already claimed by the earlier rule")
	})
	t.Run("later rule claims what earlier rejected", func(t *testing.T) {
		t.Parallel()
		reg := NewRegistry()
		py, err := reg.Pattern("python", "", regexp.MustCompile(`\.py$`))
		require.NoError(t, err)
		mains, err := reg.Pattern("mains", "", regexp.MustCompile(`^main\.`))
		require.NoError(t, err)

		require.NoError(t, reg.Parse([]string{"prog", "main.go"}))
		assert.False(t, py.Supplied())
		assert.Equal(t, "main.go", mains.Value())
	})
	t.Run("last matching token wins", func(t *testing.T) {
		t.Parallel()
		reg, script, _ := newScriptFlags(t)

		require.NoError(t, reg.Parse([]string{"prog", "a.py", "b.py"}))
		assert.Equal(t, "b.py", script.Value())
	})
	t.Run("flag shaped tokens are not offered", func(t *testing.T) {
		t.Parallel()
		reg, script, _ := newScriptFlags(t)

		err := reg.Parse([]string{"prog", "-script.py"})
		require.NoError(t, err)
		assert.False(t, script.Supplied())
		assert.Equal(t, []string{"-script.py"}, reg.Args())
	})
	t.Run("everything offered after the delimiter", func(t *testing.T) {
		t.Parallel()
		reg, script, _ := newScriptFlags(t)

		require.NoError(t, reg.Parse([]string{"prog", "--", "-script.py"}))
		assert.Equal(t, "-script.py", script.Value())
	})
	t.Run("unmatched pattern is never required", func(t *testing.T) {
		t.Parallel()
		reg, script, _ := newScriptFlags(t)

		require.NoError(t, reg.Parse([]string{"prog"}))
		assert.Equal(t, "", script.Value())
		assert.False(t, script.Supplied())
	})
	t.Run("value tokens are not offered", func(t *testing.T) {
		t.Parallel()
		reg := NewRegistry()
		name, err := reg.String("name", "", "", false)
		require.NoError(t, err)
		script, err := reg.Pattern("script", "", regexp.MustCompile(`.+\.py$`))
		require.NoError(t, err)

		require.NoError(t, reg.Parse([]string{"prog", "-name", "main.py"}))
		assert.Equal(t, "main.py", name.Value(), "named flag consumes the token first")
		assert.False(t, script.Supplied())
	})
	t.Run("named flag and pattern coexist", func(t *testing.T) {
		t.Parallel()
		reg := NewRegistry()
		x, err := reg.Bool("x", "")
		require.NoError(t, err)
		exes, err := reg.Pattern("exes", "", regexp.MustCompile(`^x$`))
		require.NoError(t, err)

		require.NoError(t, reg.Parse([]string{"prog", "-x", "x"}))
		assert.True(t, x.Value())
		assert.Equal(t, "x", exes.Value())
	})
}
