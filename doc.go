// Package argv provides typed command-line flag declaration and parsing for
// tools that want a permissive, single-pass scan of the argument vector.
//
// Callers register boolean, integer, float, string, duration, and
// content-matched pattern flags against a [Registry], then hand os.Args to
// [Registry.Parse]. Parsing fills the handles returned at registration and
// reports every problem it found, aggregated into a single [ParseError], so
// users can fix a whole command line in one attempt instead of one error per
// run. Tokens that match nothing pass through untouched and remain available
// from [Registry.Args].
package argv
