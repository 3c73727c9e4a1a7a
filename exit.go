package argv

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ExitOptions specifies streams and exit behavior for [ParseOrExit].
type ExitOptions struct {
	// Usage configures the rendered usage block.
	Usage *UsageOptions
	// Stdout and Stderr are the output streams. If either is nil, the
	// corresponding process stream ([os.Stdout], [os.Stderr]) is used.
	Stdout, Stderr io.Writer
	// Exit terminates the process. If nil, [os.Exit] is used. Tests inject a
	// recording function here.
	Exit func(code int)
}

// ParseOrExit wraps the conventional caller contract around [Registry.Parse]:
// a help token anywhere in the vector prints usage to stdout and exits 0, a
// parse failure prints every aggregated error followed by the usage block to
// stderr and exits 1, and a clean parse simply returns.
//
// The options parameter may be nil, in which case default values are used.
// See [ExitOptions] for more details.
func ParseOrExit(r *Registry, argv []string, options *ExitOptions) {
	options = checkAndSetExitOptions(options)
	if HelpRequested(argv) {
		_ = r.WriteUsage(options.Stdout, options.Usage)
		options.Exit(0)
		return
	}
	err := r.Parse(argv)
	if err == nil {
		return
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		for _, sub := range parseErr.Errors {
			fmt.Fprintf(options.Stderr, "error: %v\n", sub)
		}
	} else {
		fmt.Fprintf(options.Stderr, "error: %v\n", err)
	}
	fmt.Fprintln(options.Stderr)
	_ = r.WriteUsage(options.Stderr, options.Usage)
	options.Exit(1)
}

func checkAndSetExitOptions(opt *ExitOptions) *ExitOptions {
	if opt == nil {
		opt = &ExitOptions{}
	}
	if opt.Stdout == nil {
		opt.Stdout = os.Stdout
	}
	if opt.Stderr == nil {
		opt.Stderr = os.Stderr
	}
	if opt.Exit == nil {
		opt.Exit = os.Exit
	}
	return opt
}
