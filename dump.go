package argv

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
)

// flagState is the snapshot of one registered flag taken by [Registry.Dump].
type flagState struct {
	Name        string
	Kind        string
	Description string
	Default     string
	Current     string
	Required    bool
	Matched     bool
	Pattern     string
}

// dumpConfig keeps Dump output stable: no pointer addresses, fields in
// declaration order.
var dumpConfig = &spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Dump writes a diagnostic snapshot of the registry to w: every flag in
// registration order with its kind, default, current value and match state,
// followed by any leftover tokens from the most recent parse. It is meant for
// debugging a tool's flag wiring, not for end users.
func (r *Registry) Dump(w io.Writer) {
	states := make([]flagState, 0, len(r.entries))
	for _, e := range r.entries {
		s := flagState{
			Name:        e.name,
			Kind:        e.kind.String(),
			Description: e.description,
			Default:     e.defText,
			Current:     e.current(),
			Required:    e.required,
			Matched:     e.matched,
		}
		if e.pattern != nil {
			s.Pattern = e.pattern.String()
		}
		states = append(states, s)
	}
	fmt.Fprintf(w, "registry: %d flag(s), %d leftover arg(s)\n", len(states), len(r.args))
	dumpConfig.Fdump(w, states)
	if len(r.args) > 0 {
		dumpConfig.Fdump(w, r.args)
	}
}
