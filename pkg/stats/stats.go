package stats

import (
	"expvar"
	"fmt"
)

// exposed expvar variables
var (
	Ops     = expvar.NewMap("mockldap_ops")
	Seeds   = expvar.NewMap("mockldap_seeds")
	General = expvar.NewMap("mockldap")
)

// Stringer adapts a plain string to the expvar.Var interface.
type Stringer string

func (s Stringer) String() string {
	return fmt.Sprintf("%q", string(s))
}
