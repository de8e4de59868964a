// Package mockldap emulates an LDAP connection entirely in memory. A Conn
// reproduces the request/response semantics of bind, search, compare,
// modify, add, delete, rename and password-change against a seeded tree of
// entries, with the exact result codes a live server would produce, so that
// client code written against the protocol can be exercised deterministically
// in tests. There is no network, no real server and no concurrency: every
// operation runs to completion on the caller's goroutine, and concurrent
// callers must serialize externally.
//
// Each Conn records the operations invoked on it, so a test can assert which
// calls were made and with which arguments. Filter forms the engine does not
// evaluate (substring wildcards, approximate, extensible, ranges) escalate to
// a caller-seeded canned outcome instead of being silently mis-evaluated.
package mockldap

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/hbog/mockldap/internal/version"
	"github.com/hbog/mockldap/pkg/directory"
	"github.com/hbog/mockldap/pkg/filter"
	"github.com/hbog/mockldap/pkg/monitoring"
	"github.com/hbog/mockldap/pkg/password"
	"github.com/hbog/mockldap/pkg/stats"
)

const instrumentationName = "github.com/hbog/mockldap"

// DefaultPasswordAttribute is the reserved credential attribute unless the
// PasswordAttribute option overrides it.
const DefaultPasswordAttribute = "userPassword"

// Conn is one emulated connection: the entry store plus the session state a
// connection owns (bound identity, TLS flag, options), the async search
// ticket table, the call recorder and the seeded-outcome table.
type Conn struct {
	store *directory.Store

	passwordAttribute  string
	otpSecretAttribute string

	bound      bool
	boundAs    string
	tlsEnabled bool
	options    map[string]any

	asyncResults [][]SearchEntry

	seededResults map[string][]SearchEntry
	seededErrors  map[string]error

	calls []Call

	// counts feeds the monitoring watcher, which polls from its own
	// goroutine; everything else on Conn is single-threaded by contract.
	countsMu sync.Mutex
	counts   map[string]uint64

	eval filter.Evaluator

	log     *zerolog.Logger
	monitor monitoring.MonitorInterface
	tracer  trace.Tracer
}

// New builds an emulated connection over a deep copy of seed, so later
// operations never alias caller-owned data. Seed DNs must parse and be
// case-insensitively unique.
func New(seed directory.Directory, opts ...Option) (*Conn, error) {
	options := newOptions(opts...)

	store, err := directory.New(seed)
	if err != nil {
		return nil, err
	}

	c := &Conn{
		store:              store,
		passwordAttribute:  DefaultPasswordAttribute,
		otpSecretAttribute: options.OTPSecretAttribute,
		options:            make(map[string]any),
		seededResults:      make(map[string][]SearchEntry),
		seededErrors:       make(map[string]error),
		counts:             make(map[string]uint64),
		monitor:            options.Monitor,
	}

	if options.PasswordAttribute != "" {
		c.passwordAttribute = options.PasswordAttribute
	}

	if options.Logger != nil {
		c.log = options.Logger
	} else {
		nop := zerolog.Nop()
		c.log = &nop
	}

	if options.Tracer != nil {
		c.tracer = options.Tracer
	} else {
		c.tracer = noop.NewTracerProvider().Tracer(instrumentationName)
	}

	c.eval = filter.Evaluator{
		PasswordAttribute: c.passwordAttribute,
		VerifyPassword:    password.Matches,
	}

	stats.General.Add("connections", 1)
	stats.General.Set("version", stats.Stringer(version.Version))
	c.log.Debug().Int("entries", store.Len()).Str("version", version.Version).Msg("directory emulator ready")

	return c, nil
}

// Unbind clears the bound identity. The emulator keeps serving operations
// afterwards; it does not enforce authorization.
func (c *Conn) Unbind() {
	_, span := c.tracer.Start(context.Background(), "mockldap.Conn.Unbind")
	defer span.End()

	c.record("Unbind")
	c.bump("unbind")

	c.bound = false
	c.boundAs = ""
	c.log.Debug().Msg("Unbind request")
}

// WhoAmI returns the session's authorization identity in the "dn:" form the
// protocol's extended operation uses, or the empty string when unbound. The
// anonymous session reports "dn:".
func (c *Conn) WhoAmI() string {
	c.record("WhoAmI")
	c.bump("whoami")

	if !c.bound {
		return ""
	}
	return "dn:" + c.boundAs
}

// StartTLS flips the TLS flag. No negotiation happens; the flag exists so
// client code that insists on StartTLS before binding can be exercised.
func (c *Conn) StartTLS() {
	c.record("StartTLS")
	c.bump("starttls")

	c.tlsEnabled = true
	c.log.Debug().Msg("StartTLS request")
}

// SetOption stores a connection option.
func (c *Conn) SetOption(key string, value any) {
	c.record("SetOption", key, value)
	c.bump("setoption")

	c.options[key] = value
}

// GetOption returns a previously set connection option, or ErrOptionNotSet.
func (c *Conn) GetOption(key string) (any, error) {
	c.record("GetOption", key)
	c.bump("getoption")

	value, ok := c.options[key]
	if !ok {
		return nil, ErrOptionNotSet
	}
	return value, nil
}

// BoundAs returns the identity of the last successful bind and whether the
// session is bound at all. The anonymous bind yields ("", true).
func (c *Conn) BoundAs() (string, bool) {
	return c.boundAs, c.bound
}

// TLSEnabled reports whether StartTLS was called on this session.
func (c *Conn) TLSEnabled() bool {
	return c.tlsEnabled
}

// Entries returns a detached snapshot of the current tree keyed by display
// DN, for end-of-test assertions. Mutating the snapshot does not touch the
// store.
func (c *Conn) Entries() directory.Directory {
	out := make(directory.Directory, c.store.Len())
	for _, key := range c.store.Keys() {
		entry, ok := c.store.Get(key)
		if !ok {
			continue
		}
		out[c.store.DisplayDN(key)] = entry.AttributeMap()
	}
	return out
}

// OperationCounts reports how many times each operation ran. It satisfies
// the monitoring watcher's stats source.
func (c *Conn) OperationCounts() map[string]uint64 {
	c.countsMu.Lock()
	defer c.countsMu.Unlock()

	out := make(map[string]uint64, len(c.counts))
	for op, n := range c.counts {
		out[op] = n
	}
	return out
}

func (c *Conn) bump(op string) {
	c.countsMu.Lock()
	c.counts[op]++
	c.countsMu.Unlock()

	stats.Ops.Add(op+"_reqs", 1)
}

func (c *Conn) observe(op string, start time.Time, err error) {
	if c.monitor == nil {
		return
	}
	c.monitor.SetResponseTimeMetric(
		map[string]string{"operation": op, "status": fmt.Sprintf("%d", resultCodeOf(err))},
		time.Since(start).Seconds(),
	)
}
