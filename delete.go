package mockldap

import (
	"context"
	"time"

	"github.com/hbog/mockldap/pkg/dn"
	"github.com/hbog/mockldap/pkg/stats"
)

// Delete removes the entry at dnStr. Children of the entry are not
// touched; the tree is flat keyed storage and no subtree semantics apply.
func (c *Conn) Delete(dnStr string) (result ResponseType, err error) {
	_, span := c.tracer.Start(context.Background(), "mockldap.Conn.Delete")
	defer span.End()

	c.record("Delete", dnStr)

	start := time.Now()
	defer func() { c.observe("delete", start, err) }()

	c.bump("delete")
	c.log.Debug().Str("dn", dnStr).Msg("Delete request")

	d, err := dn.Parse(dnStr)
	if err != nil {
		return 0, newError(ResultInvalidDNSyntax, "delete target %q: %v", dnStr, err)
	}

	if !c.store.Remove(d.Canonical()) {
		return 0, newError(ResultNoSuchObject, "no entry for %q", dnStr)
	}

	stats.Ops.Add("delete_successes", 1)
	stats.General.Add("entries_deleted", 1)
	return ResponseDelete, nil
}
