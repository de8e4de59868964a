package mockldap

import (
	"context"
	"time"

	"github.com/hbog/mockldap/pkg/directory"
	"github.com/hbog/mockldap/pkg/dn"
	"github.com/hbog/mockldap/pkg/stats"
)

// Add inserts a new entry at dnStr built from attrs. The existence check
// runs on the canonical DN, so a DN differing from a present entry only in
// case or spacing already exists. Value lists are deduplicated on the way
// in.
func (c *Conn) Add(dnStr string, attrs directory.Attributes) (result ResponseType, err error) {
	_, span := c.tracer.Start(context.Background(), "mockldap.Conn.Add")
	defer span.End()

	c.record("Add", dnStr, attrs)

	start := time.Now()
	defer func() { c.observe("add", start, err) }()

	c.bump("add")
	c.log.Debug().Str("dn", dnStr).Msg("Add request")

	d, err := dn.Parse(dnStr)
	if err != nil {
		return 0, newError(ResultInvalidDNSyntax, "add target %q: %v", dnStr, err)
	}

	key := d.Canonical()
	if c.store.Contains(key) {
		return 0, newError(ResultEntryAlreadyExists, "entry %q already exists", dnStr)
	}

	c.store.Put(key, dnStr, directory.EntryFromAttributes(attrs))

	stats.Ops.Add("add_successes", 1)
	stats.General.Add("entries_added", 1)
	return ResponseAdd, nil
}
