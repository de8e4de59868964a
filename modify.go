package mockldap

import (
	"context"
	"fmt"
	"time"

	"github.com/hbog/mockldap/pkg/directory"
	"github.com/hbog/mockldap/pkg/dn"
	"github.com/hbog/mockldap/pkg/stats"
)

// Modify applies mods to the entry at dnStr strictly in order. A failing
// mod aborts the call and leaves the effects of the mods before it in
// place; there is no rollback.
func (c *Conn) Modify(dnStr string, mods []Mod) (result ResponseType, err error) {
	_, span := c.tracer.Start(context.Background(), "mockldap.Conn.Modify")
	defer span.End()

	c.record("Modify", dnStr, mods)

	start := time.Now()
	defer func() { c.observe("modify", start, err) }()

	c.bump("modify")
	c.log.Debug().Str("dn", dnStr).Int("mods", len(mods)).Msg("Modify request")

	d, err := dn.Parse(dnStr)
	if err != nil {
		return 0, newError(ResultInvalidDNSyntax, "modify target %q: %v", dnStr, err)
	}

	entry, ok := c.store.Get(d.Canonical())
	if !ok {
		return 0, newError(ResultNoSuchObject, "no entry for %q", dnStr)
	}

	for _, mod := range mods {
		if err := applyMod(entry, mod); err != nil {
			return 0, err
		}
	}

	stats.Ops.Add("modify_successes", 1)
	return ResponseModify, nil
}

func applyMod(entry *directory.Entry, mod Mod) error {
	switch mod.Op {
	case ModifyAdd:
		if len(mod.Values) == 0 {
			return newError(ResultProtocolError, "modify add of %q carries no values", mod.Attribute)
		}
		entry.Add(mod.Attribute, mod.Values...)
	case ModifyDelete:
		if len(mod.Values) == 0 {
			entry.Remove(mod.Attribute)
		} else {
			entry.RemoveValues(mod.Attribute, mod.Values...)
		}
	case ModifyReplace:
		entry.Replace(mod.Attribute, mod.Values...)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownModifyOp, mod.Op)
	}
	return nil
}
