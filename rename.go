package mockldap

import (
	"context"
	"strings"
	"time"

	"github.com/hbog/mockldap/pkg/dn"
	"github.com/hbog/mockldap/pkg/stats"
)

// Rename moves the entry at dnStr to newRDN, under newSuperior when given
// and under its current parent otherwise. newRDN must be a single
// attribute=value component.
//
// The entry's attributes follow modifyDN semantics: the old RDN value
// leaves the entry, the whole attribute going with it unless it renames
// onto itself or other values keep it alive, and the new RDN value joins
// its attribute.
func (c *Conn) Rename(dnStr, newRDN, newSuperior string) (result ResponseType, err error) {
	_, span := c.tracer.Start(context.Background(), "mockldap.Conn.Rename")
	defer span.End()

	c.record("Rename", dnStr, newRDN, newSuperior)

	start := time.Now()
	defer func() { c.observe("rename", start, err) }()

	c.bump("rename")
	c.log.Debug().Str("dn", dnStr).Str("newrdn", newRDN).Str("newsuperior", newSuperior).Msg("Rename request")

	old, err := dn.Parse(dnStr)
	if err != nil {
		return 0, newError(ResultInvalidDNSyntax, "rename target %q: %v", dnStr, err)
	}
	if old.IsZero() {
		return 0, newError(ResultInvalidDNSyntax, "rename target cannot be the empty DN")
	}

	rdn, err := dn.Parse(newRDN)
	if err != nil {
		return 0, newError(ResultInvalidDNSyntax, "new rdn %q: %v", newRDN, err)
	}
	if len(rdn.RDNs) != 1 || len(rdn.First().Attributes) != 1 {
		return 0, newError(ResultInvalidDNSyntax, "new rdn %q is not a single attribute=value component", newRDN)
	}

	parent := old.Parent()
	if newSuperior != "" {
		parent, err = dn.Parse(newSuperior)
		if err != nil {
			return 0, newError(ResultInvalidDNSyntax, "new superior %q: %v", newSuperior, err)
		}
	}

	oldKey := old.Canonical()
	entry, ok := c.store.Get(oldKey)
	if !ok {
		return 0, newError(ResultNoSuchObject, "no entry for %q", dnStr)
	}

	moved := &dn.DN{RDNs: append([]*dn.RelativeDN{rdn.First()}, parent.RDNs...)}
	newKey := moved.Canonical()
	if c.store.Contains(newKey) {
		return 0, newError(ResultEntryAlreadyExists, "entry %q already exists", moved.String())
	}

	oldAVA := old.First().Attributes[0]
	newAVA := rdn.First().Attributes[0]

	if strings.EqualFold(oldAVA.Type, newAVA.Type) || len(entry.Values(oldAVA.Type)) > 1 {
		entry.RemoveValues(oldAVA.Type, oldAVA.Value)
	} else {
		entry.Remove(oldAVA.Type)
	}
	entry.Add(newAVA.Type, newAVA.Value)

	c.store.Remove(oldKey)
	c.store.Put(newKey, moved.String(), entry)

	stats.Ops.Add("rename_successes", 1)
	return ResponseModifyDN, nil
}
