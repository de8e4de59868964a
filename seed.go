package mockldap

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hbog/mockldap/pkg/directory"
	"github.com/hbog/mockldap/pkg/dn"
	"github.com/hbog/mockldap/pkg/stats"
)

// seedKey builds the lookup key for a canned search outcome. The base DN is
// canonicalized when it parses, so seeding and searching may differ in case;
// the attribute list is order-insensitive.
func seedKey(req SearchRequest) string {
	base := strings.ToLower(req.BaseDN)
	if d, err := dn.Parse(req.BaseDN); err == nil {
		base = d.Canonical()
	}

	attrs := append([]string(nil), req.Attributes...)
	sort.Strings(attrs)

	return fmt.Sprintf("%s|%d|%s|%s|%t", base, req.Scope, req.Filter, strings.Join(attrs, ","), req.TypesOnly)
}

// SeedSearchResult registers entries as the canned outcome for req. Canned
// outcomes are consulted only when the filter engine reports an unsupported
// form; supported filters always evaluate against the live tree.
func (c *Conn) SeedSearchResult(req SearchRequest, entries []SearchEntry) {
	stats.Seeds.Add("seeded_results", 1)
	c.seededResults[seedKey(req)] = cloneEntries(entries)
}

// SeedSearchError registers err as the canned outcome for req.
func (c *Conn) SeedSearchError(req SearchRequest, err error) {
	stats.Seeds.Add("seeded_errors", 1)
	c.seededErrors[seedKey(req)] = err
}

func (c *Conn) seededOutcome(req SearchRequest) (entries []SearchEntry, err error, ok bool) {
	key := seedKey(req)
	if err, ok := c.seededErrors[key]; ok {
		return nil, err, true
	}
	if entries, ok := c.seededResults[key]; ok {
		return cloneEntries(entries), nil, true
	}
	return nil, nil, false
}

// cloneEntries detaches result collections so neither the seed table nor a
// caller can mutate the other's copy.
func cloneEntries(entries []SearchEntry) []SearchEntry {
	if entries == nil {
		return nil
	}
	out := make([]SearchEntry, len(entries))
	for i, e := range entries {
		attrs := make(directory.Attributes, len(e.Attributes))
		for name, values := range e.Attributes {
			attrs[name] = append([]string(nil), values...)
		}
		out[i] = SearchEntry{DN: e.DN, Attributes: attrs}
	}
	return out
}
