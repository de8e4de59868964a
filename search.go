package mockldap

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hbog/mockldap/pkg/directory"
	"github.com/hbog/mockldap/pkg/dn"
	"github.com/hbog/mockldap/pkg/filter"
	"github.com/hbog/mockldap/pkg/stats"
)

// DefaultFilter stands in for an empty filter string and matches every
// entry.
const DefaultFilter = "(objectClass=*)"

// Search evaluates req immediately and parks the matches behind a message
// ID, modeling the protocol's separate issue and fetch steps. Redeem the
// ID with Result.
func (c *Conn) Search(req SearchRequest) (msgid MessageID, err error) {
	_, span := c.tracer.Start(context.Background(), "mockldap.Conn.Search")
	defer span.End()

	c.record("Search", req)

	start := time.Now()
	defer func() { c.observe("search", start, err) }()

	c.bump("search")
	c.logSearch(req)

	entries, err := c.search(req)
	if err != nil {
		return 0, err
	}

	c.asyncResults = append(c.asyncResults, entries)
	stats.Ops.Add("search_successes", 1)
	return MessageID(len(c.asyncResults) - 1), nil
}

// Result redeems a message ID handed out by Search. The first fetch
// returns the parked entries and clears the slot; a cleared or unknown ID
// yields no entries rather than an error. The timeout parameter exists for
// signature compatibility and is ignored, nothing here ever blocks.
func (c *Conn) Result(msgid MessageID, timeout time.Duration) (result ResponseType, entries []SearchEntry, err error) {
	_, span := c.tracer.Start(context.Background(), "mockldap.Conn.Result")
	defer span.End()

	c.record("Result", msgid, timeout)

	start := time.Now()
	defer func() { c.observe("result", start, err) }()

	c.bump("result")
	c.log.Debug().Int("msgid", int(msgid)).Msg("Result request")

	if msgid >= 0 && int(msgid) < len(c.asyncResults) {
		entries = c.asyncResults[msgid]
		c.asyncResults[msgid] = nil
	}

	return ResponseSearchResult, entries, nil
}

// SearchImmediate evaluates req and returns the matches directly,
// collapsing Search and Result into one call.
func (c *Conn) SearchImmediate(req SearchRequest) (entries []SearchEntry, err error) {
	_, span := c.tracer.Start(context.Background(), "mockldap.Conn.SearchImmediate")
	defer span.End()

	c.record("SearchImmediate", req)

	start := time.Now()
	defer func() { c.observe("search_immediate", start, err) }()

	c.bump("search_immediate")
	c.logSearch(req)

	entries, err = c.search(req)
	if err == nil {
		stats.Ops.Add("search_successes", 1)
	}
	return entries, err
}

func (c *Conn) logSearch(req SearchRequest) {
	c.log.Debug().
		Str("basedn", req.BaseDN).
		Str("scope", req.Scope.String()).
		Str("filter", req.Filter).
		Msg("Search request")
}

// search runs the full pipeline: base check, scope cut, filter match,
// attribute projection. Results come back ordered by canonical DN.
func (c *Conn) search(req SearchRequest) ([]SearchEntry, error) {
	base, err := dn.Parse(req.BaseDN)
	if err != nil {
		return nil, newError(ResultInvalidDNSyntax, "search base %q: %v", req.BaseDN, err)
	}

	// The base has to exist before any filtering happens, whatever the
	// filter would have matched.
	if !c.store.Contains(base.Canonical()) {
		return nil, &Error{Code: ResultNoSuchObject, MatchedDN: base.String(), Msg: fmt.Sprintf("search base %q not found", req.BaseDN)}
	}

	var inScope func(*dn.DN) bool
	switch req.Scope {
	case ScopeBaseObject:
		inScope = base.Equal
	case ScopeSingleLevel:
		inScope = func(candidate *dn.DN) bool { return candidate.ImmediateChildOf(base) }
	case ScopeWholeSubtree:
		inScope = func(candidate *dn.DN) bool { return candidate.IsSuffixOf(base) }
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownScope, req.Scope)
	}

	filterStr := req.Filter
	if filterStr == "" {
		filterStr = DefaultFilter
	}

	node, err := filter.Parse(filterStr)
	if err != nil {
		var unsupported *filter.UnsupportedError
		if errors.As(err, &unsupported) {
			if entries, seedErr, ok := c.seededOutcome(req); ok {
				stats.Seeds.Add("seed_hits", 1)
				return entries, seedErr
			}
			stats.Seeds.Add("seed_misses", 1)
			return nil, &SeedRequiredError{Op: "search", Request: describeSearch(req), Err: err}
		}
		return nil, newError(ResultProtocolError, "search filter %q: %v", filterStr, err)
	}

	out := []SearchEntry{}
	for _, key := range c.store.Keys() {
		candidate, err := dn.Parse(key)
		if err != nil {
			continue
		}
		if !inScope(candidate) {
			continue
		}
		entry, ok := c.store.Get(key)
		if !ok || !c.eval.Matches(node, entry) {
			continue
		}
		out = append(out, SearchEntry{DN: c.store.DisplayDN(key), Attributes: c.project(entry, req)})
	}

	return out, nil
}

// project builds the attribute map a result entry carries: a deep copy of
// the stored attributes, cut down to the requested names when an allow-list
// is present. Name matching is case-insensitive but the stored spelling is
// what comes back. With TypesOnly set every value list is empty.
func (c *Conn) project(entry *directory.Entry, req SearchRequest) directory.Attributes {
	attrs := entry.AttributeMap()

	if req.Attributes != nil {
		allowed := make(map[string]struct{}, len(req.Attributes))
		for _, name := range req.Attributes {
			allowed[strings.ToLower(name)] = struct{}{}
		}
		for name := range attrs {
			if _, ok := allowed[strings.ToLower(name)]; !ok {
				delete(attrs, name)
			}
		}
	}

	if req.TypesOnly {
		for name := range attrs {
			attrs[name] = []string{}
		}
	}

	return attrs
}

func describeSearch(req SearchRequest) string {
	return fmt.Sprintf("base=%q scope=%s filter=%q", req.BaseDN, req.Scope, req.Filter)
}
