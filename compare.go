package mockldap

import (
	"context"
	"strings"
	"time"

	"github.com/hbog/mockldap/pkg/dn"
	"github.com/hbog/mockldap/pkg/password"
	"github.com/hbog/mockldap/pkg/stats"
)

// Compare reports whether the entry at dnStr carries value for attr. The
// configured password attribute compares through the password verifier, so
// a plaintext credential matches its hashed stored form. A missing
// attribute compares false; a missing entry is an error.
func (c *Conn) Compare(dnStr, attr, value string) (result bool, err error) {
	_, span := c.tracer.Start(context.Background(), "mockldap.Conn.Compare")
	defer span.End()

	c.record("Compare", dnStr, attr, value)

	start := time.Now()
	defer func() { c.observe("compare", start, err) }()

	c.bump("compare")
	c.log.Debug().Str("dn", dnStr).Str("attribute", attr).Msg("Compare request")

	result, err = c.compareValues(dnStr, attr, value)
	if err == nil {
		stats.Ops.Add("compare_successes", 1)
	}
	return result, err
}

// compareValues is the engine behind Compare and the credential check in
// Bind. It does not record or count; only the public operations do.
func (c *Conn) compareValues(rawDN, attr, value string) (bool, error) {
	d, err := dn.Parse(rawDN)
	if err != nil {
		return false, newError(ResultInvalidDNSyntax, "compare target %q: %v", rawDN, err)
	}

	entry, ok := c.store.Get(d.Canonical())
	if !ok {
		return false, newError(ResultNoSuchObject, "no entry for %q", rawDN)
	}

	values := entry.Values(attr)

	if strings.EqualFold(attr, c.passwordAttribute) {
		for _, stored := range values {
			if password.Matches(value, stored) {
				return true, nil
			}
		}
		return false, nil
	}

	for _, v := range values {
		if v == value {
			return true, nil
		}
	}
	return false, nil
}
