package mockldap

import (
	"context"
	"time"

	"github.com/hbog/mockldap/pkg/dn"
	"github.com/hbog/mockldap/pkg/stats"
)

// ChangePassword sets the password attribute of the entry at dnStr to
// newPw. When oldPw is non-empty it must equal the first stored password
// value literally; on a mismatch the entry is left alone and the call
// still succeeds, mirroring servers that acknowledge the extended request
// without acting on it. An empty oldPw replaces unconditionally.
//
// The new password is stored as given. Binds keep working because
// verification accepts plaintext stored values.
func (c *Conn) ChangePassword(dnStr, oldPw, newPw string) (err error) {
	_, span := c.tracer.Start(context.Background(), "mockldap.Conn.ChangePassword")
	defer span.End()

	c.record("ChangePassword", dnStr, oldPw, newPw)

	start := time.Now()
	defer func() { c.observe("passwd", start, err) }()

	c.bump("passwd")
	c.log.Debug().Str("dn", dnStr).Msg("Password change request")

	d, err := dn.Parse(dnStr)
	if err != nil {
		return newError(ResultInvalidDNSyntax, "password change target %q: %v", dnStr, err)
	}

	entry, ok := c.store.Get(d.Canonical())
	if !ok {
		return newError(ResultNoSuchObject, "no entry for %q", dnStr)
	}

	if oldPw != "" {
		stored := entry.Values(c.passwordAttribute)
		if len(stored) == 0 || stored[0] != oldPw {
			c.log.Debug().Str("dn", dnStr).Msg("Password change skipped, old password mismatch")
			return nil
		}
	}

	entry.Replace(c.passwordAttribute, newPw)

	stats.Ops.Add("passwd_successes", 1)
	return nil
}
