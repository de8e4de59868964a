package mockldap

import (
	"context"
	"time"

	"github.com/pquerna/otp/totp"

	"github.com/hbog/mockldap/pkg/dn"
	"github.com/hbog/mockldap/pkg/stats"
)

// Bind authenticates the session as bindDN. The empty DN with an empty
// credential is the anonymous bind and always succeeds. Any other failure,
// including an unknown DN, surfaces as invalid credentials carrying
// "dn:credential" in its message.
//
// When an OTP secret attribute is configured and the target entry holds a
// secret, the last six characters of bindSimplePw must be a valid TOTP
// token and the remainder is checked as the password.
func (c *Conn) Bind(bindDN, bindSimplePw string) (result ResponseType, err error) {
	_, span := c.tracer.Start(context.Background(), "mockldap.Conn.Bind")
	defer span.End()

	c.record("Bind", bindDN, bindSimplePw)

	start := time.Now()
	defer func() { c.observe("bind", start, err) }()

	c.bump("bind")
	c.log.Debug().Str("binddn", bindDN).Msg("Bind request")

	// Special case: bind anonymously
	if bindDN == "" && bindSimplePw == "" {
		c.bound = true
		c.boundAs = ""
		stats.Ops.Add("bind_successes", 1)
		c.log.Debug().Msg("Anonymous bind success")
		return ResponseBind, nil
	}

	pw := bindSimplePw

	if c.otpSecretAttribute != "" {
		if secret, ok := c.otpSecret(bindDN); ok {
			validotp := false
			if len(pw) > 6 {
				otp := pw[len(pw)-6:]
				if totp.Validate(otp, secret) {
					pw = pw[:len(pw)-6]
					validotp = true
				}
			}
			if !validotp {
				c.log.Debug().Str("binddn", bindDN).Msg("Invalid OTP token")
				return 0, newError(ResultInvalidCredentials, "%s:%s", bindDN, bindSimplePw)
			}
		}
	}

	// A missing entry is a failed bind, not a lookup error.
	ok, cmpErr := c.compareValues(bindDN, c.passwordAttribute, pw)
	if cmpErr != nil || !ok {
		c.log.Debug().Str("binddn", bindDN).Msg("Invalid credentials")
		return 0, newError(ResultInvalidCredentials, "%s:%s", bindDN, bindSimplePw)
	}

	c.bound = true
	c.boundAs = bindDN
	stats.Ops.Add("bind_successes", 1)
	c.log.Debug().Str("binddn", bindDN).Msg("Bind success")
	return ResponseBind, nil
}

// otpSecret looks up the configured OTP secret attribute on the entry at
// rawDN. Absent entries and absent attributes both report no secret, which
// turns OTP checking off for that bind.
func (c *Conn) otpSecret(rawDN string) (string, bool) {
	d, err := dn.Parse(rawDN)
	if err != nil {
		return "", false
	}
	entry, ok := c.store.Get(d.Canonical())
	if !ok {
		return "", false
	}
	secrets := entry.Values(c.otpSecretAttribute)
	if len(secrets) == 0 {
		return "", false
	}
	return secrets[0], true
}
