// Package password verifies candidate credentials against stored directory
// values. Stored values carry an optional {SCHEME} prefix (RFC 3112 style);
// a value with no prefix compares as plaintext, and a prefix the package
// does not know never falls back to a literal comparison.
package password

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"hash"
	"strings"

	"github.com/tredoe/osutil/user/crypt"
	"golang.org/x/crypto/bcrypt"

	// register crypt functions
	_ "github.com/tredoe/osutil/user/crypt/apr1_crypt"
	_ "github.com/tredoe/osutil/user/crypt/md5_crypt"
	_ "github.com/tredoe/osutil/user/crypt/sha256_crypt"
	_ "github.com/tredoe/osutil/user/crypt/sha512_crypt"
)

// Scheme prefixes recognized in stored values.
const (
	SchemeCrypt   = "{CRYPT}"
	SchemeSSHA    = "{SSHA}"
	SchemeSHA     = "{SHA}"
	SchemeSSHA256 = "{SSHA256}"
	SchemeSHA256  = "{SHA256}"
	SchemeBcrypt  = "{BCRYPT}"
)

// Verification errors.
var (
	// ErrMismatch is returned when the candidate does not match.
	ErrMismatch = errors.New("password: mismatch")
	// ErrUnsupportedScheme is returned for a tagged value whose scheme is
	// not implemented; it means mismatch, never plaintext fallback.
	ErrUnsupportedScheme = errors.New("password: unsupported scheme")
	// ErrMalformed is returned when a stored value cannot be decoded.
	ErrMalformed = errors.New("password: malformed stored value")
)

// Verify compares a plaintext candidate against a stored value, dispatching
// on the stored value's scheme tag. It returns nil exactly when the
// candidate matches.
func Verify(plaintext, stored string) error {
	if !strings.HasPrefix(stored, "{") {
		return verifyPlain(plaintext, stored)
	}
	end := strings.Index(stored, "}")
	if end < 0 {
		return verifyPlain(plaintext, stored)
	}

	scheme := strings.ToUpper(stored[:end+1])
	rest := stored[end+1:]

	switch scheme {
	case SchemeCrypt:
		return verifyCrypt(plaintext, rest)
	case SchemeSSHA:
		return verifySalted(plaintext, rest, sha1.New, sha1.Size)
	case SchemeSHA:
		return verifyDigest(plaintext, rest, sha1.New, sha1.Size)
	case SchemeSSHA256:
		return verifySalted(plaintext, rest, sha256.New, sha256.Size)
	case SchemeSHA256:
		return verifyDigest(plaintext, rest, sha256.New, sha256.Size)
	case SchemeBcrypt:
		if bcrypt.CompareHashAndPassword([]byte(rest), []byte(plaintext)) != nil {
			return ErrMismatch
		}
		return nil
	default:
		return ErrUnsupportedScheme
	}
}

// Matches reports whether Verify succeeds.
func Matches(plaintext, stored string) bool {
	return Verify(plaintext, stored) == nil
}

func verifyPlain(plaintext, stored string) error {
	if subtle.ConstantTimeCompare([]byte(plaintext), []byte(stored)) == 1 {
		return nil
	}
	return ErrMismatch
}

// verifyCrypt re-derives the modular-crypt hash using the salt and
// parameters embedded in the stored value. The crypt library panics on
// formats it does not register, which counts as a mismatch here.
func verifyCrypt(plaintext, hash string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = ErrMismatch
		}
	}()

	c := crypt.NewFromHash(hash)
	if c.Verify(hash, []byte(plaintext)) != nil {
		return ErrMismatch
	}
	return nil
}

// verifySalted handles the salted digest schemes: the stored value decodes
// to digest||salt, and the digest is hash(plaintext||salt).
func verifySalted(plaintext, encoded string, newHash func() hash.Hash, size int) error {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(raw) < size {
		return ErrMalformed
	}
	digest, salt := raw[:size], raw[size:]

	h := newHash()
	h.Write([]byte(plaintext))
	h.Write(salt)
	if subtle.ConstantTimeCompare(h.Sum(nil), digest) == 1 {
		return nil
	}
	return ErrMismatch
}

// verifyDigest handles the unsalted digest schemes.
func verifyDigest(plaintext, encoded string, newHash func() hash.Hash, size int) error {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(raw) != size {
		return ErrMalformed
	}
	h := newHash()
	h.Write([]byte(plaintext))
	if subtle.ConstantTimeCompare(h.Sum(nil), raw) == 1 {
		return nil
	}
	return ErrMismatch
}

// HashSSHA builds an {SSHA} value for the given password and salt, which is
// handy for seeding test trees.
func HashSSHA(plaintext string, salt []byte) string {
	h := sha1.New()
	h.Write([]byte(plaintext))
	h.Write(salt)
	return SchemeSSHA + base64.StdEncoding.EncodeToString(append(h.Sum(nil), salt...))
}

// HashSSHA256 builds an {SSHA256} value for the given password and salt.
func HashSSHA256(plaintext string, salt []byte) string {
	h := sha256.New()
	h.Write([]byte(plaintext))
	h.Write(salt)
	return SchemeSSHA256 + base64.StdEncoding.EncodeToString(append(h.Sum(nil), salt...))
}

// HashSHA builds a {SHA} value for the given password.
func HashSHA(plaintext string) string {
	sum := sha1.Sum([]byte(plaintext))
	return SchemeSHA + base64.StdEncoding.EncodeToString(sum[:])
}
