// Package dn parses and compares LDAP distinguished names as defined by
// RFC 4514. Parsing handles escaped special characters, hex-pair escapes
// and BER-encoded hexstring values (the "attr=#..." form). Comparisons are
// case-insensitive over both attribute types and values, which is what
// directory scope and equality checks require.
package dn

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	ber "github.com/go-asn1-ber/asn1-ber"
)

// AttributeTypeAndValue is one attribute=value pair inside a relative DN.
type AttributeTypeAndValue struct {
	Type  string
	Value string
}

// RelativeDN is a single DN component, usually one attribute=value pair but
// possibly several joined by '+'.
type RelativeDN struct {
	Attributes []*AttributeTypeAndValue
}

// DN is a parsed distinguished name, leftmost (deepest) RDN first.
type DN struct {
	RDNs []*RelativeDN
}

// Parse parses an RFC 4514 string representation of a distinguished name.
// The empty string parses to the empty DN. A string that cannot be decoded
// never yields a DN.
func Parse(s string) (*DN, error) {
	d := &DN{}
	rdn := &RelativeDN{}
	attr := &AttributeTypeAndValue{}
	var buf bytes.Buffer
	haveType := false
	escaping := false

	push := func(last byte) error {
		if !haveType {
			return fmt.Errorf("dn: incomplete type, value pair before %q", last)
		}
		attr.Value = buf.String()
		buf.Reset()
		rdn.Attributes = append(rdn.Attributes, attr)
		attr = &AttributeTypeAndValue{}
		haveType = false
		if last == ',' {
			d.RDNs = append(d.RDNs, rdn)
			rdn = &RelativeDN{}
		}
		return nil
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaping:
			escaping = false
			switch c {
			case ' ', '"', '#', '+', ',', ';', '<', '=', '>', '\\':
				buf.WriteByte(c)
				continue
			}
			// Anything else must be a hex-encoded octet.
			if i+1 >= len(s) {
				return nil, fmt.Errorf("dn: truncated escape sequence")
			}
			b, err := hex.DecodeString(s[i : i+2])
			if err != nil {
				return nil, fmt.Errorf("dn: invalid escape sequence %q", s[i:i+2])
			}
			buf.WriteByte(b[0])
			i++
		case c == '\\':
			escaping = true
		case c == '=' && !haveType:
			attr.Type = buf.String()
			buf.Reset()
			haveType = true
			if attr.Type == "" {
				return nil, fmt.Errorf("dn: empty attribute type")
			}
			// A value starting with '#' is a hex-encoded BER value; decode
			// it in one step rather than byte by byte.
			if i+1 < len(s) && s[i+1] == '#' {
				i += 2
				rest := s[i:]
				if j := strings.IndexAny(rest, ",+"); j >= 0 {
					rest = rest[:j]
				}
				if rest == "" {
					return nil, fmt.Errorf("dn: empty hexstring value")
				}
				raw, err := hex.DecodeString(rest)
				if err != nil {
					return nil, fmt.Errorf("dn: invalid hexstring value: %w", err)
				}
				pkt := ber.DecodePacket(raw)
				if pkt == nil || pkt.Data == nil {
					return nil, fmt.Errorf("dn: undecodable hexstring value")
				}
				buf.WriteString(pkt.Data.String())
				i += len(rest) - 1
			}
		case c == ',' || c == '+':
			if err := push(c); err != nil {
				return nil, err
			}
		default:
			buf.WriteByte(c)
		}
	}

	switch {
	case escaping:
		return nil, fmt.Errorf("dn: truncated escape sequence")
	case haveType:
		attr.Value = buf.String()
		rdn.Attributes = append(rdn.Attributes, attr)
		d.RDNs = append(d.RDNs, rdn)
	case buf.Len() > 0:
		return nil, fmt.Errorf("dn: incomplete type, value pair %q", buf.String())
	case len(rdn.Attributes) > 0:
		return nil, fmt.Errorf("dn: trailing '+' separator")
	case len(d.RDNs) > 0:
		return nil, fmt.Errorf("dn: trailing ',' separator")
	}
	return d, nil
}

// Equal reports whether a names the same attribute type and value as other,
// ignoring case on both.
func (a *AttributeTypeAndValue) Equal(other *AttributeTypeAndValue) bool {
	return strings.EqualFold(a.Type, other.Type) &&
		strings.EqualFold(a.Value, other.Value)
}

// Equal reports whether two relative DNs carry the same attribute set,
// regardless of order and case.
func (r *RelativeDN) Equal(other *RelativeDN) bool {
	if len(r.Attributes) != len(other.Attributes) {
		return false
	}
	return r.contains(other) && other.contains(r)
}

func (r *RelativeDN) contains(other *RelativeDN) bool {
	for _, want := range other.Attributes {
		found := false
		for _, have := range r.Attributes {
			if have.Equal(want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Equal reports whether two DNs name the same entry.
func (d *DN) Equal(other *DN) bool {
	if len(d.RDNs) != len(other.RDNs) {
		return false
	}
	for i := range d.RDNs {
		if !d.RDNs[i].Equal(other.RDNs[i]) {
			return false
		}
	}
	return true
}

// IsSuffixOf reports whether d sits at or below base: d's trailing
// len(base) components equal base's components. Every DN is a suffix of the
// empty DN.
func (d *DN) IsSuffixOf(base *DN) bool {
	n := len(base.RDNs)
	if len(d.RDNs) < n {
		return false
	}
	off := len(d.RDNs) - n
	for i := 0; i < n; i++ {
		if !d.RDNs[off+i].Equal(base.RDNs[i]) {
			return false
		}
	}
	return true
}

// ImmediateChildOf reports whether d, minus its leading component, equals
// base. The base itself does not qualify.
func (d *DN) ImmediateChildOf(base *DN) bool {
	if len(d.RDNs) != len(base.RDNs)+1 {
		return false
	}
	return d.Parent().Equal(base)
}

// Parent returns d without its leading RDN. The parent of a single-component
// or empty DN is the empty DN.
func (d *DN) Parent() *DN {
	if len(d.RDNs) <= 1 {
		return &DN{}
	}
	return &DN{RDNs: d.RDNs[1:]}
}

// First returns the leading RDN, or nil for the empty DN.
func (d *DN) First() *RelativeDN {
	if len(d.RDNs) == 0 {
		return nil
	}
	return d.RDNs[0]
}

// IsZero reports whether d has no components.
func (d *DN) IsZero() bool { return len(d.RDNs) == 0 }

// String reassembles the DN in RFC 4514 form, re-escaping special
// characters but otherwise preserving the parsed case.
func (d *DN) String() string {
	parts := make([]string, 0, len(d.RDNs))
	for _, r := range d.RDNs {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, ",")
}

// String reassembles one relative DN, joining multi-valued components
// with '+'.
func (r *RelativeDN) String() string {
	parts := make([]string, 0, len(r.Attributes))
	for _, a := range r.Attributes {
		parts = append(parts, a.Type+"="+escapeValue(a.Value))
	}
	return strings.Join(parts, "+")
}

// Canonical returns the lower-cased string form. Two DNs that are Equal
// always share one canonical form, which makes it usable as a
// case-insensitive map key and a stable sort key.
func (d *DN) Canonical() string {
	return strings.ToLower(d.String())
}

func escapeValue(v string) string {
	var b strings.Builder
	for i := 0; i < len(v); i++ {
		c := v[i]
		switch c {
		case ',', '+', '"', ';', '<', '>', '=', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '#':
			if i == 0 {
				b.WriteByte('\\')
			}
			b.WriteByte(c)
		case ' ':
			if i == 0 || i == len(v)-1 {
				b.WriteByte('\\')
			}
			b.WriteByte(c)
		case 0:
			b.WriteString("\\00")
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
