package filter

import "strings"

// Entry is the attribute view the evaluator needs; directory entries
// satisfy it.
type Entry interface {
	Has(attribute string) bool
	Values(attribute string) []string
}

// Evaluator evaluates parsed filter trees against entries. The zero value
// matches every attribute literally; configuring PasswordAttribute routes
// that attribute's equality tests through VerifyPassword instead, so
// hashed credentials compare the way a live server would compare them.
type Evaluator struct {
	PasswordAttribute string
	VerifyPassword    func(password, stored string) bool
}

// Matches reports whether the entry satisfies the filter tree.
func (ev Evaluator) Matches(n *Node, e Entry) bool {
	if n == nil || e == nil {
		return false
	}
	switch n.Kind {
	case KindAnd:
		// The empty AND is vacuously true, per RFC 4526.
		for _, c := range n.Children {
			if !ev.Matches(c, e) {
				return false
			}
		}
		return true
	case KindOr:
		for _, c := range n.Children {
			if ev.Matches(c, e) {
				return true
			}
		}
		return false
	case KindNot:
		if n.Child == nil {
			return false
		}
		return !ev.Matches(n.Child, e)
	case KindPresent:
		return e.Has(n.Attribute)
	case KindEquality:
		return ev.matchEquality(n, e)
	default:
		return false
	}
}

func (ev Evaluator) matchEquality(n *Node, e Entry) bool {
	values := e.Values(n.Attribute)
	if len(values) == 0 {
		return false
	}
	if ev.VerifyPassword != nil && strings.EqualFold(n.Attribute, ev.PasswordAttribute) {
		for _, stored := range values {
			if ev.VerifyPassword(n.Value, stored) {
				return true
			}
		}
		return false
	}
	for _, v := range values {
		if v == n.Value {
			return true
		}
	}
	return false
}
