// Package filter parses and evaluates the LDAP search filter subset the
// emulator supports: equality, presence, AND, OR and NOT. Everything else
// in RFC 4515 (substrings, ordering, approximate and extensible matching)
// is deliberately reported as unsupported so callers can fall back to a
// pre-seeded response instead of getting a silently wrong match.
package filter

// Kind tags a filter tree node.
type Kind int

const (
	// KindEquality is (attr=value).
	KindEquality Kind = iota
	// KindPresent is (attr=*).
	KindPresent
	// KindAnd is (&(f1)(f2)...).
	KindAnd
	// KindOr is (|(f1)(f2)...).
	KindOr
	// KindNot is (!(f)).
	KindNot
)

// String returns the grammar name of the node kind.
func (k Kind) String() string {
	switch k {
	case KindEquality:
		return "equality"
	case KindPresent:
		return "present"
	case KindAnd:
		return "and"
	case KindOr:
		return "or"
	case KindNot:
		return "not"
	default:
		return "unknown"
	}
}

// Node is one node of a parsed filter tree. A tree is stateless and can be
// evaluated against any number of entries.
type Node struct {
	Kind      Kind
	Attribute string  // equality, present
	Value     string  // equality
	Children  []*Node // and, or
	Child     *Node   // not
}

// Equality builds an (attr=value) node.
func Equality(attribute, value string) *Node {
	return &Node{Kind: KindEquality, Attribute: attribute, Value: value}
}

// Present builds an (attr=*) node.
func Present(attribute string) *Node {
	return &Node{Kind: KindPresent, Attribute: attribute}
}

// And builds an (&...) node.
func And(children ...*Node) *Node {
	return &Node{Kind: KindAnd, Children: children}
}

// Or builds an (|...) node.
func Or(children ...*Node) *Node {
	return &Node{Kind: KindOr, Children: children}
}

// Not builds a (!...) node.
func Not(child *Node) *Node {
	return &Node{Kind: KindNot, Child: child}
}

// String re-serializes the node in filter syntax.
func (n *Node) String() string {
	switch n.Kind {
	case KindEquality:
		return "(" + n.Attribute + "=" + n.Value + ")"
	case KindPresent:
		return "(" + n.Attribute + "=*)"
	case KindAnd, KindOr:
		op := "&"
		if n.Kind == KindOr {
			op = "|"
		}
		s := "(" + op
		for _, c := range n.Children {
			s += c.String()
		}
		return s + ")"
	case KindNot:
		return "(!" + n.Child.String() + ")"
	default:
		return "(?)"
	}
}
