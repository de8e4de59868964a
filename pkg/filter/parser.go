package filter

import (
	"errors"
	"fmt"
	"strings"
)

// Syntax errors. These mean the expression is broken, as opposed to being a
// well-formed filter the emulator does not implement.
var (
	ErrEmptyFilter      = errors.New("filter: empty filter")
	ErrInvalidFilter    = errors.New("filter: invalid filter syntax")
	ErrUnbalancedParens = errors.New("filter: unbalanced parentheses")
	ErrMissingAttribute = errors.New("filter: missing attribute name")
)

// UnsupportedError marks a well-formed filter construct the emulator
// deliberately does not evaluate. Callers are expected to escalate these to
// their seeded-response fallback, never to treat them as a match failure.
type UnsupportedError struct {
	Form string // "substring", "greater-or-equal", ...
	Expr string // the offending (sub)expression
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("filter: %s matching is not supported: %q", e.Form, e.Expr)
}

// Parse parses a filter expression into a node tree. The expression must be
// parenthesized: (attr=value), (attr=*), (&...), (|...), (!...).
func Parse(s string) (*Node, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmptyFilter
	}
	return parseExpr(s)
}

func parseExpr(s string) (*Node, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmptyFilter
	}
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return nil, ErrInvalidFilter
	}
	// The whole expression must be one balanced group.
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, ErrUnbalancedParens
			}
			if depth == 0 && i != len(s)-1 {
				return nil, ErrInvalidFilter
			}
		}
	}
	if depth != 0 {
		return nil, ErrUnbalancedParens
	}
	inner := s[1 : len(s)-1]
	if inner == "" {
		return nil, ErrEmptyFilter
	}

	switch inner[0] {
	case '&':
		children, err := parseList(inner[1:])
		if err != nil {
			return nil, err
		}
		if len(children) == 0 {
			return nil, ErrInvalidFilter
		}
		return And(children...), nil
	case '|':
		children, err := parseList(inner[1:])
		if err != nil {
			return nil, err
		}
		if len(children) == 0 {
			return nil, ErrInvalidFilter
		}
		return Or(children...), nil
	case '!':
		children, err := parseList(inner[1:])
		if err != nil {
			return nil, err
		}
		if len(children) != 1 {
			return nil, ErrInvalidFilter
		}
		return Not(children[0]), nil
	default:
		return parseSimple(inner)
	}
}

// parseList splits a run of sibling parenthesized expressions, tracking
// paren depth so nested groups stay intact.
func parseList(s string) ([]*Node, error) {
	var nodes []*Node
	s = strings.TrimSpace(s)

	for len(s) > 0 {
		if s[0] != '(' {
			return nil, ErrInvalidFilter
		}
		depth := 0
		end := -1
		for i := 0; i < len(s); i++ {
			switch s[i] {
			case '(':
				depth++
			case ')':
				depth--
				if depth == 0 {
					end = i
				}
			}
			if end >= 0 {
				break
			}
		}
		if end < 0 {
			return nil, ErrUnbalancedParens
		}

		node, err := parseExpr(s[:end+1])
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
		s = strings.TrimSpace(s[end+1:])
	}
	return nodes, nil
}

func parseSimple(s string) (*Node, error) {
	// Ordering, approximate and extensible forms are recognized so they can
	// be reported as unsupported rather than mis-read as equality.
	for _, op := range []struct{ token, form string }{
		{">=", "greater-or-equal"},
		{"<=", "less-or-equal"},
		{"~=", "approximate"},
		{":=", "extensible"},
	} {
		if strings.Contains(s, op.token) {
			return nil, &UnsupportedError{Form: op.form, Expr: "(" + s + ")"}
		}
	}

	idx := strings.Index(s, "=")
	if idx < 0 {
		return nil, ErrInvalidFilter
	}
	attr := strings.TrimSpace(s[:idx])
	value := s[idx+1:]
	if attr == "" {
		return nil, ErrMissingAttribute
	}
	if strings.Contains(attr, ":") {
		return nil, &UnsupportedError{Form: "extensible", Expr: "(" + s + ")"}
	}

	if value == "*" {
		return Present(attr), nil
	}
	if strings.Contains(value, "*") {
		return nil, &UnsupportedError{Form: "substring", Expr: "(" + s + ")"}
	}
	return Equality(attr, value), nil
}
