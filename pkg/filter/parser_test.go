package filter

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string // canonical String() of the parsed tree
	}{
		{"equality", "(cn=alice)", "(cn=alice)"},
		{"presence", "(objectClass=*)", "(objectClass=*)"},
		{"and", "(&(cn=alice)(objectClass=person))", "(&(cn=alice)(objectClass=person))"},
		{"or", "(|(cn=alice)(cn=bob))", "(|(cn=alice)(cn=bob))"},
		{"not", "(!(cn=alice))", "(!(cn=alice))"},
		{"nested", "(&(|(cn=a)(cn=b))(!(sn=c)))", "(&(|(cn=a)(cn=b))(!(sn=c)))"},
		{"empty value", "(description=)", "(description=)"},
		{"spaces between siblings", "(& (cn=a) (cn=b))", "(&(cn=a)(cn=b))"},
		{"value with spaces", "(cn=John Doe)", "(cn=John Doe)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.in, err)
			}
			if got := n.String(); got != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"empty", "", ErrEmptyFilter},
		{"blank parens", "()", ErrEmptyFilter},
		{"no parens", "cn=alice", ErrInvalidFilter},
		{"unbalanced", "(&(cn=alice)", ErrUnbalancedParens},
		{"missing attribute", "(=alice)", ErrMissingAttribute},
		{"no equals", "(alice)", ErrInvalidFilter},
		{"and without children", "(&)", ErrInvalidFilter},
		{"not with two children", "(!(a=1)(b=2))", ErrInvalidFilter},
		{"junk between siblings", "(&(a=1)x(b=2))", ErrInvalidFilter},
		{"trailing garbage", "(cn=alice))", ErrInvalidFilter},
		{"sibling groups at top level", "(cn=a)(cn=b)", ErrInvalidFilter},
		{"extra opening paren", "((cn=alice)", ErrUnbalancedParens},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.in)
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.in, err, tt.want)
			}
		})
	}
}

func TestParseUnsupportedForms(t *testing.T) {
	tests := []struct {
		name string
		in   string
		form string
	}{
		{"substring trailing", "(cn=ali*)", "substring"},
		{"substring leading", "(cn=*ice)", "substring"},
		{"substring middle", "(cn=a*e)", "substring"},
		{"greater or equal", "(uidNumber>=100)", "greater-or-equal"},
		{"less or equal", "(uidNumber<=100)", "less-or-equal"},
		{"approximate", "(cn~=alice)", "approximate"},
		{"extensible", "(cn:caseExactMatch:=alice)", "extensible"},
		{"extensible dn", "(ou:dn:=people)", "extensible"},
		{"nested unsupported", "(&(objectClass=person)(cn=ali*))", "substring"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.in)
			var unsupported *UnsupportedError
			if !errors.As(err, &unsupported) {
				t.Fatalf("Parse(%q) error = %v, want *UnsupportedError", tt.in, err)
			}
			if unsupported.Form != tt.form {
				t.Errorf("Form = %q, want %q", unsupported.Form, tt.form)
			}
		})
	}
}
