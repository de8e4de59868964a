package filter

import (
	"strings"
	"testing"
)

// entryMap is a minimal Entry for tests, case-insensitive on names.
type entryMap map[string][]string

func (m entryMap) Has(attr string) bool { return m.Values(attr) != nil }

func (m entryMap) Values(attr string) []string {
	for name, values := range m {
		if strings.EqualFold(name, attr) {
			return values
		}
	}
	return nil
}

var alice = entryMap{
	"objectClass":  {"inetOrgPerson"},
	"cn":           {"alice", "al"},
	"sn":           {"Liddell"},
	"userPassword": {"hashed:alicepw"},
}

func TestMatches(t *testing.T) {
	ev := Evaluator{}
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"equality hit", "(cn=alice)", true},
		{"equality second value", "(cn=al)", true},
		{"equality miss", "(cn=bob)", false},
		{"values are case sensitive", "(cn=Alice)", false},
		{"attribute names are not", "(CN=alice)", true},
		{"presence hit", "(sn=*)", true},
		{"presence miss", "(mail=*)", false},
		{"missing attribute is no match", "(mail=x)", false},
		{"and", "(&(cn=alice)(sn=Liddell))", true},
		{"and short circuit", "(&(cn=bob)(sn=Liddell))", false},
		{"or", "(|(cn=bob)(cn=alice))", true},
		{"or miss", "(|(cn=bob)(cn=carol))", false},
		{"not", "(!(cn=bob))", true},
		{"not hit", "(!(cn=alice))", false},
		{"nested", "(&(objectClass=inetOrgPerson)(|(cn=bob)(!(sn=Smith))))", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.in, err)
			}
			if got := ev.Matches(n, alice); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMatchesPasswordAttribute(t *testing.T) {
	ev := Evaluator{
		PasswordAttribute: "userPassword",
		VerifyPassword: func(password, stored string) bool {
			return stored == "hashed:"+password
		},
	}

	n, err := Parse("(userPassword=alicepw)")
	if err != nil {
		t.Fatal(err)
	}
	if !ev.Matches(n, alice) {
		t.Error("credential attribute should match through the verifier")
	}

	n, err = Parse("(userPassword=hashed:alicepw)")
	if err != nil {
		t.Fatal(err)
	}
	if ev.Matches(n, alice) {
		t.Error("stored form must not literal-match once a verifier is set")
	}

	// Any other attribute still compares literally.
	n, err = Parse("(cn=alice)")
	if err != nil {
		t.Fatal(err)
	}
	if !ev.Matches(n, alice) {
		t.Error("non-credential attributes compare literally")
	}
}

func TestMatchesNilInputs(t *testing.T) {
	ev := Evaluator{}
	if ev.Matches(nil, alice) {
		t.Error("nil node should not match")
	}
	if ev.Matches(Present("cn"), nil) {
		t.Error("nil entry should not match")
	}
	if ev.Matches(Not(nil), alice) {
		t.Error("not without a child should not match")
	}
}

func TestMatchesEmptyAnd(t *testing.T) {
	ev := Evaluator{}
	if !ev.Matches(And(), alice) {
		t.Error("empty AND is vacuously true")
	}
	if ev.Matches(Or(), alice) {
		t.Error("empty OR matches nothing")
	}
}
