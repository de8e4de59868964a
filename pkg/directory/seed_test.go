package directory

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadFixture(t *testing.T) {
	r := require.New(t)

	dir, err := Load("testdata/tree.toml")
	r.NoError(err)
	r.Len(dir, 4)

	alice, ok := dir["cn=alice,ou=people,dc=example,dc=com"]
	r.True(ok, "alice should be present")
	r.Equal([]string{"alice"}, alice["cn"])
	r.Equal([]string{"inetOrgPerson"}, alice["objectClass"])

	// The loaded tree must seed a store cleanly.
	s, err := New(dir)
	r.NoError(err)
	r.Equal(4, s.Len())
}

func TestParseFixture(t *testing.T) {
	r := require.New(t)

	dir, err := Parse([]byte(`
[[entry]]
dn = "dc=example,dc=com"

  [entry.attributes]
  dc = ["example"]
`))
	r.NoError(err)
	r.Len(dir, 1)
	r.Equal([]string{"example"}, dir["dc=example,dc=com"]["dc"])
}

func TestParseFixtureErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"missing dn", "[[entry]]\n[entry.attributes]\ncn = [\"x\"]\n"},
		{"repeated dn", "[[entry]]\ndn = \"dc=com\"\n[[entry]]\ndn = \"dc=com\"\n"},
		{"not toml", "{\"dn\": 1}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.in))
			require.Error(t, err)
		})
	}
}
