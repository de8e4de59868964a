package directory

import (
	"reflect"
	"testing"
)

func seedTree() Directory {
	return Directory{
		"dc=example,dc=com": {
			"objectClass": {"top", "domain"},
			"dc":          {"example"},
		},
		"cn=alice,dc=example,dc=com": {
			"cn":           {"alice"},
			"userPassword": {"alicepw"},
		},
	}
}

func TestNewStore(t *testing.T) {
	s, err := New(seedTree())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("Len = %d", s.Len())
	}
	if !s.Contains("cn=alice,dc=example,dc=com") {
		t.Error("seeded entry missing")
	}
	want := []string{"cn=alice,dc=example,dc=com", "dc=example,dc=com"}
	if got := s.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys = %v, want %v", got, want)
	}
}

func TestNewStoreDoesNotAliasSeed(t *testing.T) {
	seed := seedTree()
	s, err := New(seed)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Mutating the seed after construction must not reach the store.
	seed["cn=alice,dc=example,dc=com"]["cn"][0] = "mallory"
	delete(seed, "dc=example,dc=com")

	e, ok := s.Get("cn=alice,dc=example,dc=com")
	if !ok {
		t.Fatal("entry missing")
	}
	if got := e.Values("cn"); got[0] != "alice" {
		t.Errorf("store aliased seed values: %v", got)
	}
	if !s.Contains("dc=example,dc=com") {
		t.Error("store aliased the seed map itself")
	}
}

func TestNewStoreNormalizesKeys(t *testing.T) {
	s, err := New(Directory{"CN=Bob,DC=Example,DC=Com": {"cn": {"bob"}}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !s.Contains("cn=bob,dc=example,dc=com") {
		t.Error("keys should be canonical lower-cased DNs")
	}
	if got := s.DisplayDN("cn=bob,dc=example,dc=com"); got != "CN=Bob,DC=Example,DC=Com" {
		t.Errorf("DisplayDN = %q", got)
	}
}

func TestNewStoreRejectsBadSeeds(t *testing.T) {
	tests := []struct {
		name string
		seed Directory
	}{
		{"invalid dn", Directory{"not a dn": {}}},
		{"case collision", Directory{
			"cn=a,dc=com": {"cn": {"a"}},
			"CN=A,DC=COM": {"cn": {"a"}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.seed); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestStorePutRemove(t *testing.T) {
	s, err := New(Directory{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.Put("cn=x,dc=com", "cn=X,dc=com", EntryFromAttributes(Attributes{"cn": {"X"}}))
	if !s.Contains("cn=x,dc=com") {
		t.Fatal("Put did not store")
	}
	if !s.Remove("cn=x,dc=com") {
		t.Error("Remove should report an existing key")
	}
	if s.Remove("cn=x,dc=com") {
		t.Error("Remove should report a missing key")
	}
}
