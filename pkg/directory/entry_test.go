package directory

import (
	"reflect"
	"testing"
)

func TestEntryAddDeduplicates(t *testing.T) {
	e := NewEntry()
	e.Add("cn", "alice")
	e.Add("cn", "alice")
	e.Add("CN", "al")

	if got := e.Values("cn"); !reflect.DeepEqual(got, []string{"alice", "al"}) {
		t.Errorf("Values(cn) = %v", got)
	}
	if e.Len() != 1 {
		t.Errorf("case-folded adds should share one attribute, got %d", e.Len())
	}
}

func TestEntryCaseInsensitiveLookup(t *testing.T) {
	e := EntryFromAttributes(Attributes{"objectClass": {"person"}})
	if !e.Has("OBJECTCLASS") {
		t.Error("lookup should ignore case")
	}
	if got := e.Values("objectclass"); len(got) != 1 || got[0] != "person" {
		t.Errorf("Values = %v", got)
	}
	if names := e.Names(); len(names) != 1 || names[0] != "objectClass" {
		t.Errorf("stored casing should be kept, got %v", names)
	}
}

func TestEntryReplace(t *testing.T) {
	e := EntryFromAttributes(Attributes{"mail": {"a@example.com", "b@example.com"}})

	e.Replace("mail", "c@example.com", "c@example.com")
	if got := e.Values("mail"); !reflect.DeepEqual(got, []string{"c@example.com"}) {
		t.Errorf("Values(mail) = %v", got)
	}

	e.Replace("mail")
	if e.Has("mail") {
		t.Error("replace with no values should remove the attribute")
	}
}

func TestEntryRemoveValues(t *testing.T) {
	e := EntryFromAttributes(Attributes{"cn": {"alice", "al"}})

	e.RemoveValues("cn", "missing")
	if got := e.Values("cn"); len(got) != 2 {
		t.Errorf("removing an absent value should be a no-op, got %v", got)
	}

	e.RemoveValues("cn", "alice")
	if got := e.Values("cn"); !reflect.DeepEqual(got, []string{"al"}) {
		t.Errorf("Values(cn) = %v", got)
	}

	e.RemoveValues("cn", "al")
	if e.Has("cn") {
		t.Error("attribute should disappear with its last value")
	}

	e.RemoveValues("cn", "al") // absent attribute, still a no-op
}

func TestEntryValuesDetached(t *testing.T) {
	e := EntryFromAttributes(Attributes{"cn": {"alice"}})
	got := e.Values("cn")
	got[0] = "mutated"
	if e.Values("cn")[0] != "alice" {
		t.Error("Values must return a copy")
	}

	m := e.AttributeMap()
	m["cn"][0] = "mutated"
	delete(m, "cn")
	if !e.Has("cn") || e.Values("cn")[0] != "alice" {
		t.Error("AttributeMap must return a detached copy")
	}
}

func TestEntryFromAttributesSkipsEmpty(t *testing.T) {
	e := EntryFromAttributes(Attributes{"memberOf": {}})
	if e.Has("memberOf") {
		t.Error("an attribute with no values must not exist")
	}
}

func TestEntryClone(t *testing.T) {
	e := EntryFromAttributes(Attributes{"cn": {"alice"}})
	c := e.Clone()
	c.Add("cn", "al")
	if len(e.Values("cn")) != 1 {
		t.Error("mutating a clone must not touch the original")
	}
}
