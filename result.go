package mockldap

import (
	"fmt"

	"github.com/hbog/mockldap/pkg/directory"
)

// ResponseType identifies the response PDU a successful operation would put
// on the wire. The values are the BER application tags of those responses;
// client code matches on the exact numbers, so they must not drift.
type ResponseType uint8

const (
	ResponseBind         ResponseType = 0x61 // 97
	ResponseSearchResult ResponseType = 0x65 // 101
	ResponseModify       ResponseType = 0x67 // 103
	ResponseAdd          ResponseType = 0x69 // 105
	ResponseDelete       ResponseType = 0x6b // 107
	ResponseModifyDN     ResponseType = 0x6d // 109
)

func (r ResponseType) String() string {
	switch r {
	case ResponseBind:
		return "bindResponse"
	case ResponseSearchResult:
		return "searchResultDone"
	case ResponseModify:
		return "modifyResponse"
	case ResponseAdd:
		return "addResponse"
	case ResponseDelete:
		return "delResponse"
	case ResponseModifyDN:
		return "modDNResponse"
	}
	return fmt.Sprintf("ResponseType(%d)", uint8(r))
}

// Scope selects how far a search reaches from its base DN.
type Scope int

const (
	ScopeBaseObject   Scope = 0 // the base entry alone
	ScopeSingleLevel  Scope = 1 // immediate children of the base
	ScopeWholeSubtree Scope = 2 // the base and all descendants
)

func (s Scope) String() string {
	switch s {
	case ScopeBaseObject:
		return "base"
	case ScopeSingleLevel:
		return "one"
	case ScopeWholeSubtree:
		return "sub"
	}
	return fmt.Sprintf("Scope(%d)", int(s))
}

// ModifyOperation is the op-code of one modify change.
type ModifyOperation int

const (
	ModifyAdd ModifyOperation = iota
	ModifyDelete
	ModifyReplace
)

func (m ModifyOperation) String() string {
	switch m {
	case ModifyAdd:
		return "add"
	case ModifyDelete:
		return "delete"
	case ModifyReplace:
		return "replace"
	}
	return fmt.Sprintf("ModifyOperation(%d)", int(m))
}

// Mod is one change of a modify call: an op-code, the attribute it targets
// and the values it carries. A nil Values is the empty list.
type Mod struct {
	Op        ModifyOperation
	Attribute string
	Values    []string
}

// SearchRequest carries the arguments of a search.
type SearchRequest struct {
	BaseDN     string
	Scope      Scope
	Filter     string   // empty means DefaultFilter
	Attributes []string // optional allow-list; nil keeps every attribute
	TypesOnly  bool     // strip value lists, report attribute names only
}

// SearchEntry is one result pair: the entry's DN in presentation form and
// its (possibly projected) attributes, detached from the store.
type SearchEntry struct {
	DN         string
	Attributes directory.Attributes
}

// MessageID is the ticket handed out by Search and redeemed once by Result.
type MessageID int
