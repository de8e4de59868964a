package mockldap

import (
	"fmt"
	"sort"

	"github.com/hbog/mockldap/pkg/directory"
)

// Provider hands out emulated connections keyed by server URI, standing in
// for a dialer in code under test that talks to several directories. Every
// Dial for a URI returns the same connection, so state accumulated by one
// test step is visible to the next.
type Provider struct {
	conns map[string]*Conn
}

// NewProvider builds one connection per URI from its seed directory. The
// options apply to every connection.
func NewProvider(dirs map[string]directory.Directory, opts ...Option) (*Provider, error) {
	conns := make(map[string]*Conn, len(dirs))
	for uri, seed := range dirs {
		conn, err := New(seed, opts...)
		if err != nil {
			return nil, fmt.Errorf("mockldap: directory for %q: %w", uri, err)
		}
		conns[uri] = conn
	}
	return &Provider{conns: conns}, nil
}

// Dial returns the connection registered for uri.
func (p *Provider) Dial(uri string) (*Conn, error) {
	conn, ok := p.conns[uri]
	if !ok {
		return nil, fmt.Errorf("mockldap: no directory registered for %q", uri)
	}
	return conn, nil
}

// URIs lists the registered server URIs in sorted order.
func (p *Provider) URIs() []string {
	uris := make([]string, 0, len(p.conns))
	for uri := range p.conns {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	return uris
}
