package admin

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Domain is one of the record kinds the admin screen manages.
type Domain int

const (
	DomainProjects Domain = iota
	DomainSkills
	DomainCV
)

var domainNames = map[Domain]string{
	DomainProjects: "projects",
	DomainSkills:   "skills",
	DomainCV:       "cv",
}

func (d Domain) String() string {
	if name, ok := domainNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Domain(%d)", int(d))
}

// ParseDomain accepts the names printed by String, case-insensitively.
func ParseDomain(s string) (Domain, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d, name := range domainNames {
		if s == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown tab %q (want projects, skills or cv)", s)
}

// Tabs keeps exactly one domain active. Switching reloads the new
// domain and abandons any reload still running for the old one.
type Tabs struct {
	surfaces map[Domain]Reloader

	mu     sync.Mutex
	active Domain
}

func NewTabs(surfaces map[Domain]Reloader, initial Domain) *Tabs {
	return &Tabs{surfaces: surfaces, active: initial}
}

func (t *Tabs) Active() Domain {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Select makes d active and reloads it. Selecting the active domain
// does nothing.
func (t *Tabs) Select(ctx context.Context, d Domain) error {
	next, ok := t.surfaces[d]
	if !ok {
		return fmt.Errorf("no surface for %s", d)
	}

	t.mu.Lock()
	prev := t.active
	t.active = d
	t.mu.Unlock()

	if prev == d {
		return nil
	}
	if old, ok := t.surfaces[prev]; ok {
		old.Invalidate()
	}
	return next.Reload(ctx)
}

// ReloadActive refreshes whichever domain is active.
func (t *Tabs) ReloadActive(ctx context.Context) error {
	return t.surfaces[t.Active()].Reload(ctx)
}

// InvalidateAll drops every in-flight reload, for example on logout.
func (t *Tabs) InvalidateAll() {
	for _, s := range t.surfaces {
		s.Invalidate()
	}
}
