package admin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDomain(t *testing.T) {
	for _, d := range []Domain{DomainProjects, DomainSkills, DomainCV} {
		got, err := ParseDomain(" " + d.String() + " ")
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}

	got, err := ParseDomain("SKILLS")
	require.NoError(t, err)
	assert.Equal(t, DomainSkills, got)

	_, err = ParseDomain("experience")
	assert.Error(t, err)
}

func TestTabs_SelectReloadsNewDomain(t *testing.T) {
	b := newFakeBackend()
	d := NewDashboard(b, newMemCache(), newFakeNotifier(), nil)
	ctx := context.Background()

	require.NoError(t, d.Tabs.Select(ctx, DomainSkills))
	assert.Equal(t, DomainSkills, d.Tabs.Active())
	assert.Equal(t, 1, b.count("ListSkills"))
	assert.Zero(t, b.count("ListProjects"))

	require.NoError(t, d.Tabs.Select(ctx, DomainCV))
	assert.Equal(t, 1, b.count("CurrentCV"))
}

func TestTabs_SelectActiveIsNoop(t *testing.T) {
	b := newFakeBackend()
	d := NewDashboard(b, newMemCache(), newFakeNotifier(), nil)

	require.NoError(t, d.Tabs.Select(context.Background(), DomainProjects))
	assert.Zero(t, b.count("ListProjects"))
}

func TestTabs_SwitchDropsStaleLoad(t *testing.T) {
	b := newFakeBackend()
	seedProjects(b, "late")
	d := NewDashboard(b, newMemCache(), newFakeNotifier(), nil)
	ctx := context.Background()
	started, release := blockCall(b, "ListProjects")

	errs := make(chan error, 1)
	go func() { errs <- d.Tabs.ReloadActive(ctx) }()
	<-started

	require.NoError(t, d.Tabs.Select(ctx, DomainSkills))
	release()

	assert.ErrorIs(t, <-errs, ErrStale)
	assert.Empty(t, d.Projects.Items())
	assert.False(t, d.Projects.Loading())
	assert.True(t, d.Skills.Loaded())
}
