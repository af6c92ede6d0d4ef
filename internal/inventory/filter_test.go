package inventory

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/shellshock/internal/errors"
)

func filterFixture() *Groups {
	decl := NewDeclarations().
		Add("web", "w1", "shared").
		Add("db", "d1", "shared").
		Add("cache", "c1")
	return NewRegistry().Load(decl, true)
}

func TestFilterHosts_AllGroups(t *testing.T) {
	hosts, err := FilterHosts(filterFixture(), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"w1", "shared", "d1", "c1"}, hostnames(hosts))
}

func TestFilterHosts_NamedGroups(t *testing.T) {
	hosts, err := FilterHosts(filterFixture(), []string{"db", "web"})
	require.NoError(t, err)

	assert.Equal(t, []string{"d1", "shared", "w1"}, hostnames(hosts))
}

func TestFilterHosts_UnknownGroup(t *testing.T) {
	_, err := FilterHosts(filterFixture(), []string{"web", "nope"})
	require.Error(t, err)

	assert.True(t, stderrors.Is(err, errors.ErrUnknownGroup))
	assert.True(t, errors.IsCode(err, errors.ErrInvalidArgument))
	assert.Contains(t, err.Error(), `"nope"`)
}

func TestFilterHosts_InvalidGroup(t *testing.T) {
	groups := filterFixture()
	groups.Put("broken", nil)

	_, err := FilterHosts(groups, nil)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidGroup))

	_, err = FilterHosts(groups, []string{"broken"})
	assert.True(t, stderrors.Is(err, errors.ErrInvalidGroup))
}

func TestFilterHosts_EmptyCollection(t *testing.T) {
	hosts, err := FilterHosts(NewGroups(), nil)
	require.NoError(t, err)
	assert.Empty(t, hosts)
}
