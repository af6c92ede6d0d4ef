package cli

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHosts_ListsResolvedInventory(t *testing.T) {
	te := newTestEnv(t)
	sshConfig := "Host web1\n    Port 2222\n    IdentityFile ~/.ssh/id_web\n"
	require.NoError(t, afero.WriteFile(te.Fs, "/home/dev/.ssh/config", []byte(sshConfig), 0600))

	require.Equal(t, 0, te.run("hosts", "/work/deploy", "--no-color"), te.errOut.String())

	out := te.out.String()
	for _, want := range []string{"HOST", "web1", "web2", "db1", "deploy", "2222", "missing"} {
		assert.Contains(t, out, want)
	}
	assert.Contains(t, out, "3 hosts in 2 groups")
	assert.Empty(t, te.fake.Commands(), "hosts never contacts anything")
}

func TestHosts_Groups(t *testing.T) {
	te := newTestEnv(t)

	require.Equal(t, 0, te.run("hosts", "/work/deploy", "-g", "db"))
	assert.Contains(t, te.out.String(), "db1")
	assert.NotContains(t, te.out.String(), "web1")
	assert.Contains(t, te.out.String(), "1 hosts in 2 groups")
}

func TestHosts_NoSSHConfig(t *testing.T) {
	te := newTestEnv(t)

	require.Equal(t, 0, te.run("hosts", "/work/deploy"))
	assert.Contains(t, te.out.String(), "db1")
	assert.False(t, te.log.HasLevel("warn"))
}

func TestHosts_LoadError(t *testing.T) {
	te := newTestEnv(t)

	assert.Equal(t, 1, te.run("hosts", "/work/missing"))
	assert.Contains(t, te.errOut.String(), "is not a directory")
}
