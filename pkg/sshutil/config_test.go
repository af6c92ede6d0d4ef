package sshutil

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
Host myserver
    HostName 192.168.1.100
    User admin
    Port 2222
    IdentityFile ~/.ssh/id_myserver

Host gpu-box
    HostName gpu.example.com
    User ubuntu

Host work-*
    User workuser

Host *
    ServerAliveInterval 60

Match host foo
    User ignored
`

func loadSample(t *testing.T) *Config {
	t.Helper()
	fs := afero.NewMemMapFs()
	path := DefaultConfigPath("/home/dev")
	require.NoError(t, afero.WriteFile(fs, path, []byte(sampleConfig), 0600))

	cfg, err := LoadConfig(fs, path, "/home/dev")
	require.NoError(t, err)
	return cfg
}

func TestLoadConfig_Lookup(t *testing.T) {
	cfg := loadSample(t)

	myserver := cfg.Lookup("myserver")
	assert.Equal(t, "192.168.1.100", myserver.Hostname)
	assert.Equal(t, "admin", myserver.User)
	assert.Equal(t, "2222", myserver.Port)
	assert.Equal(t, "/home/dev/.ssh/id_myserver", myserver.IdentityFile)

	work := cfg.Lookup("work-laptop")
	assert.Equal(t, "workuser", work.User, "wildcard blocks apply")
	assert.Empty(t, work.Hostname)

	unknown := cfg.Lookup("db.example.com")
	assert.Equal(t, "db.example.com", unknown.Alias)
	assert.Empty(t, unknown.User)
}

func TestLoadConfig_StopsAtMatch(t *testing.T) {
	cfg := loadSample(t)
	assert.Greater(t, cfg.MatchLine, 0)
	assert.Empty(t, cfg.Lookup("foo").User)
}

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := LoadConfig(afero.NewMemMapFs(), "/nope/config", "/home/dev")
	require.NoError(t, err)
	assert.Empty(t, cfg.Aliases())
	assert.Equal(t, Entry{Alias: "web1"}, cfg.Lookup("web1"))
}

func TestConfig_NilSafe(t *testing.T) {
	var cfg *Config
	assert.Equal(t, Entry{Alias: "web1"}, cfg.Lookup("web1"))
	assert.Nil(t, cfg.Aliases())
}

func TestConfig_Aliases(t *testing.T) {
	cfg := loadSample(t)
	assert.Equal(t, []string{"gpu-box", "myserver"}, cfg.Aliases())
}

func TestEntry_Description(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		want  string
	}{
		{"full", Entry{Alias: "m", Hostname: "10.0.0.1", User: "admin", Port: "2222"}, "10.0.0.1, user: admin, port: 2222"},
		{"default port hidden", Entry{Alias: "m", User: "admin", Port: "22"}, "user: admin"},
		{"hostname same as alias", Entry{Alias: "m", Hostname: "m"}, "-"},
		{"empty", Entry{Alias: "m"}, "-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.Description())
		})
	}
}
