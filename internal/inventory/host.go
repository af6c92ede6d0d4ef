package inventory

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/rileyhilliard/shellshock/internal/errors"
)

// RemoteDirPrefix is the prefix for each host's ephemeral remote working directory.
const RemoteDirPrefix = "/tmp/shellshock-"

// Host is a uniquely named remote machine with its connection attributes and
// the scripts accumulated from every group it belongs to.
type Host struct {
	hostname     string
	username     string
	port         int
	identityFile string
	verifyHost   bool
	useSudo      bool
	sudoPassword *string

	groups  []*Group
	scripts []string

	remoteDir     string
	remoteDirOnce sync.Once
}

// NewHost creates a host with default connection attributes.
func NewHost(hostname string) *Host {
	return &Host{
		hostname:   hostname,
		verifyHost: true,
	}
}

// Hostname returns the host's unique name.
func (h *Host) Hostname() string { return h.hostname }

// Username returns the login user, or "" when unset.
func (h *Host) Username() string { return h.username }

// SetUsername sets the login user.
func (h *Host) SetUsername(username string) { h.username = username }

// Port returns the SSH port, or 0 when unset.
func (h *Host) Port() int { return h.port }

// SetPort sets the SSH port. The port must be a positive integer.
func (h *Host) SetPort(port int) error {
	if port <= 0 {
		return errors.WrapWithCode(errors.ErrInvalidPort, errors.ErrInvalidArgument,
			fmt.Sprintf("Port for %s must be a positive number, got %d", h.hostname, port),
			"Use a port like 22 or 2222.")
	}
	h.port = port
	return nil
}

// IdentityFile returns the normalized private key path, or "" when unset.
func (h *Host) IdentityFile() string { return h.identityFile }

// SetIdentityFile sets the private key path. Callers normalize the path first.
func (h *Host) SetIdentityFile(path string) { h.identityFile = path }

// VerifyHost reports whether the remote host key is verified. Defaults to true.
func (h *Host) VerifyHost() bool { return h.verifyHost }

// SetVerifyHost toggles host key verification.
func (h *Host) SetVerifyHost(verify bool) { h.verifyHost = verify }

// UseSudo reports whether provisioning runs through sudo. Defaults to false.
func (h *Host) UseSudo() bool { return h.useSudo }

// SetUseSudo toggles sudo escalation for provisioning.
func (h *Host) SetUseSudo(useSudo bool) { h.useSudo = useSudo }

// SudoPassword returns the sudo password and whether one was set.
func (h *Host) SudoPassword() (string, bool) {
	if h.sudoPassword == nil {
		return "", false
	}
	return *h.sudoPassword, true
}

// SetSudoPassword sets the password piped to sudo on the remote host.
func (h *Host) SetSudoPassword(password string) {
	h.sudoPassword = &password
}

// Groups returns the groups this host belongs to, in the order it joined them.
func (h *Host) Groups() []*Group {
	out := make([]*Group, len(h.groups))
	copy(out, h.groups)
	return out
}

// GroupNames returns the names of the groups this host belongs to.
func (h *Host) GroupNames() []string {
	return lo.Map(h.groups, func(g *Group, _ int) string {
		return g.Name()
	})
}

// Scripts returns the ordered, deduplicated script paths for this host.
func (h *Host) Scripts() []string {
	out := make([]string, len(h.scripts))
	copy(out, h.scripts)
	return out
}

// RemoteDir returns the host's ephemeral remote working directory. The path is
// generated on first use and stays the same for the lifetime of the Host.
func (h *Host) RemoteDir() string {
	h.remoteDirOnce.Do(func() {
		h.remoteDir = RemoteDirPrefix + uuid.NewString()
	})
	return h.remoteDir
}

func (h *Host) addGroup(g *Group) {
	if lo.Contains(h.groups, g) {
		return
	}
	h.groups = append(h.groups, g)
}

func (h *Host) addScripts(scripts []string) {
	h.scripts = lo.Uniq(append(h.scripts, scripts...))
}

func (h *Host) String() string {
	return h.hostname
}
