package remote

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alessio/shellescape"

	"github.com/rileyhilliard/shellshock/internal/inventory"
)

// CommandBuilder assembles ssh and scp command lines for a host.
type CommandBuilder struct {
	SSHBinary string
	SCPBinary string
}

// NewCommandBuilder creates a builder using ssh and scp from PATH.
func NewCommandBuilder() CommandBuilder {
	return CommandBuilder{SSHBinary: "ssh", SCPBinary: "scp"}
}

// SSH builds an ssh invocation running command on h. With needsSudo set and
// sudo enabled for the host, command runs under sudo; a configured sudo
// password is piped to sudo -S.
func (b CommandBuilder) SSH(h *inventory.Host, command string, needsSudo bool) string {
	if needsSudo && h.UseSudo() {
		command = SudoPrefix(h) + " " + command
	}

	parts := []string{b.SSHBinary, Destination(h)}
	parts = append(parts, commonArgs(h, "-p")...)
	parts = append(parts, shellescape.Quote(command))
	return strings.Join(parts, " ")
}

// SCP builds a recursive scp invocation copying from to the path to on h.
func (b CommandBuilder) SCP(h *inventory.Host, from []string, to string) string {
	parts := []string{b.SCPBinary}
	parts = append(parts, commonArgs(h, "-P")...)
	parts = append(parts, "-r")
	for _, path := range from {
		parts = append(parts, shellescape.Quote(path))
	}
	parts = append(parts, Destination(h)+":"+shellescape.Quote(to))
	return strings.Join(parts, " ")
}

// SudoPrefix returns the sudo invocation used for escalated commands on h.
func SudoPrefix(h *inventory.Host) string {
	if password, ok := h.SudoPassword(); ok {
		return fmt.Sprintf("echo %s | sudo -s -p \"\" -k -S", shellescape.Quote(password))
	}
	return "sudo -s"
}

// Destination returns the quoted [user@]host part of a command line.
func Destination(h *inventory.Host) string {
	dest := shellescape.Quote(h.Hostname())
	if user := h.Username(); user != "" {
		dest = shellescape.Quote(user) + "@" + dest
	}
	return dest
}

// commonArgs returns the options shared by ssh and scp; portFlag differs between them.
func commonArgs(h *inventory.Host, portFlag string) []string {
	var args []string
	if key := h.IdentityFile(); key != "" {
		args = append(args, "-i", shellescape.Quote(key))
	}
	if port := h.Port(); port > 0 {
		args = append(args, portFlag, strconv.Itoa(port))
	}
	if !h.VerifyHost() {
		args = append(args,
			"-o", "StrictHostKeyChecking=no",
			"-o", "UserKnownHostsFile=/dev/null")
	}
	return args
}
