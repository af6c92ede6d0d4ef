package connection

import (
	"fmt"

	"github.com/spf13/cast"

	"github.com/rileyhilliard/shellshock/internal/errors"
	"github.com/rileyhilliard/shellshock/internal/inventory"
)

// Recognized option names.
const (
	OptUser         = "user"
	OptSudo         = "sudo"
	OptSudoPassword = "sudo-password"
	OptPrivateKey   = "private-key"
	OptVerifyHost   = "verify-host"
	OptPort         = "port"
)

// PathNormalizer turns a user supplied path into an absolute local path.
type PathNormalizer interface {
	Normalize(path string) (string, error)
}

type setter func(h *inventory.Host, value any, paths PathNormalizer) error

type option struct {
	name string
	set  setter
}

// options is applied in this order for every record.
var options = []option{
	{OptUser, func(h *inventory.Host, v any, _ PathNormalizer) error {
		s, err := cast.ToStringE(v)
		if err != nil {
			return err
		}
		h.SetUsername(s)
		return nil
	}},
	{OptSudo, func(h *inventory.Host, v any, _ PathNormalizer) error {
		b, err := cast.ToBoolE(v)
		if err != nil {
			return err
		}
		h.SetUseSudo(b)
		return nil
	}},
	{OptSudoPassword, func(h *inventory.Host, v any, _ PathNormalizer) error {
		s, err := cast.ToStringE(v)
		if err != nil {
			return err
		}
		h.SetSudoPassword(s)
		return nil
	}},
	{OptPrivateKey, func(h *inventory.Host, v any, paths PathNormalizer) error {
		s, err := cast.ToStringE(v)
		if err != nil {
			return err
		}
		if paths != nil {
			if s, err = paths.Normalize(s); err != nil {
				return err
			}
		}
		h.SetIdentityFile(s)
		return nil
	}},
	{OptVerifyHost, func(h *inventory.Host, v any, _ PathNormalizer) error {
		b, err := cast.ToBoolE(v)
		if err != nil {
			return err
		}
		h.SetVerifyHost(b)
		return nil
	}},
	{OptPort, func(h *inventory.Host, v any, _ PathNormalizer) error {
		port, err := cast.ToIntE(v)
		if err != nil {
			return errors.WrapWithCode(errors.ErrInvalidPort, errors.ErrInvalidArgument,
				fmt.Sprintf("Port must be a number, got %v", v),
				"Use a port like 22 or 2222.")
		}
		return h.SetPort(port)
	}},
}

// IsKnownOption reports whether name is a recognized connection option.
func IsKnownOption(name string) bool {
	for _, opt := range options {
		if opt.name == name {
			return true
		}
	}
	return false
}

// Apply sets the options present in rec on h. Options absent from the record,
// or present with a null value, leave the host untouched.
func Apply(rec Record, h *inventory.Host, paths PathNormalizer) error {
	for _, opt := range options {
		v, ok := rec[opt.name]
		if !ok || v == nil {
			continue
		}
		if err := opt.set(h, v, paths); err != nil {
			if errors.IsCode(err, errors.ErrInvalidArgument) {
				return err
			}
			return errors.WrapWithCode(err, errors.ErrInvalidArgument,
				fmt.Sprintf("Invalid %q setting for %s", opt.name, h.Hostname()),
				"Check the value type in connections.")
		}
	}
	return nil
}
