package sshutil

import (
	"bytes"
	stderrors "errors"
	"os"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/crypto/ssh"
)

// KeyStatus describes a private key file as ssh would see it.
type KeyStatus int

const (
	KeyNone      KeyStatus = iota // no key configured
	KeyOK                         // parses without a passphrase
	KeyEncrypted                  // needs a passphrase; must be loaded into an agent
	KeyMissing
	KeyInvalid
)

func (s KeyStatus) String() string {
	switch s {
	case KeyOK:
		return "ok"
	case KeyEncrypted:
		return "encrypted"
	case KeyMissing:
		return "missing"
	case KeyInvalid:
		return "invalid"
	default:
		return "-"
	}
}

// InspectKey reads the private key at path and reports whether ssh can use it
// unattended. The error is only set for KeyInvalid and unexpected read failures.
func InspectKey(fs afero.Fs, path string) (KeyStatus, error) {
	if path == "" {
		return KeyNone, nil
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return KeyMissing, nil
		}
		return KeyInvalid, err
	}

	if _, err := ssh.ParsePrivateKey(data); err != nil {
		var missing *ssh.PassphraseMissingError
		if stderrors.As(err, &missing) || isEncryptedPEM(data) ||
			strings.Contains(err.Error(), "passphrase") {
			return KeyEncrypted, nil
		}
		return KeyInvalid, err
	}
	return KeyOK, nil
}

// isEncryptedPEM checks if PEM data contains encryption markers.
func isEncryptedPEM(data []byte) bool {
	return bytes.Contains(data, []byte("ENCRYPTED"))
}
