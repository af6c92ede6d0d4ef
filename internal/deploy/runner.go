package deploy

import (
	_ "embed"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"github.com/rileyhilliard/shellshock/internal/errors"
)

//go:embed runner.sh
var runnerScript []byte

// runnerArtifact is the local copy of the runner uploaded to every host.
type runnerArtifact struct {
	fs   afero.Fs
	path string

	once sync.Once
	err  error
}

func writeRunner(fs afero.Fs) (*runnerArtifact, error) {
	f, err := afero.TempFile(fs, "", "shellshock-runner-*.sh")
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrExec,
			"Couldn't create the local runner file",
			"Check the temp directory is writable (TMPDIR)")
	}

	_, writeErr := f.Write(runnerScript)
	closeErr := f.Close()
	if writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		_ = fs.Remove(f.Name())
		return nil, errors.WrapWithCode(writeErr, errors.ErrExec,
			"Couldn't write the local runner file",
			"Check there is space in the temp directory")
	}

	return &runnerArtifact{fs: fs, path: f.Name()}, nil
}

// Path is the local file path.
func (r *runnerArtifact) Path() string { return r.path }

// Name is the file name the runner has once uploaded.
func (r *runnerArtifact) Name() string { return filepath.Base(r.path) }

// Remove deletes the local file. Only the first call does anything.
func (r *runnerArtifact) Remove() error {
	r.once.Do(func() {
		r.err = r.fs.Remove(r.path)
	})
	return r.err
}
