package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	codes := []string{
		ErrValidation,
		ErrResolution,
		ErrInvalidArgument,
		ErrExec,
		ErrSSH,
	}

	seen := make(map[string]bool)
	for _, code := range codes {
		assert.NotEmpty(t, code, "error code should not be empty")
		assert.False(t, seen[code], "error code %q should be unique", code)
		seen[code] = true
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		message    string
		suggestion string
	}{
		{
			name:       "validation error",
			code:       ErrValidation,
			message:    `Config file does not contain "hosts"`,
			suggestion: "Add a hosts section to shellshock.json",
		},
		{
			name:       "resolution error",
			code:       ErrResolution,
			message:    `Unknown connection settings "web"`,
			suggestion: "Check the connections section",
		},
		{
			name:       "exec error",
			code:       ErrExec,
			message:    "Command failed with exit code 1",
			suggestion: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, tt.suggestion)

			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.suggestion, err.Suggestion)
			assert.Nil(t, err.Cause)
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	err := WrapWithCode(errors.New("no such file"), ErrValidation, "Cannot read config", "Check the path")
	out := err.Error()

	assert.Contains(t, out, "✗ Cannot read config")
	assert.Contains(t, out, "no such file")
	assert.Contains(t, out, "Check the path")

	bare := New(ErrExec, "Command failed", "")
	assert.Equal(t, "✗ Command failed\n", bare.Error())
}

func TestWrap(t *testing.T) {
	cause := errors.New("broken pipe")
	wrapped := Wrap(cause, "Upload failed")

	assert.Equal(t, ErrExec, wrapped.Code, "Wrap should default to ErrExec code")
	assert.Equal(t, cause, wrapped.Unwrap())
}

func TestSentinelsSurviveWrapping(t *testing.T) {
	err := WrapWithCode(ErrRecursiveReference, ErrResolution, "Recursive connection importing detected", "")
	outer := fmt.Errorf("resolving web: %w", err)

	assert.True(t, errors.Is(outer, ErrRecursiveReference))
	assert.False(t, errors.Is(outer, ErrUnknownReference))
	assert.True(t, IsCode(outer, ErrResolution))
}

func TestIsCode(t *testing.T) {
	assert.False(t, IsCode(nil, ErrExec))
	assert.False(t, IsCode(errors.New("plain"), ErrExec))
	assert.True(t, IsCode(New(ErrInvalidArgument, "x", ""), ErrInvalidArgument))
}

func TestIsLoadTime(t *testing.T) {
	assert.True(t, IsLoadTime(New(ErrValidation, "x", "")))
	assert.True(t, IsLoadTime(New(ErrResolution, "x", "")))
	assert.True(t, IsLoadTime(New(ErrInvalidArgument, "x", "")))
	assert.False(t, IsLoadTime(New(ErrExec, "x", "")))
	assert.False(t, IsLoadTime(&CommandFailedError{ExitCode: 1}))
}

func TestCommandFailedError(t *testing.T) {
	err := &CommandFailedError{Command: "ssh web 'false'", ExitCode: 1}
	assert.Equal(t, "command failed with exit code 1", err.Error())

	err.Stderr = "permission denied"
	assert.Equal(t, "command failed with exit code 1: permission denied", err.Error())

	var target *CommandFailedError
	assert.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &target))
	assert.Equal(t, 1, target.ExitCode)
}

func TestExitError(t *testing.T) {
	err := NewExitError(3)
	assert.Equal(t, 3, err.Code)
	assert.Equal(t, "exit status 3", err.Error())
}
