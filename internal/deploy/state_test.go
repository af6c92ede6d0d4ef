package deploy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		from, to State
		ok       bool
	}{
		{StateIdle, StateUploading, true},
		{StateIdle, StateExecuting, true},
		{StateIdle, StateDone, false},
		{StateUploading, StateExecuting, true},
		{StateUploading, StateFailed, true},
		{StateUploading, StateCleaningUp, false},
		{StateExecuting, StateCleaningUp, true},
		{StateExecuting, StateDone, true},
		{StateCleaningUp, StateDone, true},
		{StateCleaningUp, StateExecuting, false},
		{StateDone, StateIdle, false},
		{StateFailed, StateUploading, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			cur := tt.from
			err := Transition(&cur, tt.to)
			if tt.ok {
				assert.NoError(t, err)
				assert.Equal(t, tt.to, cur)
			} else {
				assert.Error(t, err)
				assert.Equal(t, tt.from, cur, "state unchanged on error")
			}
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(StateDone))
	assert.True(t, IsTerminal(StateFailed))
	assert.False(t, IsTerminal(StateIdle))
	assert.False(t, IsTerminal(StateCleaningUp))
}
