package connection

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/shellshock/internal/errors"
)

// chainOf builds k0 -> k1 -> ... -> k<refs> where the last key is a literal.
func chainOf(refs int) *Collection {
	c := NewCollection()
	for i := 0; i < refs; i++ {
		c.Set(fmt.Sprintf("k%d", i), Reference(fmt.Sprintf("k%d", i+1)))
	}
	c.Set(fmt.Sprintf("k%d", refs), Literal(Record{"user": "deep"}))
	return c
}

func TestFollow_Literal(t *testing.T) {
	c := NewCollection().Set("web", Literal(Record{"user": "deploy"}))

	rec, err := Follow(c, "web")
	require.NoError(t, err)
	assert.Equal(t, "deploy", rec["user"])
}

func TestFollow_Depth(t *testing.T) {
	tests := []struct {
		name    string
		refs    int
		wantErr error
	}{
		{name: "single reference", refs: 1},
		{name: "nine references", refs: 9},
		{name: "ten references", refs: 10},
		{name: "eleven references", refs: 11, wantErr: errors.ErrExcessiveIndirection},
		{name: "twenty references", refs: 20, wantErr: errors.ErrExcessiveIndirection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Follow(chainOf(tt.refs), "k0")
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, stderrors.Is(err, tt.wantErr))
				assert.True(t, errors.IsCode(err, errors.ErrResolution))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "deep", rec["user"])
		})
	}
}

func TestFollow_Cycles(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Collection
		key   string
	}{
		{
			name: "self reference",
			build: func() *Collection {
				return NewCollection().Set("a", Reference("a"))
			},
			key: "a",
		},
		{
			name: "two entry cycle",
			build: func() *Collection {
				return NewCollection().Set("a", Reference("b")).Set("b", Reference("a"))
			},
			key: "a",
		},
		{
			name: "cycle further down the chain",
			build: func() *Collection {
				return NewCollection().
					Set("a", Reference("b")).
					Set("b", Reference("c")).
					Set("c", Reference("b"))
			},
			key: "a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Follow(tt.build(), tt.key)
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, errors.ErrRecursiveReference))
			assert.Contains(t, err.Error(), "Recursive connection importing detected")
		})
	}
}

func TestFollow_UnknownReference(t *testing.T) {
	c := NewCollection().Set("web", Reference("missing"))

	_, err := Follow(c, "web")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrUnknownReference))
	assert.Contains(t, err.Error(), `"missing"`)
	assert.Contains(t, err.Error(), "web -> missing")
}

func TestFollow_MissingKey(t *testing.T) {
	_, err := Follow(NewCollection(), "nope")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrUnknownReference))
}
