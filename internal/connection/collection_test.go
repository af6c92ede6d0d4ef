package connection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/shellshock/internal/errors"
)

func TestCollection_UnmarshalKeepsOrder(t *testing.T) {
	src := `
zeta: {user: z}
_default: {user: d, sudo: true}
alpha: zeta
"10.0.0.*": {verify-host: false}
`
	var c Collection
	require.NoError(t, yaml.Unmarshal([]byte(src), &c))

	assert.Equal(t, []string{"zeta", DefaultKey, "alpha", "10.0.0.*"}, c.Keys())

	alpha, ok := c.Get("alpha")
	require.True(t, ok)
	assert.True(t, alpha.IsReference())
	assert.Equal(t, "zeta", alpha.Ref)

	def, ok := c.Get(DefaultKey)
	require.True(t, ok)
	assert.False(t, def.IsReference())
	assert.Equal(t, true, def.Record["sudo"])
}

func TestCollection_UnmarshalJSON(t *testing.T) {
	// JSON is a subset of YAML, so config files in either format decode the same way.
	src := `{"web": {"user": "www", "port": 2222}, "db": "web"}`

	var c Collection
	require.NoError(t, yaml.Unmarshal([]byte(src), &c))
	assert.Equal(t, []string{"web", "db"}, c.Keys())

	web, _ := c.Get("web")
	assert.Equal(t, 2222, web.Record["port"])
}

func TestCollection_UnmarshalInvalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "not a mapping", src: `[a, b]`},
		{name: "null entry", src: `web: ~`},
		{name: "list entry", src: `web: [a]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Collection
			err := yaml.Unmarshal([]byte(tt.src), &c)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrValidation))
		})
	}
}

func TestCollection_SetReplacesInPlace(t *testing.T) {
	c := NewCollection().
		Set("a", Literal(nil)).
		Set("b", Reference("a")).
		Set("a", Literal(Record{"user": "x"}))

	assert.Equal(t, []string{"a", "b"}, c.Keys())
	assert.Equal(t, 2, c.Len())
}
