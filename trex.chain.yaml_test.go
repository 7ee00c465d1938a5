package trex

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testChainYAML = `- id: base
  entries:
    greeting: Hello
    main: fallback
- id: site
  entries:
    main: site-main
    count: 3
`

func TestParseChainYAML(t *testing.T) {
	t.Run("root-first list becomes a parent-linked chain", func(t *testing.T) {
		head, err := ParseChainYAML([]byte(testChainYAML))
		require.NoError(t, err)
		require.NotNil(t, head)

		assert.Equal(t, "site", head.ID)
		require.NotNil(t, head.Parent)
		assert.Equal(t, "base", head.Parent.ID)
		assert.Nil(t, head.Parent.Parent)
	})

	t.Run("parsed chain renders", func(t *testing.T) {
		head, err := ParseChainYAML([]byte(testChainYAML))
		require.NoError(t, err)

		out, err := Render(context.Background(), head)
		require.NoError(t, err)
		assert.Equal(t, "site-main", out)

		out, err = Render(context.Background(), head, WithEntrypoint("greeting"))
		require.NoError(t, err)
		assert.Equal(t, "Hello", out)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := ParseChainYAML([]byte("{ unclosed"))
		require.Error(t, err)
	})

	t.Run("empty chain", func(t *testing.T) {
		_, err := ParseChainYAML([]byte("[]"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgYAMLEmptyChain)
	})

	t.Run("missing id caught at chain construction", func(t *testing.T) {
		head, err := ParseChainYAML([]byte("- entries:\n    x: 1\n"))
		require.NoError(t, err)

		_, err = NewChainProvider(head, nil, nil)
		require.Error(t, err)
	})
}

func TestMarshalChainYAML(t *testing.T) {
	t.Run("round trip preserves chain shape", func(t *testing.T) {
		head, err := ParseChainYAML([]byte(testChainYAML))
		require.NoError(t, err)

		data, err := MarshalChainYAML(head)
		require.NoError(t, err)

		again, err := ParseChainYAML(data)
		require.NoError(t, err)
		assert.Equal(t, head.ID, again.ID)
		assert.Equal(t, head.Entries["main"], again.Entries["main"])
		require.NotNil(t, again.Parent)
		assert.Equal(t, head.Parent.Entries["greeting"], again.Parent.Entries["greeting"])
	})

	t.Run("nil chain", func(t *testing.T) {
		_, err := MarshalChainYAML(nil)
		require.Error(t, err)
	})

	t.Run("callable entries refuse serialization", func(t *testing.T) {
		head := NewProvider("base", map[string]any{
			"main": Callable(func(ctx context.Context, tr *T, args ...any) (any, error) {
				return nil, nil
			}),
		})

		_, err := MarshalChainYAML(head)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgYAMLCallableEntry)
	})
}
