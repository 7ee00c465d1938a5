package trex

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_New(t *testing.T) {
	t.Run("nil entries become empty map", func(t *testing.T) {
		p := NewProvider("id", nil)
		require.NotNil(t, p.Entries)
		assert.Empty(t, p.Entries)
	})

	t.Run("WithParent links and returns the provider", func(t *testing.T) {
		root := NewProvider("root", nil)
		leaf := NewProvider("leaf", nil).WithParent(root)
		assert.Same(t, root, leaf.Parent)
	})
}

func TestAsCallable(t *testing.T) {
	fn := func(ctx context.Context, tr *T, args ...any) (any, error) {
		return nil, nil
	}

	t.Run("named Callable", func(t *testing.T) {
		_, ok := asCallable(Callable(fn))
		assert.True(t, ok)
	})

	t.Run("bare function literal", func(t *testing.T) {
		_, ok := asCallable(fn)
		assert.True(t, ok)
	})

	t.Run("plain values are not callable", func(t *testing.T) {
		for _, v := range []any{nil, "s", 1, true, []any{1}, map[string]any{}} {
			_, ok := asCallable(v)
			assert.False(t, ok)
		}
	})

	t.Run("other function shapes are not callable", func(t *testing.T) {
		_, ok := asCallable(func() {})
		assert.False(t, ok)
	})
}

type fakeSequence struct {
	elements []any
}

func (s *fakeSequence) Elements() []any {
	return s.elements
}

func TestMaterialize(t *testing.T) {
	t.Run("any slice is copied", func(t *testing.T) {
		in := []any{1, 2}
		out, ok := materialize(in)
		require.True(t, ok)
		assert.Equal(t, in, out)

		out[0] = 99
		assert.Equal(t, 1, in[0])
	})

	t.Run("Iterable", func(t *testing.T) {
		out, ok := materialize(&fakeSequence{elements: []any{"a", "b"}})
		require.True(t, ok)
		assert.Equal(t, []any{"a", "b"}, out)
	})

	t.Run("typed slice", func(t *testing.T) {
		out, ok := materialize([]string{"x", "y"})
		require.True(t, ok)
		assert.Equal(t, []any{"x", "y"}, out)
	})

	t.Run("array", func(t *testing.T) {
		out, ok := materialize([2]int{3, 4})
		require.True(t, ok)
		assert.Equal(t, []any{3, 4}, out)
	})

	t.Run("non-sequence values", func(t *testing.T) {
		for _, v := range []any{42, "str", map[string]any{}, nil} {
			_, ok := materialize(v)
			assert.False(t, ok)
		}
	})
}

func TestValidateChain(t *testing.T) {
	t.Run("valid chain", func(t *testing.T) {
		root := NewProvider("root", nil)
		leaf := NewProvider("leaf", nil).WithParent(root)
		assert.NoError(t, validateChain(leaf, ChainKindTemplate))
	})

	t.Run("fails on first invalid provider from head", func(t *testing.T) {
		bad := NewProvider("", nil)
		mid := NewProvider("mid", nil).WithParent(bad)
		leaf := NewProvider("leaf", nil).WithParent(mid)

		err := validateChain(leaf, ChainKindContext)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ChainKindContext)
		assert.Contains(t, err.Error(), "mid")
	})
}

func TestChainRootFirst(t *testing.T) {
	root := NewProvider("root", nil)
	mid := NewProvider("mid", nil).WithParent(root)
	leaf := NewProvider("leaf", nil).WithParent(mid)

	ordered := chainRootFirst(leaf)
	require.Len(t, ordered, 3)
	assert.Equal(t, "root", ordered[0].ID)
	assert.Equal(t, "mid", ordered[1].ID)
	assert.Equal(t, "leaf", ordered[2].ID)
}
