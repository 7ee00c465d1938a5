package trex

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebugView_Fields(t *testing.T) {
	tmpl := NewProvider("tpl", map[string]any{
		"main": Callable(func(ctx context.Context, tr *T, args ...any) (any, error) {
			return tr.Debug(), nil
		}),
	})
	ctxChain := NewProvider("ctx", nil)

	out, err := Render(context.Background(), tmpl,
		WithContextChain(ctxChain), WithEntrypoint("main"), WithDebugMarks(true))
	require.NoError(t, err)
	view, ok := out.(*DebugView)
	require.True(t, ok)

	t.Run("typed accessors", func(t *testing.T) {
		assert.Same(t, tmpl, view.TemplateChain())
		assert.Same(t, ctxChain, view.ContextChain())
		assert.Equal(t, "main", view.Entrypoint())
		assert.True(t, view.DebugMarks())
		assert.NotEmpty(t, view.RenderID())
	})

	t.Run("Get dispatch", func(t *testing.T) {
		val, err := view.Get(DebugFieldEntrypoint)
		require.NoError(t, err)
		assert.Equal(t, "main", val)

		val, err = view.Get(DebugFieldDebugMarks)
		require.NoError(t, err)
		assert.Equal(t, true, val)

		val, err = view.Get(DebugFieldTemplateChain)
		require.NoError(t, err)
		assert.Same(t, tmpl, val)
	})

	t.Run("Get printStack returns a function", func(t *testing.T) {
		val, err := view.Get(DebugFieldPrintStack)
		require.NoError(t, err)
		printStack, ok := val.(func() string)
		require.True(t, ok)
		assert.Equal(t, "main@tpl", printStack())
	})

	t.Run("Get unknown field is terminal", func(t *testing.T) {
		_, err := view.Get("nope")
		require.Error(t, err)
		assert.True(t, IsFinalError(err))
	})
}

func TestDebugView_Set(t *testing.T) {
	tmpl := NewProvider("tpl", map[string]any{"main": "x"})
	record := newDebugRecord(tmpl, nil, "main", false)
	view := &DebugView{record: record}

	t.Run("debugMarks is writable", func(t *testing.T) {
		require.NoError(t, view.Set(DebugFieldDebugMarks, true))
		assert.True(t, record.Marks())

		view.SetDebugMarks(false)
		assert.False(t, record.Marks())
	})

	t.Run("non-boolean debugMarks is terminal", func(t *testing.T) {
		err := view.Set(DebugFieldDebugMarks, "yes")
		require.Error(t, err)
		assert.True(t, IsFinalError(err))
	})

	t.Run("other fields are read-only", func(t *testing.T) {
		for _, field := range []string{
			DebugFieldTemplateChain,
			DebugFieldContextChain,
			DebugFieldEntrypoint,
			DebugFieldPrintStack,
			DebugFieldRenderID,
		} {
			err := view.Set(field, "anything")
			require.Error(t, err, field)
			assert.True(t, IsFinalError(err), field)
		}
	})
}

func TestDebugView_PrintStack(t *testing.T) {
	t.Run("head-first frame order", func(t *testing.T) {
		stack := []Frame{
			{Location: "inner", ProviderID: "p2"},
			{Location: "main", ProviderID: "p1"},
		}
		assert.Equal(t, "inner@p2, main@p1", stackTrace(stack))
	})

	t.Run("empty stack", func(t *testing.T) {
		assert.Equal(t, "", stackTrace(nil))
	})
}

func TestDebugMarks_ToggleMidRender(t *testing.T) {
	tmpl := NewProvider("tpl", map[string]any{
		"late": "wrapped",
		"main": Callable(func(ctx context.Context, tr *T, args ...any) (any, error) {
			// first resolution unmarked, then enable marks
			early, err := tr.Call(ctx, "late")
			if err != nil {
				return nil, err
			}
			tr.Debug().SetDebugMarks(true)
			marked, err := tr.Call(ctx, "late")
			if err != nil {
				return nil, err
			}
			return []any{early, marked}, nil
		}),
	})

	out, err := Render(context.Background(), tmpl)
	require.NoError(t, err)
	assert.Equal(t, []any{
		"wrapped",
		`<!--late@tpl-->wrapped<!--\late@tpl-->`,
	}, out)
}
