package hooks_test

import (
	"testing"

	"github.com/glorpus-work/suitehooks/pkg/errors"
	"github.com/glorpus-work/suitehooks/pkg/hooks"
	"github.com/glorpus-work/suitehooks/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var beforeEach = lifecycle.Slot{Phase: lifecycle.Before, Period: lifecycle.Each}

func newInstance(t *testing.T) *lifecycle.Instance {
	t.Helper()
	class, err := lifecycle.NewRegistry().Define("Suite", nil)
	require.NoError(t, err)
	return class.NewInstance()
}

func TestTengoExecutor(t *testing.T) {
	executor := hooks.NewTengoExecutor()

	t.Run("Fields are readable and new globals are stored", func(t *testing.T) {
		inst := newInstance(t)
		inst.Set("a", 1)

		err := executor.Execute("derive", beforeEach, []byte(`b := a + 1`), inst)
		require.NoError(t, err)

		b, err := lifecycle.Field[int64](inst, "b")
		require.NoError(t, err)
		assert.Equal(t, int64(2), b)

		// Untouched fields keep their Go type.
		a, err := lifecycle.Field[int](inst, "a")
		require.NoError(t, err)
		assert.Equal(t, 1, a)
	})

	t.Run("Assignments and in-place mutations are written back", func(t *testing.T) {
		inst := newInstance(t)
		inst.Set("count", 1)
		inst.Set("cfg", map[string]interface{}{"retries": 1})

		err := executor.Execute("bump", beforeEach, []byte(`
count = count + 10
cfg.retries = 3
`), inst)
		require.NoError(t, err)

		count, _ := inst.Get("count")
		assert.Equal(t, int64(11), count)
		cfg, _ := inst.Get("cfg")
		assert.Equal(t, map[string]interface{}{"retries": int64(3)}, cfg)
	})

	t.Run("err fails the hook", func(t *testing.T) {
		inst := newInstance(t)
		inst.Set("b", 3)

		err := executor.Execute("check", beforeEach, []byte(`
if b != 2 {
	err = "b should be 2"
}
`), inst)
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrHookScript)
		assert.Contains(t, err.Error(), "b should be 2")
		assert.Contains(t, err.Error(), "check")
		assert.False(t, inst.Has("err"))
	})

	t.Run("err as error object", func(t *testing.T) {
		err := executor.Execute("check", beforeEach, []byte(`err = error("nope")`), newInstance(t))
		assert.ErrorIs(t, err, errors.ErrHookScript)
		assert.Contains(t, err.Error(), "nope")
	})

	t.Run("Compile errors are execution errors", func(t *testing.T) {
		err := executor.Execute("broken", beforeEach, []byte(`non_existent_function()`), newInstance(t))
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrHookExecution)
	})

	t.Run("Hook module and imports are not stored", func(t *testing.T) {
		inst := newInstance(t)
		err := executor.Execute("describe", lifecycle.Slot{Phase: lifecycle.After, Period: lifecycle.All}, []byte(`
h := import("hook")
text := import("text")
who := text.join([h.class, h.phase, h.period, h.name], "/")
`), inst)
		require.NoError(t, err)

		assert.Equal(t, []string{"who"}, inst.Names())
		who, _ := inst.Get("who")
		assert.Equal(t, "Suite/after/all/describe", who)
	})

	t.Run("Fields scripts cannot represent are left alone", func(t *testing.T) {
		inst := newInstance(t)
		handle := &struct{ open bool }{open: true}
		inst.Set("handle", handle)
		inst.Set("not-an-identifier", "x")

		err := executor.Execute("noop", beforeEach, []byte(`x := 1`), inst)
		require.NoError(t, err)

		got, _ := inst.Get("handle")
		assert.Same(t, handle, got)
	})

	t.Run("Restricted modules", func(t *testing.T) {
		restricted := hooks.NewTengoExecutor(hooks.WithModules("fmt"))
		err := restricted.Execute("imports", beforeEach, []byte(`text := import("text")`), newInstance(t))
		assert.ErrorIs(t, err, errors.ErrHookExecution)
	})

	t.Run("Allocation limit", func(t *testing.T) {
		limited := hooks.NewTengoExecutor(hooks.WithMaxAllocs(5))
		err := limited.Execute("greedy", beforeEach, []byte(`
xs := []
for i := 0; i < 100; i++ {
	xs = append(xs, [i])
}
`), newInstance(t))
		assert.ErrorIs(t, err, errors.ErrHookExecution)
	})
}

func TestTengoExecutor_HookWithRegistry(t *testing.T) {
	executor := hooks.NewTengoExecutor()
	reg := lifecycle.NewRegistry()
	base, err := reg.Define("Base", nil)
	require.NoError(t, err)
	child, err := reg.Define("Child", base)
	require.NoError(t, err)

	require.NoError(t, hooks.RegisterScript(base, beforeEach, "seed", `a := 1`, executor))
	require.NoError(t, hooks.RegisterScript(child, beforeEach, "derive", `b := a + 1`, executor))

	inst := child.NewInstance()
	require.NoError(t, inst.Setup())

	a, _ := inst.Get("a")
	b, _ := inst.Get("b")
	assert.Equal(t, int64(1), a)
	assert.Equal(t, int64(2), b)
}

func TestTengoExecutor_BeforeAllPublishesScriptGlobals(t *testing.T) {
	executor := hooks.NewTengoExecutor()
	class, err := lifecycle.NewRegistry().Define("Suite", nil)
	require.NoError(t, err)

	beforeAll := lifecycle.Slot{Phase: lifecycle.Before, Period: lifecycle.All}
	require.NoError(t, hooks.RegisterScript(class, beforeAll, "shared", `shared := {dsn: "mem://suite"}`, executor))

	values, err := class.NewInstance().RunAllCallbacks(lifecycle.Before)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.Values{"shared": map[string]interface{}{"dsn": "mem://suite"}}, values)
}

func TestTengoExecutor_SharedValuesAreCopiedPerTest(t *testing.T) {
	executor := hooks.NewTengoExecutor()
	class, err := lifecycle.NewRegistry().Define("Suite", nil)
	require.NoError(t, err)

	beforeAll := lifecycle.Slot{Phase: lifecycle.Before, Period: lifecycle.All}
	require.NoError(t, hooks.RegisterScript(class, beforeAll, "shared", `shared := {x: 1}`, executor))
	require.NoError(t, hooks.RegisterScript(class, beforeEach, "mutate", `shared.x = 5`, executor))

	values, err := class.NewInstance().RunAllCallbacks(lifecycle.Before)
	require.NoError(t, err)

	first := class.NewInstance()
	first.SetValuesFromCallbacks(values)
	require.NoError(t, first.Setup())
	shared, _ := first.Get("shared")
	assert.Equal(t, map[string]interface{}{"x": int64(5)}, shared)

	// The mutation above happened on a script copy
	second := class.NewInstance()
	second.SetValuesFromCallbacks(values)
	shared, _ = second.Get("shared")
	assert.Equal(t, map[string]interface{}{"x": int64(1)}, shared)
	assert.Equal(t, lifecycle.Values{"shared": map[string]interface{}{"x": int64(1)}}, values)
}
