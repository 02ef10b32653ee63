package body_test

import (
	"testing"

	"github.com/orbitalsandbox/core/pkg/body"
	"github.com/orbitalsandbox/core/pkg/vector2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zerodha/logf"
)

func newManager() *body.Manager {
	return body.NewManager(logf.Logger{})
}

func TestManager_CreateBody_AssignsLowestUnusedID(t *testing.T) {
	m := newManager()

	b0 := m.CreateBody(func(id int) body.Body {
		return body.New(id, true, 1, vector2.Vector2{}, vector2.Vector2{}, vector2.Vector2{})
	})
	b1 := m.CreateBody(func(id int) body.Body {
		return body.New(id, true, 1, vector2.Vector2{}, vector2.Vector2{}, vector2.Vector2{})
	})
	assert.Equal(t, 0, b0.Id())
	assert.Equal(t, 1, b1.Id())

	require.True(t, m.TryDeleteBody(0))
	b2 := m.CreateBody(func(id int) body.Body {
		return body.New(id, true, 1, vector2.Vector2{}, vector2.Vector2{}, vector2.Vector2{})
	})
	assert.Equal(t, 0, b2.Id(), "freed id 0 should be reused before minting id 2")
}

func TestManager_TryAddBody_ThenCreateBody_NeverCollides(t *testing.T) {
	m := newManager()
	require.True(t, m.TryAddBody(body.New(0, true, 1, vector2.Vector2{}, vector2.Vector2{}, vector2.Vector2{})))

	created := m.CreateBody(func(id int) body.Body {
		return body.New(id, true, 1, vector2.Vector2{}, vector2.Vector2{}, vector2.Vector2{})
	})
	assert.NotEqual(t, 0, created.Id(), "CreateBody must not reassign an id TryAddBody already placed into the manager")

	original, ok := m.TryGetBody(0)
	require.True(t, ok, "the externally-supplied body must still be reachable, not silently overwritten")
	assert.True(t, original.Enabled())
	assert.Equal(t, 2, m.BodyCount())
	assert.Equal(t, 2, m.EnabledCount())
}

func TestManager_TryAddBody_IDBelowFreedIDIsNotReissued(t *testing.T) {
	m := newManager()
	b0 := m.CreateBody(func(id int) body.Body {
		return body.New(id, true, 1, vector2.Vector2{}, vector2.Vector2{}, vector2.Vector2{})
	})
	require.True(t, m.TryDeleteBody(b0.Id()))

	require.True(t, m.TryAddBody(body.New(0, true, 1, vector2.Vector2{}, vector2.Vector2{}, vector2.Vector2{})))

	created := m.CreateBody(func(id int) body.Body {
		return body.New(id, true, 1, vector2.Vector2{}, vector2.Vector2{}, vector2.Vector2{})
	})
	assert.NotEqual(t, 0, created.Id(), "the freed id 0 was re-consumed by TryAddBody and must not be handed out again")
}

func TestManager_CreateBody_PanicsOnFactoryIDMismatch(t *testing.T) {
	m := newManager()
	assert.Panics(t, func() {
		m.CreateBody(func(id int) body.Body {
			return body.New(id+1, true, 1, vector2.Vector2{}, vector2.Vector2{}, vector2.Vector2{})
		})
	})
}

func TestManager_TryAddBody_DuplicateIDFails(t *testing.T) {
	m := newManager()
	b := body.New(5, true, 1, vector2.Vector2{}, vector2.Vector2{}, vector2.Vector2{})
	require.True(t, m.TryAddBody(b))
	assert.False(t, m.TryAddBody(b))
}

func TestManager_TryDeleteBody_MissingIDFails(t *testing.T) {
	m := newManager()
	assert.False(t, m.TryDeleteBody(42))
}

func TestManager_TryGetBody_HasBody_GetBodyOrNull(t *testing.T) {
	m := newManager()
	b := body.New(1, true, 2, vector2.Vector2{}, vector2.Vector2{}, vector2.Vector2{})
	require.True(t, m.TryAddBody(b))

	got, ok := m.TryGetBody(1)
	require.True(t, ok)
	assert.Equal(t, 1, got.Id())
	assert.True(t, m.HasBody(1))
	assert.False(t, m.HasBody(2))
	assert.NotNil(t, m.GetBodyOrNull(1))
	assert.Nil(t, m.GetBodyOrNull(2))
}

func TestManager_EnabledSubset_DenseInvariant(t *testing.T) {
	m := newManager()
	for i := 0; i < 5; i++ {
		enabled := i%2 == 0
		require.True(t, m.TryAddBody(body.New(i, enabled, 1, vector2.Vector2{}, vector2.Vector2{}, vector2.Vector2{})))
	}

	assert.Equal(t, 5, m.BodyCount())
	assert.Equal(t, 3, m.EnabledCount())
	for _, b := range m.EnabledBodies() {
		assert.True(t, b.Enabled())
	}
}

func TestManager_TryDeleteBody_SwapRemoveKeepsDenseListConsistent(t *testing.T) {
	m := newManager()
	for i := 0; i < 4; i++ {
		require.True(t, m.TryAddBody(body.New(i, true, 1, vector2.Vector2{}, vector2.Vector2{}, vector2.Vector2{})))
	}
	require.True(t, m.TryDeleteBody(1))

	assert.Equal(t, 3, m.EnabledCount())
	ids := map[int]bool{}
	for _, b := range m.EnabledBodies() {
		ids[b.Id()] = true
	}
	assert.True(t, ids[0])
	assert.False(t, ids[1])
	assert.True(t, ids[2])
	assert.True(t, ids[3])
}

func TestManager_TryUpdateBody_PartialFieldsOnly(t *testing.T) {
	m := newManager()
	require.True(t, m.TryAddBody(body.New(1, true, 10, vector2.Vector2{X: 1, Y: 1}, vector2.Vector2{}, vector2.Vector2{})))

	newMass := 20.0
	require.True(t, m.TryUpdateBody(1, body.Updates{Mass: &newMass}))

	b, _ := m.TryGetBody(1)
	assert.Equal(t, 20.0, b.Mass())
	assert.Equal(t, vector2.Vector2{X: 1, Y: 1}, b.Position(), "unspecified fields are left unchanged")
}

func TestManager_TryUpdateBody_MissingIDFails(t *testing.T) {
	m := newManager()
	assert.False(t, m.TryUpdateBody(99, body.Updates{}))
}

func TestManager_TryUpdateBody_EnableDisableTransitionsUpdateDenseList(t *testing.T) {
	m := newManager()
	require.True(t, m.TryAddBody(body.New(1, false, 1, vector2.Vector2{}, vector2.Vector2{}, vector2.Vector2{})))
	assert.Equal(t, 0, m.EnabledCount())

	enable := true
	require.True(t, m.TryUpdateBody(1, body.Updates{Enabled: &enable}))
	assert.Equal(t, 1, m.EnabledCount())

	disable := false
	require.True(t, m.TryUpdateBody(1, body.Updates{Enabled: &disable}))
	assert.Equal(t, 0, m.EnabledCount())
}

func TestManager_Signals_FireExactlyOnceOnSuccess(t *testing.T) {
	m := newManager()
	var added, removed, modified int
	m.OnBodyAdded(func(*body.Body) { added++ })
	m.OnBodyRemoved(func(int) { removed++ })
	m.OnEnabledContentModified(func() { modified++ })

	require.True(t, m.TryAddBody(body.New(1, true, 1, vector2.Vector2{}, vector2.Vector2{}, vector2.Vector2{})))
	assert.Equal(t, 1, added)
	assert.Equal(t, 1, modified, "adding an enabled body touches the enabled set")

	require.False(t, m.TryAddBody(body.New(1, true, 1, vector2.Vector2{}, vector2.Vector2{}, vector2.Vector2{})))
	assert.Equal(t, 1, added, "duplicate add does not fire bodyAdded")

	mass := 5.0
	require.True(t, m.TryUpdateBody(1, body.Updates{Mass: &mass}))
	assert.Equal(t, 2, modified)

	require.True(t, m.TryDeleteBody(1))
	assert.Equal(t, 1, removed)

	require.False(t, m.TryDeleteBody(1))
	assert.Equal(t, 1, removed, "duplicate delete does not fire bodyRemoved")
}

func TestManager_SetPosition_BypassesSignals(t *testing.T) {
	m := newManager()
	var modified int
	m.OnEnabledContentModified(func() { modified++ })
	require.True(t, m.TryAddBody(body.New(1, true, 1, vector2.Vector2{}, vector2.Vector2{}, vector2.Vector2{})))
	assert.Equal(t, 1, modified)

	b, _ := m.TryGetBody(1)
	b.SetPosition(vector2.Vector2{X: 9, Y: 9})
	assert.Equal(t, vector2.Vector2{X: 9, Y: 9}, b.Position())
	assert.Equal(t, 1, modified, "direct setters used by the integration hot path do not fire signals")
}
