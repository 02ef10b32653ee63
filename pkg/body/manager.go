package body

import (
	"container/heap"
	"fmt"

	"github.com/zerodha/logf"
)

// ProgrammerError reports a contract violation by a caller of this
// package — a bug, not an ordinary runtime condition. It is always
// delivered via panic; see Manager.CreateBody.
type ProgrammerError struct {
	Op  string
	Msg string
}

func (e ProgrammerError) Error() string {
	return fmt.Sprintf("body: programmer error in %s: %s", e.Op, e.Msg)
}

// Updates is a partial update applied atomically to a body by
// Manager.TryUpdateBody. A nil field leaves the corresponding part of
// the body's state unchanged.
type Updates struct {
	Enabled *bool
	Mass    *float64
	PosX    *float64
	PosY    *float64
	VelX    *float64
	VelY    *float64
	AccX    *float64
	AccY    *float64
}

// Manager owns every Body in a simulation. It assigns ids, maintains a
// dense contiguous list of enabled bodies for tight iteration, and
// delivers the bodyAdded/bodyRemoved/enabledContentModified signals
// synchronously from within the call that caused them.
type Manager struct {
	all     map[int]*Body
	enabled []*Body

	freeIDs     idHeap
	nextFreshID int

	onBodyAdded              []func(*Body)
	onBodyRemoved            []func(int)
	onEnabledContentModified []func()

	log logf.Logger
}

// NewManager builds an empty Manager. A zero-value logf.Logger is a
// valid, silent discard logger, so log may be omitted by callers that
// don't care about diagnostics.
func NewManager(log logf.Logger) *Manager {
	return &Manager{
		all: make(map[int]*Body),
		log: log,
	}
}

// OnBodyAdded registers a callback invoked synchronously, once, after a
// body is successfully added by CreateBody or TryAddBody.
func (m *Manager) OnBodyAdded(fn func(*Body)) {
	m.onBodyAdded = append(m.onBodyAdded, fn)
}

// OnBodyRemoved registers a callback invoked synchronously, once, after
// a body is successfully removed by TryDeleteBody.
func (m *Manager) OnBodyRemoved(fn func(int)) {
	m.onBodyRemoved = append(m.onBodyRemoved, fn)
}

// OnEnabledContentModified registers a callback invoked synchronously
// whenever the enabled set changes membership, or any enabled body is
// updated via TryUpdateBody.
func (m *Manager) OnEnabledContentModified(fn func()) {
	m.onEnabledContentModified = append(m.onEnabledContentModified, fn)
}

// allocateID returns the lowest unused non-negative id, preferring a
// freed id below nextFreshID over a fresh one. Both sources are
// validated against the live id set before being handed out: TryAddBody
// can insert an externally-supplied id (e.g. from Engine.Import) that
// happens to sit in freeIDs or at or above nextFreshID, and allocateID
// must never repeat an id that is currently in use.
func (m *Manager) allocateID() int {
	for len(m.freeIDs) > 0 && m.freeIDs[0] < m.nextFreshID {
		id := heap.Pop(&m.freeIDs).(int)
		if _, exists := m.all[id]; !exists {
			return id
		}
	}
	for {
		id := m.nextFreshID
		m.nextFreshID++
		if _, exists := m.all[id]; !exists {
			return id
		}
	}
}

// CreateBody assigns the lowest unused id, invokes factory with that id
// to construct the Body, and inserts it. It panics with a
// ProgrammerError if factory returns a body whose id does not match the
// id it was given — a contract violation by the caller's factory, not
// an ordinary runtime condition.
func (m *Manager) CreateBody(factory func(id int) Body) *Body {
	id := m.allocateID()
	b := factory(id)
	if b.Id() != id {
		panic(ProgrammerError{
			Op:  "CreateBody",
			Msg: fmt.Sprintf("factory returned body with id %d, expected %d", b.Id(), id),
		})
	}
	return m.insert(&b)
}

// TryAddBody inserts a fully-formed body, failing if its id is already
// present.
func (m *Manager) TryAddBody(b Body) bool {
	if _, exists := m.all[b.Id()]; exists {
		return false
	}
	m.insert(&b)
	return true
}

func (m *Manager) insert(b *Body) *Body {
	b.enabledIndex = enabledIndexDisabled
	m.all[b.Id()] = b
	if b.Id() >= m.nextFreshID {
		m.nextFreshID = b.Id() + 1
	}
	if b.enabled {
		m.addToEnabled(b)
		for _, fn := range m.onEnabledContentModified {
			fn()
		}
	}
	m.log.Debug("body added", "id", b.Id(), "enabled", b.enabled, "mass", b.mass)
	for _, fn := range m.onBodyAdded {
		fn(b)
	}
	return b
}

// TryDeleteBody removes the body with the given id, failing if no such
// body exists.
func (m *Manager) TryDeleteBody(id int) bool {
	b, ok := m.all[id]
	if !ok {
		return false
	}
	if b.enabled {
		m.removeFromEnabled(b)
		for _, fn := range m.onEnabledContentModified {
			fn()
		}
	}
	delete(m.all, id)
	heap.Push(&m.freeIDs, id)
	m.log.Debug("body removed", "id", id)
	for _, fn := range m.onBodyRemoved {
		fn(id)
	}
	return true
}

// TryUpdateBody atomically applies the named fields of u to the body
// with the given id, leaving unset fields unchanged. It fails if no
// such body exists.
func (m *Manager) TryUpdateBody(id int, u Updates) bool {
	b, ok := m.all[id]
	if !ok {
		return false
	}

	wasEnabled := b.enabled

	if u.Enabled != nil {
		b.enabled = *u.Enabled
	}
	if u.Mass != nil {
		b.mass = *u.Mass
	}
	if u.PosX != nil {
		b.position.X = *u.PosX
	}
	if u.PosY != nil {
		b.position.Y = *u.PosY
	}
	if u.VelX != nil {
		b.velocity.X = *u.VelX
	}
	if u.VelY != nil {
		b.velocity.Y = *u.VelY
	}
	if u.AccX != nil {
		b.acceleration.X = *u.AccX
	}
	if u.AccY != nil {
		b.acceleration.Y = *u.AccY
	}

	switch {
	case !wasEnabled && b.enabled:
		m.addToEnabled(b)
	case wasEnabled && !b.enabled:
		m.removeFromEnabled(b)
	}

	// Any enabled body that was touched — whether or not its enabled
	// flag itself changed — invalidates downstream cached views.
	if wasEnabled || b.enabled {
		for _, fn := range m.onEnabledContentModified {
			fn()
		}
	}
	return true
}

// TryGetBody returns the body with the given id, if present.
func (m *Manager) TryGetBody(id int) (*Body, bool) {
	b, ok := m.all[id]
	return b, ok
}

// HasBody reports whether a body with the given id exists.
func (m *Manager) HasBody(id int) bool {
	_, ok := m.all[id]
	return ok
}

// GetBodyOrNull returns the body with the given id, or nil if absent.
func (m *Manager) GetBodyOrNull(id int) *Body {
	return m.all[id]
}

// BodyCount returns the total number of bodies, enabled or not.
func (m *Manager) BodyCount() int {
	return len(m.all)
}

// EnabledCount returns the number of enabled bodies.
func (m *Manager) EnabledCount() int {
	return len(m.enabled)
}

// AllBodies returns a read view over every body, keyed by id. The
// returned map aliases the manager's own storage and must be treated as
// read-only.
func (m *Manager) AllBodies() map[int]*Body {
	return m.all
}

// EnabledBodies returns the dense, index-contiguous slice of currently
// enabled bodies. The slice aliases the manager's own storage: it is
// invalidated by any subsequent mutating call and must not be retained
// across one.
func (m *Manager) EnabledBodies() []*Body {
	return m.enabled
}

// addToEnabled appends b to the dense enabled list and records its
// position.
func (m *Manager) addToEnabled(b *Body) {
	b.enabledIndex = len(m.enabled)
	m.enabled = append(m.enabled, b)
}

// removeFromEnabled removes b from the dense enabled list using
// swap-with-last, fixing up the displaced body's enabledIndex.
func (m *Manager) removeFromEnabled(b *Body) {
	last := len(m.enabled) - 1
	idx := b.enabledIndex
	if idx != last {
		moved := m.enabled[last]
		m.enabled[idx] = moved
		moved.enabledIndex = idx
	}
	m.enabled[last] = nil
	m.enabled = m.enabled[:last]
	b.enabledIndex = enabledIndexDisabled
}
