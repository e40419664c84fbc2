package core

// CallbackID selects which hook of a registered target a driver invokes.
type CallbackID uint8

const (
	CallbackNone CallbackID = iota
	Callback0
	Callback1
	Callback2
	Callback3
	Heartbeat
)

// String returns the slot name
func (id CallbackID) String() string {
	switch id {
	case CallbackNone:
		return "none"
	case Callback0:
		return "callback0"
	case Callback1:
		return "callback1"
	case Callback2:
		return "callback2"
	case Callback3:
		return "callback3"
	case Heartbeat:
		return "heartbeat"
	}
	return "callback?" + itoa(int(id))
}

// The callback capability set. A target implements only the hooks it needs;
// a missing hook behaves as a no-op.
type (
	Callback0er interface{ Callback0() }
	Callback1er interface{ Callback1() }
	Callback2er interface{ Callback2() }
	Callback3er interface{ Callback3() }
	Heartbeater interface{ Heartbeat() }
)

// Handlers is a target built from closures. Nil fields are no-ops.
type Handlers struct {
	OnCallback0 func()
	OnCallback1 func()
	OnCallback2 func()
	OnCallback3 func()
	OnHeartbeat func()
}

func (h *Handlers) lookup(id CallbackID) func() {
	switch id {
	case Callback0:
		return h.OnCallback0
	case Callback1:
		return h.OnCallback1
	case Callback2:
		return h.OnCallback2
	case Callback3:
		return h.OnCallback3
	case Heartbeat:
		return h.OnHeartbeat
	}
	return nil
}

// Resolve returns the hook of target selected by id, or nil if target does
// not provide it. The returned func is bound to target, so dispatch later
// needs no type inspection.
func Resolve(id CallbackID, target any) func() {
	if target == nil {
		return nil
	}
	switch h := target.(type) {
	case *Handlers:
		if h == nil {
			return nil
		}
		return h.lookup(id)
	case Handlers:
		return h.lookup(id)
	}

	switch id {
	case Callback0:
		if c, ok := target.(Callback0er); ok {
			return c.Callback0
		}
	case Callback1:
		if c, ok := target.(Callback1er); ok {
			return c.Callback1
		}
	case Callback2:
		if c, ok := target.(Callback2er); ok {
			return c.Callback2
		}
	case Callback3:
		if c, ok := target.(Callback3er); ok {
			return c.Callback3
		}
	case Heartbeat:
		if c, ok := target.(Heartbeater); ok {
			return c.Heartbeat
		}
	}
	return nil
}

// binding is the one-entry dispatch table a driver keeps.
type binding struct {
	id CallbackID
	fn func()
}

func bind(id CallbackID, target any) binding {
	if id == CallbackNone || id > Heartbeat || target == nil {
		return binding{}
	}
	return binding{id: id, fn: Resolve(id, target)}
}

func (b *binding) call() {
	if b.fn != nil {
		b.fn()
	}
}
