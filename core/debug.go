package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// IRQEvent is one entry of the interrupt event ring
type IRQEvent struct {
	Kind  uint8  // Event kind code
	IRQ   uint8  // Interrupt line
	Seq   uint32 // Global event sequence number
	Value uint32 // Kind-dependent value (dispatch count, replacement count)
}

// Event kind codes
const (
	EvtDispatch  = 1 // Handler ran
	EvtUnclaimed = 2 // No handler, default handler taken
	EvtReplaced  = 3 // Claim displaced another owner
	EvtShutdown  = 4 // Driver retired its line
)

const (
	IRQRingSize = 32 // Keep last 32 events for post-mortem
)

var (
	// debugPrintln is the global debug print function (set by target code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether debug output is active
	debugEnabled bool = false

	// Interrupt event ring (non-blocking, for post-mortem)
	irqRing     [IRQRingSize]IRQEvent
	irqRingHead uint8
	irqSeq      uint32
	irqEnabled  bool = true

	// Deferred lines from interrupt context, drained by FlushDebug
	debugChan chan string
)

// SetDebugWriter sets the platform-specific debug output function
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// SetIRQRecording turns the interrupt event ring on or off
func SetIRQRecording(enabled bool) {
	irqEnabled = enabled
}

// DebugQueueSize is the number of deferred debug lines held between flushes
const DebugQueueSize = 16

// InitAsyncDebug enables the deferred debug queue used by DebugAsync. The
// queue is drained by FlushDebug from the main loop, so the writer never
// runs in interrupt context.
func InitAsyncDebug() {
	debugChan = make(chan string, DebugQueueSize)
}

// StopAsyncDebug drops the queue and anything still in it
func StopAsyncDebug() {
	debugChan = nil
}

// FlushDebug writes every queued line through the debug writer and returns
// how many were written. It never blocks.
func FlushDebug() int {
	n := 0
	for debugChan != nil {
		select {
		case msg := <-debugChan:
			DebugPrintln(msg)
			n++
		default:
			return n
		}
	}
	return n
}

// DebugPrintln writes a debug message using the platform-specific writer.
// It runs the writer inline; interrupt handlers use DebugAsync instead.
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// DebugAsync queues msg for the next FlushDebug. It never blocks: the line
// is dropped when the queue is full or was never initialized.
func DebugAsync(msg string) {
	if debugChan != nil && debugEnabled {
		select {
		case debugChan <- msg:
		default:
		}
	}
}

// RecordIRQ stores an interrupt event in the ring buffer
func RecordIRQ(kind, irq uint8, value uint32) {
	if !irqEnabled {
		return
	}
	irqSeq++
	idx := irqRingHead
	irqRing[idx] = IRQEvent{
		Kind:  kind,
		IRQ:   irq,
		Seq:   irqSeq,
		Value: value,
	}
	irqRingHead = (idx + 1) % IRQRingSize
}

// IRQRing returns the recorded events from oldest to newest
func IRQRing() []IRQEvent {
	out := make([]IRQEvent, 0, IRQRingSize)
	start := irqRingHead
	for i := uint8(0); i < IRQRingSize; i++ {
		evt := irqRing[(start+i)%IRQRingSize]
		if evt.Kind == 0 {
			continue
		}
		out = append(out, evt)
	}
	return out
}

// DumpIRQRing writes the interrupt ring through the debug writer
func DumpIRQRing() {
	if debugPrintln == nil {
		return
	}

	debugPrintln("[IRQ] === Interrupt Ring Dump ===")
	for _, evt := range IRQRing() {
		var name string
		switch evt.Kind {
		case EvtDispatch:
			name = "DISPATCH"
		case EvtUnclaimed:
			name = "UNCLAIMED!"
		case EvtReplaced:
			name = "REPLACED"
		case EvtShutdown:
			name = "SHUTDOWN"
		default:
			name = "UNKNOWN"
		}

		debugPrintln("[IRQ] " + name +
			" irq=" + itoa(int(evt.IRQ)) +
			" seq=" + utoa(evt.Seq) +
			" v=" + utoa(evt.Value))
	}
	debugPrintln("[IRQ] === End Dump ===")
}

// ClearIRQRing clears the interrupt ring
func ClearIRQRing() {
	for i := range irqRing {
		irqRing[i] = IRQEvent{}
	}
	irqRingHead = 0
	irqSeq = 0
}
