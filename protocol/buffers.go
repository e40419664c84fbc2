package protocol

// InputBuffer is a window onto received bytes that the decoder consumes
// from the front.
type InputBuffer interface {
	// Data returns the unread bytes. The slice is valid until the next Pop.
	Data() []byte

	// Available returns len(Data())
	Available() int

	// Pop drops n bytes from the front
	Pop(n int)
}

// FrameSink receives encoded bytes. The board's UART writer and every
// OutputBuffer satisfy it.
type FrameSink interface {
	// Output writes data to the sink
	Output(data []byte)
}

// OutputBuffer is a FrameSink that can be rewound and patched in place, so
// the length byte can be filled in after the payload is written.
type OutputBuffer interface {
	FrameSink

	// CurPosition returns the current write position
	CurPosition() int

	// Update overwrites the byte at pos
	Update(pos int, val byte)

	// DataSince returns the bytes written from pos on
	DataSince(pos int) []byte
}

// SliceInputBuffer reads from a fixed slice
type SliceInputBuffer struct {
	data []byte
}

// NewSliceInputBuffer wraps data
func NewSliceInputBuffer(data []byte) *SliceInputBuffer {
	return &SliceInputBuffer{data: data}
}

func (s *SliceInputBuffer) Data() []byte   { return s.data }
func (s *SliceInputBuffer) Available() int { return len(s.data) }

func (s *SliceInputBuffer) Pop(n int) {
	s.data = s.data[min(n, len(s.data)):]
}

// ScratchOutput is a fixed MessageMax-byte OutputBuffer. Writes past the end
// are cut short and flagged; nothing allocates.
type ScratchOutput struct {
	buf      [MessageMax]byte
	n        int
	overflow bool
}

// NewScratchOutput returns an empty buffer
func NewScratchOutput() *ScratchOutput {
	return &ScratchOutput{}
}

func (s *ScratchOutput) Output(data []byte) {
	copied := copy(s.buf[s.n:], data)
	s.n += copied
	if copied < len(data) {
		s.overflow = true
	}
}

func (s *ScratchOutput) CurPosition() int {
	return s.n
}

func (s *ScratchOutput) Update(pos int, val byte) {
	if pos >= 0 && pos < s.n {
		s.buf[pos] = val
	}
}

func (s *ScratchOutput) DataSince(pos int) []byte {
	if pos < 0 || pos > s.n {
		return nil
	}
	return s.buf[pos:s.n]
}

// Result returns everything written since the last Reset
func (s *ScratchOutput) Result() []byte {
	return s.buf[:s.n]
}

// Reset empties the buffer and clears the overflow flag
func (s *ScratchOutput) Reset() {
	s.n = 0
	s.overflow = false
}

// Truncate drops everything written after pos
func (s *ScratchOutput) Truncate(pos int) {
	if pos >= 0 && pos < s.n {
		s.n = pos
	}
}

// Overflowed reports whether any Output since the last Reset was cut short
func (s *ScratchOutput) Overflowed() bool {
	return s.overflow
}

// FifoBuffer queues bytes between the serial reader and the decoder. All of
// its capacity is usable. Data compacts wrapped contents in place, so the
// decoder always sees one contiguous slice without an allocation.
type FifoBuffer struct {
	buf  []byte
	head int // index of the oldest byte
	n    int // bytes queued
}

// NewFifoBuffer returns a FIFO holding up to capacity bytes
func NewFifoBuffer(capacity int) *FifoBuffer {
	return &FifoBuffer{buf: make([]byte, capacity)}
}

// Write queues as much of data as fits and returns the count
func (f *FifoBuffer) Write(data []byte) int {
	written := 0
	for written < len(data) && f.n < len(f.buf) {
		tail := (f.head + f.n) % len(f.buf)
		end := len(f.buf)
		if tail < f.head {
			end = f.head
		}
		c := copy(f.buf[tail:end], data[written:])
		written += c
		f.n += c
	}
	return written
}

// Read dequeues up to len(data) bytes
func (f *FifoBuffer) Read(data []byte) int {
	c := copy(data, f.Data())
	f.Pop(c)
	return c
}

// Available returns the number of queued bytes
func (f *FifoBuffer) Available() int {
	return f.n
}

// Free returns the room left for Write
func (f *FifoBuffer) Free() int {
	return len(f.buf) - f.n
}

// Data returns the queued bytes, oldest first
func (f *FifoBuffer) Data() []byte {
	if f.head+f.n > len(f.buf) {
		f.compact()
	}
	return f.buf[f.head : f.head+f.n]
}

// compact rotates the buffer so the queued bytes start at index 0
func (f *FifoBuffer) compact() {
	rotate(f.buf, f.head)
	f.head = 0
}

// rotate moves b[k:] to the front of b by three reversals
func rotate(b []byte, k int) {
	reverse(b[:k])
	reverse(b[k:])
	reverse(b)
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// Pop drops n bytes from the front
func (f *FifoBuffer) Pop(n int) {
	n = min(n, f.n)
	f.n -= n
	if f.n == 0 {
		f.head = 0
		return
	}
	f.head = (f.head + n) % len(f.buf)
}

// IsEmpty reports whether nothing is queued
func (f *FifoBuffer) IsEmpty() bool {
	return f.n == 0
}

// Reset drops everything queued
func (f *FifoBuffer) Reset() {
	f.head = 0
	f.n = 0
}
