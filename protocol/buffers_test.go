package protocol

import (
	"bytes"
	"testing"
)

func TestSliceInputBuffer(t *testing.T) {
	in := NewSliceInputBuffer([]byte{1, 2, 3, 4, 5})

	steps := []struct {
		pop  int
		want []byte
	}{
		{0, []byte{1, 2, 3, 4, 5}},
		{2, []byte{3, 4, 5}},
		{1, []byte{4, 5}},
		{9, []byte{}},
	}
	for _, s := range steps {
		in.Pop(s.pop)
		if got := in.Data(); !bytes.Equal(got, s.want) {
			t.Errorf("after Pop(%d): Data() = %v, want %v", s.pop, got, s.want)
		}
		if in.Available() != len(s.want) {
			t.Errorf("after Pop(%d): Available() = %d, want %d", s.pop, in.Available(), len(s.want))
		}
	}
}

func TestScratchOutput(t *testing.T) {
	out := NewScratchOutput()
	out.Output([]byte{1, 2, 3})
	out.Output([]byte{4, 5})

	if out.CurPosition() != 5 {
		t.Fatalf("CurPosition() = %d, want 5", out.CurPosition())
	}

	out.Update(0, 99)
	out.Update(7, 42)
	if got, want := out.Result(), []byte{99, 2, 3, 4, 5}; !bytes.Equal(got, want) {
		t.Errorf("Result() = %v, want %v", got, want)
	}
	if got, want := out.DataSince(2), []byte{3, 4, 5}; !bytes.Equal(got, want) {
		t.Errorf("DataSince(2) = %v, want %v", got, want)
	}
	if got := out.DataSince(6); got != nil {
		t.Errorf("DataSince past end = %v, want nil", got)
	}

	out.Reset()
	if out.CurPosition() != 0 || len(out.Result()) != 0 {
		t.Errorf("after Reset: position %d, result %v", out.CurPosition(), out.Result())
	}
}

func TestScratchOutputTruncateAndOverflow(t *testing.T) {
	out := NewScratchOutput()
	out.Output([]byte{1, 2, 3, 4})

	out.Truncate(1)
	if out.CurPosition() != 1 {
		t.Errorf("Truncate(1): position %d", out.CurPosition())
	}
	out.Truncate(10)
	if out.CurPosition() != 1 {
		t.Errorf("Truncate(10) past end moved position to %d", out.CurPosition())
	}

	out.Output(make([]byte, MessageMax))
	if !out.Overflowed() {
		t.Error("no overflow after writing past MessageMax")
	}
	if out.CurPosition() != MessageMax {
		t.Errorf("position %d, want %d", out.CurPosition(), MessageMax)
	}

	out.Reset()
	out.Output([]byte{1})
	if out.Overflowed() {
		t.Error("overflow flag survived Reset and a fitting write")
	}
}

func TestFifoBuffer(t *testing.T) {
	fifo := NewFifoBuffer(10)
	if !fifo.IsEmpty() || fifo.Available() != 0 || fifo.Free() != 10 {
		t.Fatalf("new FIFO: empty=%v available=%d free=%d", fifo.IsEmpty(), fifo.Available(), fifo.Free())
	}

	if n := fifo.Write([]byte{1, 2, 3, 4, 5}); n != 5 {
		t.Fatalf("Write() = %d, want 5", n)
	}

	got := make([]byte, 3)
	if n := fifo.Read(got); n != 3 || !bytes.Equal(got, []byte{1, 2, 3}) {
		t.Errorf("Read() = %d %v, want 3 [1 2 3]", n, got)
	}

	fifo.Pop(1)
	if got := fifo.Data(); !bytes.Equal(got, []byte{5}) {
		t.Errorf("Data() = %v, want [5]", got)
	}

	fifo.Reset()
	big := make([]byte, 12)
	for i := range big {
		big[i] = byte(i)
	}
	if n := fifo.Write(big); n != 10 {
		t.Errorf("Write(12 bytes) on size-10 FIFO = %d, want 10", n)
	}
	if fifo.Free() != 0 {
		t.Errorf("Free() = %d on a full FIFO", fifo.Free())
	}
	if n := fifo.Write([]byte{1}); n != 0 {
		t.Errorf("Write on a full FIFO = %d", n)
	}
}

func TestFifoBufferWrapAround(t *testing.T) {
	fifo := NewFifoBuffer(5)
	fifo.Write([]byte{1, 2, 3, 4})
	fifo.Read(make([]byte, 2))

	if n := fifo.Write([]byte{5, 6}); n != 2 {
		t.Fatalf("Write() across the end = %d, want 2", n)
	}

	got := make([]byte, 4)
	if n := fifo.Read(got); n != 4 || !bytes.Equal(got, []byte{3, 4, 5, 6}) {
		t.Errorf("Read() = %d %v, want 4 [3 4 5 6]", n, got)
	}
	if !fifo.IsEmpty() {
		t.Error("FIFO not empty after reading everything")
	}
}

func TestFifoBufferDataWrapped(t *testing.T) {
	fifo := NewFifoBuffer(6)
	fifo.Write([]byte{1, 2, 3, 4})
	fifo.Pop(3)
	fifo.Write([]byte{5, 6, 7})

	if got, want := fifo.Data(), []byte{4, 5, 6, 7}; !bytes.Equal(got, want) {
		t.Fatalf("Data() = %v, want %v", got, want)
	}
	if fifo.Free() != 2 {
		t.Errorf("Free() = %d, want 2", fifo.Free())
	}

	// writes after compaction land behind the existing data
	fifo.Write([]byte{8, 9})
	if got, want := fifo.Data(), []byte{4, 5, 6, 7, 8, 9}; !bytes.Equal(got, want) {
		t.Errorf("Data() after refill = %v, want %v", got, want)
	}
}
