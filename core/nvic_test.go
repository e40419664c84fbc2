package core

import (
	"testing"

	"yakio/nrf51"
	"yakio/sim"
)

func TestNVICWrites(t *testing.T) {
	tests := []struct {
		name   string
		op     func(int)
		offset uint32
	}{
		{"enable", EnableIRQ, nrf51.NVIC_ISER},
		{"disable", DisableIRQ, nrf51.NVIC_ICER},
		{"clear pending", ClearPendingIRQ, nrf51.NVIC_ICPR},
		{"set pending", SetPendingIRQ, nrf51.NVIC_ISPR},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := setupBoard(t)
			b.OnIRQ = nil
			tt.op(9)
			w := b.Writes()
			if len(w) != 1 {
				t.Fatalf("got %d writes, want 1", len(w))
			}
			want := sim.Write{Addr: nrf51.NVIC + tt.offset, Value: 1 << 9}
			if w[0] != want {
				t.Errorf("write = %+v, want %+v", w[0], want)
			}
		})
	}
}

func TestNVICOutOfRangeIgnored(t *testing.T) {
	b := setupBoard(t)
	for _, irq := range []int{-1, 32, 100} {
		EnableIRQ(irq)
		DisableIRQ(irq)
		ClearPendingIRQ(irq)
		SetPendingIRQ(irq)
		if IRQEnabled(irq) {
			t.Errorf("IRQEnabled(%d) = true", irq)
		}
	}
	if n := len(b.Writes()); n != 0 {
		t.Errorf("out of range irqs caused %d writes", n)
	}
}

func TestNVICPendingDeliveredOnEnable(t *testing.T) {
	b := setupBoard(t)
	n := 0
	Interrupts.Claim(nrf51.IRQ_SWI0, b, func() { n++ })

	SetPendingIRQ(nrf51.IRQ_SWI0)
	if n != 0 {
		t.Fatal("pending irq taken while disabled")
	}
	EnableIRQ(nrf51.IRQ_SWI0)
	if n != 1 {
		t.Errorf("handler ran %d times after enable, want 1", n)
	}
	if !IRQEnabled(nrf51.IRQ_SWI0) || b.IRQPending(nrf51.IRQ_SWI0) {
		t.Error("irq should be enabled and no longer pending")
	}

	DisableIRQ(nrf51.IRQ_SWI0)
	SetPendingIRQ(nrf51.IRQ_SWI0)
	ClearPendingIRQ(nrf51.IRQ_SWI0)
	EnableIRQ(nrf51.IRQ_SWI0)
	if n != 1 {
		t.Error("cleared pending irq was still delivered")
	}
}
