//go:build tinygo

package core

import "yakio/mmio"

func init() {
	SetBus(mmio.Hardware{})
}
