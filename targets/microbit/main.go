//go:build microbit

// Command microbit is the yakio firmware for the BBC micro:bit V1.
// Build with: tinygo flash -target=microbit ./targets/microbit
package main

import (
	"yakio/core"
	"yakio/targets/microbit/firmware"
	"yakio/targets/microbit/vectors"
)

func main() {
	vectors.Install()
	sink := InitTelemetry()

	app := firmware.New(firmware.DefaultConfig())

	// Debug output travels as MsgLog frames next to the telemetry
	core.SetDebugWriter(app.Log)
	core.SetDebugEnabled(true)
	core.InitAsyncDebug()
	core.SetIRQRecording(true)

	app.Init(sink)

	for {
		app.Poll()
	}
}
