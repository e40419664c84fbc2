package firmware

// Heartbeat: TIMER2 at 16 MHz / 2^4 = 1 MHz, matching every 1000 counts
// gives a 1 ms tick.
const (
	HeartbeatPrescaler = 4
	HeartbeatCompare   = 1000
)

// DebounceTicks is how many heartbeats button A must read low to count.
const DebounceTicks = 20

// Periods in heartbeat ticks
const (
	RollPeriod   = 2000 // new random bar graph
	ReportPeriod = 1000 // MsgHeartbeat telemetry
)

// Config tunes the application. DefaultConfig returns the board values.
type Config struct {
	HeartbeatPrescaler uint32
	HeartbeatCompare   uint32
	DebounceTicks      uint32
	RollPeriod         uint32
	ReportPeriod       uint32
}

// DefaultConfig returns the configuration the firmware ships with
func DefaultConfig() Config {
	return Config{
		HeartbeatPrescaler: HeartbeatPrescaler,
		HeartbeatCompare:   HeartbeatCompare,
		DebounceTicks:      DebounceTicks,
		RollPeriod:         RollPeriod,
		ReportPeriod:       ReportPeriod,
	}
}
