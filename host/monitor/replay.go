package monitor

import (
	"fmt"
	"os"

	"yakio/host/serial"
)

// filePort serves a captured byte stream as a read-only port
type filePort struct {
	*os.File
}

func (filePort) Flush() error { return nil }

func (filePort) Write(b []byte) (int, error) {
	return 0, fmt.Errorf("monitor: replay port is read-only")
}

// OpenReplay opens a capture of raw serial bytes for replay
func OpenReplay(path string) (serial.Port, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("monitor: open replay: %w", err)
	}
	return filePort{f}, nil
}
