//go:build !linux

package timing

import "time"

var processStart = time.Now()

func monotonic() time.Duration {
	return time.Since(processStart)
}

func sleep(d time.Duration) {
	time.Sleep(d)
}
