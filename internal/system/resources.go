package system

import (
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// Snapshot is the resource state of the host and of this process
type Snapshot struct {
	LogicalCPUs  int
	TotalMemory  uint64
	UsedPercent  float64
	ProcessRSS   uint64
	Goroutines   int
	HostReported bool
}

// TakeSnapshot reads host and process resources. Host figures that cannot
// be read are left zero and HostReported is false.
func TakeSnapshot() Snapshot {
	s := Snapshot{
		LogicalCPUs: runtime.NumCPU(),
		Goroutines:  runtime.NumGoroutine(),
	}

	if n, err := cpu.Counts(true); err == nil && n > 0 {
		s.LogicalCPUs = n
	}

	vm, err := mem.VirtualMemory()
	if err == nil {
		s.TotalMemory = vm.Total
		s.UsedPercent = vm.UsedPercent
		s.HostReported = true
	}

	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if info, err := proc.MemoryInfo(); err == nil {
			s.ProcessRSS = info.RSS
		}
	}

	return s
}

// DefaultWorkers is the worker count used when none is configured
func DefaultWorkers() int {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		n = runtime.NumCPU()
	}
	return n
}

// FormatBytes renders a byte count in binary units
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
