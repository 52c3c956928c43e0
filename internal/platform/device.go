package platform

import (
	"fmt"
	"math"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// NarrowScreenWidth is the window width (in dp) under which the layout is
// treated as a phone.
const NarrowScreenWidth float32 = 768

const gib = 1 << 30

// Modality is the primary way the user interacts with the app
type Modality int

const (
	ModalityDesktop Modality = iota // pointer and physical keyboard
	ModalityMobile                  // touch screen
)

// String returns a short label for logs
func (m Modality) String() string {
	if m == ModalityMobile {
		return "mobile"
	}
	return "desktop"
}

// DetectModality combines what the driver reports with the window width.
// Any one touch signal is enough to pick the mobile presentation.
func DetectModality(isMobile, hasKeyboard bool, width float32) Modality {
	if isMobile || !hasKeyboard {
		return ModalityMobile
	}
	if width > 0 && width < NarrowScreenWidth {
		return ModalityMobile
	}
	return ModalityDesktop
}

// StorageInfo describes the volume holding the app data
type StorageInfo struct {
	Free  uint64
	Total uint64
}

// Prober answers device capability questions. Every method may fail; callers
// show N/A for the missing value.
type Prober interface {
	CPUCores() (int, error)
	MemoryBytes() (uint64, error)
	Storage(path string) (StorageInfo, error)
}

// SystemProber reads capabilities from the host OS
type SystemProber struct{}

// NewSystemProber creates a prober backed by gopsutil
func NewSystemProber() *SystemProber {
	return &SystemProber{}
}

// CPUCores returns the number of logical cores
func (SystemProber) CPUCores() (int, error) {
	n, err := cpu.Counts(true)
	if err != nil {
		return 0, fmt.Errorf("count cpu cores: %w", err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("count cpu cores: got %d", n)
	}
	return n, nil
}

// MemoryBytes returns total physical memory
func (SystemProber) MemoryBytes() (uint64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, fmt.Errorf("read memory info: %w", err)
	}
	if vm.Total == 0 {
		return 0, fmt.Errorf("read memory info: total is zero")
	}
	return vm.Total, nil
}

// Storage returns free and total bytes of the volume containing path
func (SystemProber) Storage(path string) (StorageInfo, error) {
	usage, err := disk.Usage(path)
	if err != nil {
		return StorageInfo{}, fmt.Errorf("read disk usage of %s: %w", path, err)
	}
	return StorageInfo{Free: usage.Free, Total: usage.Total}, nil
}

// ApproxMemoryGiB rounds memory to the nearest power of two GiB, coarse on
// purpose so the value reads like a device class rather than an exact size.
// Values under 1 GiB are reported in quarters.
func ApproxMemoryGiB(bytes uint64) float64 {
	if bytes == 0 {
		return 0
	}
	g := float64(bytes) / gib
	if g < 1 {
		q := math.Round(g*4) / 4
		if q == 0 {
			q = 0.25
		}
		return q
	}
	return math.Pow(2, math.Round(math.Log2(g)))
}

// FormatBytes formats a byte count with binary units
func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
