package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/terminal-archive/internal/platform"
)

// MobileUI provides mobile-specific UI enhancements
type MobileUI struct {
	device fyne.Device
}

// NewMobileUI creates a new mobile UI helper for device. A nil device
// means the current one.
func NewMobileUI(device fyne.Device) *MobileUI {
	if device == nil {
		device = fyne.CurrentDevice()
	}
	return &MobileUI{device: device}
}

// IsMobileDevice checks if the app is running on a mobile device
func (m *MobileUI) IsMobileDevice() bool {
	return m.device.IsMobile()
}

// HasKeyboard reports a physical keyboard
func (m *MobileUI) HasKeyboard() bool {
	return m.device.HasKeyboard()
}

// Modality picks the presentation for a window of the given width
func (m *MobileUI) Modality(width float32) platform.Modality {
	return platform.DetectModality(m.IsMobileDevice(), m.HasKeyboard(), width)
}

// CreateMobileEntry creates the search bar shown instead of the Ctrl+K overlay
func (m *MobileUI) CreateMobileEntry(placeholder string) *widget.Entry {
	entry := widget.NewEntry()
	entry.SetPlaceHolder(placeholder)
	return entry
}

// widthLayout stacks its objects like container.NewStack and reports the
// width on every layout pass, which is how the window notices resizes.
type widthLayout struct {
	onWidth func(width float32)
	last    float32
}

func (l *widthLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	for _, o := range objects {
		o.Move(fyne.NewPos(0, 0))
		o.Resize(size)
	}
	if size.Width != l.last {
		l.last = size.Width
		if l.onWidth != nil {
			l.onWidth(size.Width)
		}
	}
}

func (l *widthLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var size fyne.Size
	for _, o := range objects {
		size = size.Max(o.MinSize())
	}
	return size
}
