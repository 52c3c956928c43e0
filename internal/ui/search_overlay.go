package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// SearchOverlay is the floating search box opened with Ctrl+K. Enter
// submits the query and closes it, Escape or a tap outside just closes it.
type SearchOverlay struct {
	canvas   fyne.Canvas
	entry    *KeyEntry
	hint     *widget.Label
	popup    *widget.PopUp
	onSubmit func(query string)
}

// NewSearchOverlay creates a hidden overlay on canvas
func NewSearchOverlay(canvas fyne.Canvas, localization *Localization, onSubmit func(query string)) *SearchOverlay {
	o := &SearchOverlay{
		canvas:   canvas,
		onSubmit: onSubmit,
	}

	o.entry = NewKeyEntry()
	o.entry.OnSubmitted = o.submit
	o.entry.OnEscape = o.Hide
	o.entry.OnShortcut = func(s fyne.Shortcut) bool {
		if isSearchShortcut(s) {
			o.Hide()
			return true
		}
		return false
	}

	o.hint = widget.NewLabel("")
	o.hint.Importance = widget.LowImportance

	content := container.NewVBox(o.entry, o.hint)
	o.popup = widget.NewPopUp(content, canvas)
	o.popup.Resize(fyne.NewSize(SearchOverlayWidth, content.MinSize().Height))
	o.SetLocalization(localization)
	return o
}

// SetLocalization refreshes the overlay texts
func (o *SearchOverlay) SetLocalization(localization *Localization) {
	o.entry.SetPlaceHolder(localization.GetText(KeySearchPlaceholder))
	o.hint.SetText(localization.GetText(KeySearchHint))
}

// Show clears the query, centres the box near the top and focuses it
func (o *SearchOverlay) Show() {
	o.entry.SetText("")
	size := o.canvas.Size()
	width := min(SearchOverlayWidth, size.Width)
	o.popup.Resize(fyne.NewSize(width, o.popup.MinSize().Height))
	o.popup.ShowAtPosition(fyne.NewPos((size.Width-width)/2, size.Height/6))
	o.canvas.Focus(o.entry)
}

// Hide closes the overlay without searching
func (o *SearchOverlay) Hide() {
	o.popup.Hide()
}

// Visible reports whether the overlay is open
func (o *SearchOverlay) Visible() bool {
	return o.popup.Visible()
}

func (o *SearchOverlay) submit(query string) {
	o.Hide()
	if o.onSubmit != nil {
		o.onSubmit(query)
	}
}
