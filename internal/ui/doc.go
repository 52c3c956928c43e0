// Package ui contains the Fyne user interface: the terminal view with its
// search overlay and command prompt, the upload form, the admin view and
// the settings dialog. Window chrome is localized via Localization; the
// terminal output itself is English.
package ui
