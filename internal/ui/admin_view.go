package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// AdminView greets the operator who passed the admin prompt
type AdminView struct {
	localization *Localization
	operator     string

	title     *widget.Label
	welcome   *widget.Label
	hint      *widget.Label
	uploadBtn *widget.Button
	backBtn   *widget.Button
	root      *fyne.Container
}

// NewAdminView creates the view; onUpload and onBack switch views
func NewAdminView(localization *Localization, onUpload, onBack func()) *AdminView {
	v := &AdminView{localization: localization}

	v.title = widget.NewLabel("")
	v.title.TextStyle = fyne.TextStyle{Bold: true}
	v.welcome = widget.NewLabel("")
	v.welcome.Importance = widget.SuccessImportance
	v.hint = widget.NewLabel("")
	v.hint.Wrapping = fyne.TextWrapWord
	v.uploadBtn = widget.NewButton("", onUpload)
	v.uploadBtn.Importance = widget.HighImportance
	v.backBtn = widget.NewButton("", onBack)
	v.backBtn.Importance = widget.LowImportance

	body := container.NewVBox(
		v.title,
		widget.NewSeparator(),
		v.welcome,
		v.hint,
		container.NewHBox(v.uploadBtn, v.backBtn),
	)
	v.root = container.NewCenter(container.NewGridWrap(fyne.NewSize(UploadFormWidth, body.MinSize().Height), body))
	v.SetLocalization(localization)
	return v
}

// Container returns the view canvas object
func (v *AdminView) Container() fyne.CanvasObject {
	return v.root
}

// SetOperator shows the sanitized operator name. The name is set as label
// text only.
func (v *AdminView) SetOperator(name string) {
	v.operator = name
	v.welcome.SetText(fmt.Sprintf(v.localization.GetText(KeyAdminWelcome), name))
}

// SetLocalization refreshes the view texts
func (v *AdminView) SetLocalization(localization *Localization) {
	v.localization = localization
	v.title.SetText(localization.GetText(KeyAdminTitle))
	v.hint.SetText(localization.GetText(KeyAdminHint))
	v.uploadBtn.SetText(localization.GetText(KeyAdminUpload))
	v.backBtn.SetText(localization.GetText(KeyBack))
	v.SetOperator(v.operator)
}

// Welcome returns the greeting as shown
func (v *AdminView) Welcome() string {
	return v.welcome.Text
}
