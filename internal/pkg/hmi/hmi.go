// Package hmi is the terminal front end: a menu of calculators, one form
// page per calculator and a project page.
package hmi

import (
	"context"
	"strings"

	"github.com/gdamore/tcell"
	"github.com/rivo/tview"

	"github.com/ohowland/elecalc/internal/pkg/project"
	"github.com/ohowland/elecalc/internal/pkg/toolkit"
)

const (
	projectPage = "Project"
	title       = "Electrician's Toolkit"
)

// field is a form item holding the raw text of one field id.
type field interface {
	value() string
	set(string)
}

type inputField struct {
	*tview.InputField
}

func (f inputField) value() string { return f.GetText() }
func (f inputField) set(v string)  { f.SetText(v) }

type dropDownField struct {
	*tview.DropDown
	options []string
}

func (f dropDownField) value() string {
	_, opt := f.GetCurrentOption()
	return opt
}

func (f dropDownField) set(v string) {
	for i, opt := range f.options {
		if strings.EqualFold(opt, v) {
			f.SetCurrentOption(i)
			return
		}
	}
}

// MeterFunc returns form values read from a meter.
type MeterFunc func() (toolkit.Form, error)

// HMI holds the screens of the terminal UI.
type HMI struct {
	app     *tview.Application
	pages   *tview.Pages
	menu    *tview.List
	toolkit *toolkit.Toolkit
	project *project.Service
	meter   MeterFunc
	fields  map[string]field
	outputs map[string]*tview.TextView
	status  *tview.TextView
}

// New builds the screens. proj may be nil, which disables the project page.
func New(tk *toolkit.Toolkit, proj *project.Service) *HMI {
	h := &HMI{
		app:     tview.NewApplication(),
		pages:   tview.NewPages(),
		menu:    tview.NewList().ShowSecondaryText(false),
		toolkit: tk,
		project: proj,
		fields:  make(map[string]field),
		outputs: make(map[string]*tview.TextView),
		status:  tview.NewTextView(),
	}

	for i, c := range tk.Calculators() {
		h.pages.AddPage(c.Name, h.calculatorPage(c), true, i == 0)
		name := c.Name
		h.menu.AddItem(c.Title, "", 0, func() {
			h.pages.SwitchToPage(name)
			h.app.SetFocus(h.pages)
		})
	}
	if proj != nil {
		h.pages.AddPage(projectPage, h.projectPage(), true, false)
		h.menu.AddItem(projectPage, "", 'p', func() {
			h.pages.SwitchToPage(projectPage)
			h.app.SetFocus(h.pages)
		})
	}
	h.menu.AddItem("Quit", "", 'q', h.app.Stop)
	h.menu.SetBorder(true).SetTitle(" " + title + " ")

	h.pages.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			h.app.SetFocus(h.menu)
			return nil
		}
		return event
	})
	return h
}

// SetMeter enables the "Read meter" button of the project page.
func (h *HMI) SetMeter(fn MeterFunc) {
	h.meter = fn
}

func (h *HMI) calculatorPage(c toolkit.Calculator) tview.Primitive {
	form := tview.NewForm()
	for _, f := range c.Fields {
		if len(f.Options) > 0 {
			dd := tview.NewDropDown().
				SetLabel(f.Label).
				SetOptions(f.Options, nil).
				SetCurrentOption(initialOption(f))
			form.AddFormItem(dd)
			h.fields[f.ID] = dropDownField{DropDown: dd, options: f.Options}
			continue
		}
		in := tview.NewInputField().
			SetLabel(f.Label).
			SetFieldWidth(20)
		form.AddFormItem(in)
		h.fields[f.ID] = inputField{in}
	}

	name := c.Name
	form.AddButton("Calculate", func() { h.calculate(name) })
	form.AddButton("Clear", func() { h.clearForm(name) })
	form.SetBorder(true).SetTitle(" " + c.Title + " ")

	output := tview.NewTextView().SetWrap(true)
	output.SetBorder(true).SetTitle(" Result ")
	h.outputs[c.Name] = output

	return tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(form, 0, 3, true).
		AddItem(output, 0, 1, false)
}

// initialOption is the index of the field's default option, or 0.
func initialOption(f toolkit.Field) int {
	for i, opt := range f.Options {
		if opt == f.Default {
			return i
		}
	}
	return 0
}

// clearForm empties the inputs of one calculator, resets its drop-downs and
// blanks its result.
func (h *HMI) clearForm(name string) {
	c, ok := h.toolkit.Calculator(name)
	if !ok {
		return
	}
	for _, f := range c.Fields {
		switch w := h.fields[f.ID].(type) {
		case inputField:
			w.SetText("")
		case dropDownField:
			w.SetCurrentOption(initialOption(f))
		}
	}
	if out, ok := h.outputs[name]; ok {
		out.SetText("")
	}
}

func (h *HMI) projectPage() tview.Primitive {
	form := tview.NewForm().
		AddButton("Save", func() { h.save() }).
		AddButton("Load", func() { h.load() }).
		AddButton("Clear", func() { h.clear() }).
		AddButton("Read meter", func() { h.readMeter() })
	form.SetBorder(true).SetTitle(" " + projectPage + " ")
	h.status.SetBorder(true).SetTitle(" Status ")

	return tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(h.status, 0, 1, false)
}

// Form returns the current text of every field.
func (h *HMI) Form() toolkit.Form {
	form := make(toolkit.Form, len(h.fields))
	for id, f := range h.fields {
		form[id] = f.value()
	}
	return form
}

// Fill sets the fields named in form. Unknown ids are ignored.
func (h *HMI) Fill(form toolkit.Form) {
	for id, v := range form {
		if f, ok := h.fields[id]; ok {
			f.set(v)
		}
	}
}

func (h *HMI) calculate(name string) string {
	c, err := h.toolkit.Run(name, h.Form())
	text := c.Output
	if err != nil {
		text = err.Error()
	}
	if out, ok := h.outputs[name]; ok {
		out.SetText(text)
	}
	return text
}

func (h *HMI) setStatus(text string) string {
	h.status.SetText(text)
	return text
}

func (h *HMI) save() string {
	m, err := h.project.Save(context.Background(), h.Form())
	if err != nil {
		return h.setStatus(err.Error())
	}
	return h.setStatus(m)
}

func (h *HMI) load() string {
	state, m, err := h.project.Load(context.Background())
	if err != nil {
		return h.setStatus(err.Error())
	}
	h.Fill(toolkit.Form(state))
	return h.setStatus(m)
}

func (h *HMI) clear() string {
	m, err := h.project.Clear(context.Background())
	if err != nil {
		return h.setStatus(err.Error())
	}
	return h.setStatus(m)
}

func (h *HMI) readMeter() string {
	if h.meter == nil {
		return h.setStatus("No meter configured.")
	}
	form, err := h.meter()
	if err != nil {
		return h.setStatus(err.Error())
	}
	h.Fill(form)
	return h.setStatus("Meter reading loaded ✔")
}

// Run starts the UI and blocks until it is stopped.
func (h *HMI) Run() error {
	layout := tview.NewFlex().
		AddItem(h.menu, 32, 0, true).
		AddItem(h.pages, 0, 1, false)
	return h.app.SetRoot(layout, true).Run()
}

// Stop ends Run.
func (h *HMI) Stop() {
	h.app.Stop()
}
