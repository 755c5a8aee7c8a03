package input

import "typeahead/internal/domain"

// Surface is the text-entry capability the adapter drives. One implementation
// exists per UI toolkit; the adapter never touches a toolkit directly.
//
// SetValue must not invoke the text-change listeners: only user edits do.
type Surface interface {
	ID() string
	Value() string
	SetValue(value string)
	Focused() bool
	Focus()
	Blur()
	// Direction reports the computed text direction of the surface
	Direction() domain.LangDir
	// Width is the visible width of the surface in cells
	Width() int
	// CursorAtEnd reports whether the caret sits after the last character
	CursorAtEnd() bool
	// SetActiveDescendant points assistive tooling at the highlighted entry
	SetActiveDescendant(id string)

	OnFocus(fn func()) (detach func())
	OnBlur(fn func()) (detach func())
	OnKeyDown(fn func(*KeyEvent)) (detach func())
	OnTextChange(fn func()) (detach func())
}

// HintSurface displays ghost text ahead of the caret
type HintSurface interface {
	Value() string
	SetValue(value string)
	SetDirection(dir domain.LangDir)
}

// nullSurface replaces released surfaces after Destroy
type nullSurface struct{}

func (nullSurface) ID() string                       { return "" }
func (nullSurface) Value() string                    { return "" }
func (nullSurface) SetValue(string)                  {}
func (nullSurface) Focused() bool                    { return false }
func (nullSurface) Focus()                           {}
func (nullSurface) Blur()                            {}
func (nullSurface) Direction() domain.LangDir        { return domain.LTR }
func (nullSurface) Width() int                       { return 0 }
func (nullSurface) CursorAtEnd() bool                { return false }
func (nullSurface) SetActiveDescendant(string)       {}
func (nullSurface) OnFocus(func()) func()            { return func() {} }
func (nullSurface) OnBlur(func()) func()             { return func() {} }
func (nullSurface) OnKeyDown(func(*KeyEvent)) func() { return func() {} }
func (nullSurface) OnTextChange(func()) func()       { return func() {} }
