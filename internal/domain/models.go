package domain

// LangDir is the text direction of the input surface
type LangDir string

const (
	LTR LangDir = "ltr"
	RTL LangDir = "rtl"
)

// Selectable is a single candidate entry in the suggestion menu.
// A nil Selectable means "no entry".
type Selectable interface {
	ID() string
}

// Descriptor is the data payload associated with a selectable
type Descriptor struct {
	Value   string // text committed to the query on select
	Object  any    // the original datum the dataset produced
	Dataset string // name of the dataset that rendered it
}

// Suggestion is a datum produced by a dataset source
type Suggestion struct {
	Value  string
	Object any
}
