package ui

import (
	"typeahead/internal/menu"
)

// DatasetReloadedMsg is sent when a watched dataset file changed on disk
type DatasetReloadedMsg struct {
	Name string
}

// asyncResultMsg carries the result of an async dataset fetch
type asyncResultMsg struct {
	resp menu.Response
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
