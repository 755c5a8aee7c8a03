package ui

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

// pagerMsg contains the result of a pager command
type pagerMsg struct {
	title string
	err   error
}

// Pager shows long text full screen, handing the terminal over to ov and
// taking it back afterwards. TYPEAHEAD_PAGER=less runs the external less
// instead. Nothing is written to stdout, which carries only the accepted
// result.
type Pager struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
	out     io.Writer    // terminal the pager draws on
}

// NewPager creates a pager drawing on stderr; SetProgram must be called
// before Show
func NewPager() *Pager {
	return &Pager{out: os.Stderr}
}

// SetProgram sets the program reference for terminal management
func (p *Pager) SetProgram(program *tea.Program) {
	p.program = program
}

// Show blocks until the user leaves the pager
func (p *Pager) Show(content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run the pager
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}
	// Ensure terminal is restored even if the pager fails
	defer func() {
		fmt.Fprint(p.out, "\x1b[2J\x1b[H")
		// Small delay to ensure the pager has fully exited before restoring
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	if os.Getenv("TYPEAHEAD_PAGER") == "less" {
		return runLess(strings.NewReader(content), p.out)
	}
	return runOv(strings.NewReader(content))
}

func runOv(r io.Reader) error {
	root, err := oviewer.NewRoot(r)
	if err != nil {
		return err
	}

	// do not write the document back to the terminal on exit
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// runLess executes `less -R`, feeding content via r and drawing on out
func runLess(r io.Reader, out io.Writer) error {
	if _, err := exec.LookPath("less"); err != nil {
		return fmt.Errorf("less not found in PATH")
	}
	cmd := exec.Command("less", "-R")
	cmd.Stdin = r
	cmd.Stdout = out
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// showInPager returns a command that shows content in the pager, pausing
// rendering meanwhile
func (m *Model) showInPager(title, content string) tea.Cmd {
	if m.program == nil {
		return nil
	}
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.pager.Show(content)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return pagerMsg{title: title, err: err}
	}
}
