package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ionut-t/vio/tui"
)

func main() {
	m := tui.New()
	if len(os.Args) > 1 {
		m.Load(os.Args[1])
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "vio: %v\n", err)
		os.Exit(1)
	}
}
