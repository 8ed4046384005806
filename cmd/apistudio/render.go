package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// printMarkdown renders markdown for the terminal, falling back to the raw text.
func printMarkdown(md string, raw bool) {
	if raw {
		fmt.Print(md)
		return
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Print(md) // Fallback to raw output
		return
	}

	out, err := renderer.Render(md)
	if err != nil {
		fmt.Print(md) // Fallback
		return
	}
	fmt.Print(out)
}
