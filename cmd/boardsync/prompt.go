package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

func interactive() bool {
	return isatty.IsTerminal(os.Stdin.Fd())
}

// argOrPrompt returns the i-th positional argument, falling back to an
// interactive prompt when the argument is absent and stdin is a terminal.
func argOrPrompt(args []string, i int, title string) (string, error) {
	if len(args) > i && strings.TrimSpace(args[i]) != "" {
		return strings.TrimSpace(args[i]), nil
	}
	if !interactive() {
		return "", fmt.Errorf("missing required argument: %s", title)
	}

	var value string
	input := huh.NewInput().
		Title(title).
		Value(&value).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s is required", title)
			}
			return nil
		})
	if err := input.Run(); err != nil {
		return "", fmt.Errorf("read %s: %w", title, err)
	}
	return strings.TrimSpace(value), nil
}

// confirm asks a yes/no question on a terminal; off-terminal it answers yes
// so scripted runs proceed without stalling.
func confirm(question string) (bool, error) {
	if !interactive() {
		return true, nil
	}
	var ok bool
	c := huh.NewConfirm().
		Title(question).
		Affirmative("Yes").
		Negative("No").
		Value(&ok)
	if err := c.Run(); err != nil {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	return ok, nil
}
