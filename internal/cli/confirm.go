package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/runoshun/taskwatch/internal/domain"
	"golang.org/x/term"
)

// errCanceled is returned by commands the user declined at a prompt.
var errCanceled = errors.New("canceled")

// errNeedsConfirmation is returned when a prompt is needed but stdin is not a terminal.
var errNeedsConfirmation = errors.New("confirmation required: run in a terminal or pass --yes")

// promptConfirmer asks on the terminal using a huh confirm form.
type promptConfirmer struct {
	in *os.File
}

var _ domain.Confirmer = (*promptConfirmer)(nil)

func newPromptConfirmer(in *os.File) *promptConfirmer {
	return &promptConfirmer{in: in}
}

// Confirm shows a yes/no prompt. Aborting the form counts as no.
func (p *promptConfirmer) Confirm(prompt string) (bool, error) {
	if !term.IsTerminal(int(p.in.Fd())) {
		return false, errNeedsConfirmation
	}

	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(prompt).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	).WithInput(p.in)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("confirm prompt failed: %w", err)
	}
	return confirmed, nil
}

// confirm asks unless --yes was given. A declined prompt yields errCanceled.
func (e *env) confirm(prompt string) error {
	if e.assumeYes() {
		return nil
	}
	ok, err := e.confirmer().Confirm(prompt)
	if err != nil {
		return err
	}
	if !ok {
		return errCanceled
	}
	return nil
}
