// Package ui holds the interactive prompt helpers.
package ui

import (
	"errors"

	"github.com/manifoldco/promptui"
)

// Confirm asks a yes/no question and returns whether the user said yes.
// Declining or interrupting the prompt both count as no.
func Confirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}

	_, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
