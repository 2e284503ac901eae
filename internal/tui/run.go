package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/rollover/internal/common"
	"github.com/Veraticus/rollover/internal/model"
)

// ErrNothingSelected is returned when the operator leaves the picker without
// choosing a request.
var ErrNothingSelected = errors.New("no withdrawal request selected")

// RunPicker shows the picker and blocks until the operator chooses a request
// or quits. Extra options are passed to the bubbletea program.
func RunPicker(ctx context.Context, requests []model.WithdrawalRequest, opts ...tea.ProgramOption) (*model.WithdrawalRequest, error) {
	if len(requests) == 0 {
		return nil, fmt.Errorf("withdrawal requests: %w", common.ErrNotFound)
	}

	options := append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	program := tea.NewProgram(NewPicker(requests, DefaultTheme), options...)

	final, err := program.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("running picker: %w", err)
	}

	picker, ok := final.(PickerModel)
	if !ok {
		return nil, fmt.Errorf("unexpected picker model %T", final)
	}
	req, ok := picker.Selected()
	if !ok {
		return nil, ErrNothingSelected
	}
	return req, nil
}
