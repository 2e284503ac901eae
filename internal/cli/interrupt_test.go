package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewInterruptHandler(t *testing.T) {
	handler := NewInterruptHandler(nil)
	assert.NotNil(t, handler.writer)
	assert.False(t, handler.WasInterrupted())
}

func TestInterruptHandler_Interrupt(t *testing.T) {
	tests := []struct {
		pending     func() int
		name        string
		contains    []string
		notContains []string
	}{
		{
			name:     "with players left",
			pending:  func() int { return 3 },
			contains: []string{"Reconciliation interrupted!", "3 player(s) were not reconciled"},
		},
		{
			name:        "nothing left",
			pending:     func() int { return 0 },
			contains:    []string{"Reconciliation interrupted!"},
			notContains: []string{"were not reconciled"},
		},
		{
			name:        "no pending counter",
			contains:    []string{"Reconciliation interrupted!"},
			notContains: []string{"were not reconciled"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var output bytes.Buffer
			handler := NewInterruptHandler(&output)
			ctx := handler.HandleInterrupts(context.Background(), tt.pending)

			handler.interrupt()

			<-ctx.Done()
			assert.True(t, handler.WasInterrupted())
			for _, s := range tt.contains {
				assert.Contains(t, output.String(), s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, output.String(), s)
			}
		})
	}
}

func TestInterruptHandler_MessageShownOnce(t *testing.T) {
	var output bytes.Buffer
	handler := NewInterruptHandler(&output)
	_ = handler.HandleInterrupts(context.Background(), nil)

	handler.interrupt()
	handler.interrupt()

	assert.Equal(t, 1, strings.Count(output.String(), "Reconciliation interrupted!"))
}

func TestInterruptHandler_ParentCancelIsNotAnInterrupt(t *testing.T) {
	var output bytes.Buffer
	handler := NewInterruptHandler(&output)

	parent, cancel := context.WithCancel(context.Background())
	ctx := handler.HandleInterrupts(parent, nil)
	cancel()
	<-ctx.Done()

	assert.False(t, handler.WasInterrupted())
	assert.Empty(t, output.String())
}
