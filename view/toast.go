// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package view

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

type ToastKind int

const (
	ToastSuccess ToastKind = iota
	ToastError
)

// Toast is a one-line notification shown after an action
type Toast struct {
	Kind    ToastKind
	Title   string
	Message string
}

func (t Toast) String() string {
	if t.Kind == ToastError {
		return fmt.Sprintf("%s %s: %s", color.New(color.FgRed).Sprint("✗"), color.New(color.FgRed, color.Bold).Sprint(t.Title), t.Message)
	}
	return fmt.Sprintf("%s %s: %s", color.New(color.FgCyan).Sprint("✓"), color.New(color.FgCyan, color.Bold).Sprint(t.Title), t.Message)
}

// Notifier receives toasts from a Modal
type Notifier func(Toast)

// PrintToasts writes each toast to w on its own line
func PrintToasts(w io.Writer) Notifier {
	return func(t Toast) {
		fmt.Fprintln(w, t.String())
	}
}
