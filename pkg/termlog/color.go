// SPDX-License-Identifier: MPL-2.0

package termlog

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// ErrInvalidColor is the sentinel error wrapped by InvalidColorError.
var ErrInvalidColor = errors.New("invalid color")

type (
	// Color names one of the terminal styles used for status messages.
	Color string

	// InvalidColorError is returned when a Color value is not part of the
	// palette. It wraps ErrInvalidColor for errors.Is() compatibility.
	InvalidColorError struct {
		Value Color
	}
)

const (
	// ColorNone leaves text unstyled.
	ColorNone Color = ""
	// ColorRed marks errors.
	ColorRed Color = "red"
	// ColorYellow marks warnings.
	ColorYellow Color = "yellow"
	// ColorGreen marks success.
	ColorGreen Color = "green"
	// ColorCyan marks captions and section headers.
	ColorCyan Color = "cyan"
	// ColorBold marks commands being executed.
	ColorBold Color = "bold"
)

// Style definitions for the message palette (bright ANSI variants).
var palette = map[Color]lipgloss.Style{
	ColorRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	ColorYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	ColorGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	ColorCyan:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	ColorBold:   lipgloss.NewStyle().Bold(true),
}

// String returns the string representation of the Color.
func (c Color) String() string { return string(c) }

// IsValid returns whether the Color is part of the palette. The zero value
// ("") is valid and means no styling.
func (c Color) IsValid() (bool, []error) {
	switch c {
	case ColorNone, ColorRed, ColorYellow, ColorGreen, ColorCyan, ColorBold:
		return true, nil
	default:
		return false, []error{&InvalidColorError{Value: c}}
	}
}

// Render styles the text. Unknown colors and ColorNone render unchanged.
func (c Color) Render(text string) string {
	if style, ok := palette[c]; ok {
		return style.Render(text)
	}
	return text
}

// Error implements the error interface for InvalidColorError.
func (e *InvalidColorError) Error() string {
	return fmt.Sprintf("invalid color %q (valid: red, yellow, green, cyan, bold)", e.Value)
}

// Unwrap returns ErrInvalidColor for errors.Is() compatibility.
func (e *InvalidColorError) Unwrap() error { return ErrInvalidColor }
