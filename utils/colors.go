package utils

import (
	"image/color"
	"strconv"
	"strings"
)

// MessageType is a custom type used as a placeholder for various message types.
type MessageType int

// The message types used across the CLI application.
const (
	DefaultMessage MessageType = iota
	SuccessMessage
	ErrorMessage
	StatusMessage
)

// Colors used across the CLI application.
const (
	DefaultColor = "\x1b[0m"
	StatusColor  = "\x1b[36m"
	SuccessColor = "\x1b[32m"
	ErrorColor   = "\x1b[31m"
)

// DecorateText shows the message types in different colors.
func DecorateText(s string, msgType MessageType) string {
	switch msgType {
	case DefaultMessage:
		s = DefaultColor + s
	case StatusMessage:
		s = StatusColor + s
	case SuccessMessage:
		s = SuccessColor + s
	case ErrorMessage:
		s = ErrorColor + s
	default:
		return s
	}
	return s + DefaultColor
}

// HexToRGBA converts a hex color of the form #rgb, #rrggbb or #rrggbbaa to
// color.NRGBA. Malformed values fall back to opaque black.
func HexToRGBA(hex string) color.NRGBA {
	hex = strings.TrimPrefix(hex, "#")

	// expand the short notation
	if len(hex) == 3 {
		hex = string([]byte{
			hex[0], hex[0],
			hex[1], hex[1],
			hex[2], hex[2],
		})
	}

	col := color.NRGBA{A: 0xff}
	switch len(hex) {
	case 8:
		if a, err := strconv.ParseUint(hex[6:8], 16, 8); err == nil {
			col.A = uint8(a)
		}
		fallthrough
	case 6:
		r, errR := strconv.ParseUint(hex[0:2], 16, 8)
		g, errG := strconv.ParseUint(hex[2:4], 16, 8)
		b, errB := strconv.ParseUint(hex[4:6], 16, 8)
		if errR == nil && errG == nil && errB == nil {
			col.R, col.G, col.B = uint8(r), uint8(g), uint8(b)
		}
	}
	return col
}
