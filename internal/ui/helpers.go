package ui

import "strings"

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= width {
		return string(runes)
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}

func favoriteGlyph(favorite bool) string {
	if favorite {
		return "♥"
	}
	return " "
}

func publicGlyph(public bool) string {
	if public {
		return "◉"
	}
	return " "
}

// statusLabel compacts a record status for list rows.
func statusLabel(status string) string {
	switch status {
	case "pending":
		return "queued"
	case "processing":
		return "working"
	case "completed":
		return "ready"
	case "failed":
		return "failed"
	default:
		return status
	}
}
