package main

import (
	"fmt"
	"strings"
)

// progressMode управляет TUI-прогрессом generate (--ui).
type progressMode string

const (
	progressAuto progressMode = "auto"
	progressOn   progressMode = "on"
	progressOff  progressMode = "off"
)

func parseProgressMode(value string) (progressMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return progressAuto, nil
	case "on", "always":
		return progressOn, nil
	case "off", "never":
		return progressOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// useProgressView decides whether generate draws the bubbletea progress view.
// --quiet wins over --ui on; auto follows whether stdout is a terminal.
func useProgressView(mode progressMode, quiet, stdoutTTY bool) bool {
	if quiet {
		return false
	}
	switch mode {
	case progressOn:
		return true
	case progressOff:
		return false
	default:
		return stdoutTTY
	}
}
