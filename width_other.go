//go:build !linux && !darwin

package smartdebug

const defaultTerminalWidth = 80

func terminalWidth() int {
	return defaultTerminalWidth
}
