//go:build linux || darwin

package smartdebug

import (
	"os"

	"golang.org/x/sys/unix"
)

const defaultTerminalWidth = 80

// terminalWidth queries the controlling terminal for its column count,
// falling back to defaultTerminalWidth when stderr is not a terminal.
func terminalWidth() int {
	ws, err := unix.IoctlGetWinsize(int(os.Stderr.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		return defaultTerminalWidth
	}
	return int(ws.Col)
}
