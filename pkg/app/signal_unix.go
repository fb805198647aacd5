//go:build unix

package app

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// notifyResize subscribes ch to terminal resize notifications.
func notifyResize(ch chan<- os.Signal) {
	signal.Notify(ch, unix.SIGWINCH)
}
