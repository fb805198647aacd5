//go:build !unix

package app

import "os"

// notifyResize is a no-op where SIGWINCH does not exist; the run loop
// still polls the driver size every tick.
func notifyResize(ch chan<- os.Signal) {}
