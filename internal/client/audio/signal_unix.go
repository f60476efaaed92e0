//go:build unix

package audio

import (
	"os"
	"syscall"
)

func pauseSignal() os.Signal  { return syscall.SIGSTOP }
func resumeSignal() os.Signal { return syscall.SIGCONT }
