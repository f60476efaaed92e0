//go:build !unix

package audio

import "os"

func pauseSignal() os.Signal  { return nil }
func resumeSignal() os.Signal { return nil }
