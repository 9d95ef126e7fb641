package vault

import "runtime"

// wipe zeroes the provided buffer. Best-effort: it aims to reduce the
// chance of the compiler eliding the write.
//
//go:noinline
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(&b)
}
