//go:build linux || openbsd || dragonfly

package fs

import (
	"os"
	"syscall"
	"time"
)

func atimeOf(info os.FileInfo) time.Time {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.ModTime()
	}
	return time.Unix(int64(st.Atim.Sec), int64(st.Atim.Nsec))
}
