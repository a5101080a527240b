package fs

import (
	"errors"
	iofs "io/fs"
	"syscall"
)

// Failure reasons reported for removal errors.
const (
	ReasonNotExist   = "not_exist"
	ReasonPermission = "permission"
	ReasonBusy       = "busy"
	ReasonNotEmpty   = "not_empty"
	ReasonOther      = "other"
)

// Reason classifies a filesystem error for logs and metrics.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, iofs.ErrNotExist):
		return ReasonNotExist
	case errors.Is(err, iofs.ErrPermission):
		return ReasonPermission
	case errors.Is(err, syscall.EBUSY), errors.Is(err, syscall.ETXTBSY), errors.Is(err, syscall.EAGAIN):
		return ReasonBusy
	case errors.Is(err, syscall.ENOTEMPTY), errors.Is(err, syscall.EEXIST):
		return ReasonNotEmpty
	}

	// extend here for platform specific errors if needed
	return ReasonOther
}
