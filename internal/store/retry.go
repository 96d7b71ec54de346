package store

import (
	"errors"
	"io/fs"
	"syscall"
	"time"
)

// Operation is a function that performs an action and returns an error if it fails.
type Operation func() error

// IsTransient is a function that checks if an error is worth retrying.
type IsTransient func(err error) bool

const DefaultMaxRetries = 3

// Try executes an operation with default retry settings for transient
// filesystem errors.
func Try(op Operation) error {
	return WithRetries(op, DefaultMaxRetries, IsTransientFsError)
}

// WithRetries executes an operation with a retry mechanism for transient
// errors. It attempts the operation up to maxRetries times after the initial
// attempt, with a simple incremental backoff between attempts.
func WithRetries(op Operation, maxRetries int, isTransient IsTransient) error {
	var err error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		err = op()
		if err == nil {
			return nil
		}
		if attempt == maxRetries {
			break
		}
		if isTransient(err) {
			time.Sleep(time.Duration(50*(attempt+1)) * time.Millisecond)
		} else {
			return err
		}
	}
	return err
}

// IsTransientFsError reports whether a filesystem error may succeed on retry.
// Interrupted syscalls and busy/contended paths qualify; permission and
// not-exist errors do not.
func IsTransientFsError(err error) bool {
	if errors.Is(err, fs.ErrPermission) || errors.Is(err, fs.ErrNotExist) {
		return false
	}
	for _, errno := range []syscall.Errno{syscall.EINTR, syscall.EAGAIN, syscall.EBUSY, syscall.ETXTBSY} {
		if errors.Is(err, errno) {
			return true
		}
	}
	return false
}
