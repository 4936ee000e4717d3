//go:build unix

package history

import (
	"os"
	"syscall"
)

// flockFile takes an exclusive advisory lock on a sidecar lock file. Other
// lock-aware clipd processes block until release; this is best-effort and
// only other flock users will respect it. The sidecar (rather than the
// store file itself) keeps the lock valid across the rename that replaces
// the store.
type fileLock struct {
	f *os.File
}

func acquireFileLock(path string) (*fileLock, error) {
	f, err := os.OpenFile(path+".lock", os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		f.Close()
		return nil, err
	}
	return &fileLock{f: f}, nil
}

func (l *fileLock) release() {
	if l == nil || l.f == nil {
		return
	}
	_ = syscall.Flock(int(l.f.Fd()), syscall.LOCK_UN)
	_ = l.f.Close()
}
