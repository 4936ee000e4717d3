//go:build !unix

package history

// Advisory locking is a no-op on platforms without flock. In-process writes
// are still serialized by the store mutex.
type fileLock struct{}

func acquireFileLock(string) (*fileLock, error) {
	return &fileLock{}, nil
}

func (l *fileLock) release() {}
