//go:build !windows

package clipboard

// NewSystemPort returns the platform clipboard port. Only Windows has a
// system adapter; elsewhere a process-local in-memory port is returned so
// the rest of the pipeline stays runnable.
func NewSystemPort() (Port, error) {
	return NewMemoryPort(), nil
}
