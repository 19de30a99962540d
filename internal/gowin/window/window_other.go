//go:build !windows

package window

// New always fails outside Windows: the context bootstrap is WGL-specific.
func New(opts Options) (Window, error) {
	return nil, ErrUnsupportedPlatform
}
