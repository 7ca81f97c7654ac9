//go:build !linux && !darwin && !windows

package platform

// Notify reports ErrUnsupported; callers treat it as a silent skip.
func Notify(string, string, Options) error {
	return ErrUnsupported
}
