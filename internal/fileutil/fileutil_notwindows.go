//go:build !windows

package fileutil

import "errors"

// moveToWindowsTrash exists so MoveToTrash compiles on every platform; the
// GOOS switch there never routes here off Windows.
func moveToWindowsTrash(path string) error {
	return errors.New("recycle bin requires windows")
}
