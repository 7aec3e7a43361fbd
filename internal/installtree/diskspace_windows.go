//go:build windows

package installtree

import "golang.org/x/sys/windows"

// availableDiskSpace returns available disk space in bytes for Windows
func availableDiskSpace(path string) (int64, error) {
	pathPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, err
	}

	var freeBytesAvailable, totalBytes, totalFreeBytes uint64
	if err := windows.GetDiskFreeSpaceEx(pathPtr, &freeBytesAvailable, &totalBytes, &totalFreeBytes); err != nil {
		return 0, err
	}

	return int64(freeBytesAvailable), nil
}
