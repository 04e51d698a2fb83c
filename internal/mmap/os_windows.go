//go:build windows

package mmap

import (
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

func osMap(f *os.File, size int) ([]byte, func([]byte) error, error) {
	h, err := windows.CreateFileMapping(windows.Handle(f.Fd()), nil, windows.PAGE_READONLY, 0, 0, nil)
	if err != nil {
		return nil, nil, err
	}

	addr, err := windows.MapViewOfFile(h, windows.FILE_MAP_READ, 0, 0, uintptr(size))
	if err != nil {
		windows.CloseHandle(h)
		return nil, nil, err
	}

	data := unsafe.Slice((*byte)(unsafe.Pointer(addr)), size) //nolint:gosec // required for mapping

	unmap := func(b []byte) error {
		err := windows.UnmapViewOfFile(addr)
		if closeErr := windows.CloseHandle(h); err == nil {
			err = closeErr
		}
		return err
	}
	return data, unmap, nil
}

func osAdvise(_ []byte, _ AccessPattern) error {
	// No madvise equivalent wired on Windows; hints are advisory.
	return nil
}
