package gpucmd

import (
	"runtime"
	"unsafe"
)

// contentBytes reinterprets the value behind p as its raw byte
// representation. The returned slice aliases *p; it stays valid for as
// long as the slice itself is reachable.
//
// T must not contain pointers: the bytes are handed to the driver
// verbatim, exactly as a GPU-visible payload.
// See https://github.com/golang/go/issues/32402.
func contentBytes[T any](p *T) []byte {
	var zero T
	b := unsafe.Slice((*byte)(unsafe.Pointer(p)), int(unsafe.Sizeof(zero)))
	runtime.KeepAlive(p)
	return b
}

// sliceBytes reinterprets a slice of plain data as a []byte without
// copying. Returns nil for an empty slice.
func sliceBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	b := unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*int(unsafe.Sizeof(zero)))
	runtime.KeepAlive(data)
	return b
}
