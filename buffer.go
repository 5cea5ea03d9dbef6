package gpucmd

import (
	"github.com/gogpu/gputypes"
)

// BufferHandle is an opaque driver-level buffer handle. Backends supply
// their own concrete types (for example hal.Buffer or a Vulkan buffer).
// Handles must be comparable; copy validation compares them to detect
// same-buffer copies.
type BufferHandle any

// CommandBufferHandle is an opaque driver-level recording handle owned
// by a Builder for the duration of a recording session.
type CommandBufferHandle any

// BufferInner is the native descriptor of a buffer resource: the
// driver-level handle of the backing allocation and the byte offset of
// the resource within it.
type BufferInner struct {
	// Handle is the native buffer handle.
	Handle BufferHandle

	// Offset is the byte offset of the resource within the allocation.
	Offset uint64
}

// BufferAccess is implemented by buffer resources that commands can
// target. It reports the byte range, the native descriptor, and the
// declared usage of the resource.
//
// Implementations must return stable values: commands snapshot the
// descriptor at construction time and never re-resolve it.
type BufferAccess interface {
	// Size returns the byte size of the resource.
	Size() uint64

	// Inner returns the native handle and byte offset of the resource.
	Inner() BufferInner

	// Usage returns the usage flags the resource was declared with.
	Usage() gputypes.BufferUsage
}

// Device exposes the native entry points used to record commands onto a
// recording handle. All preconditions are established before these are
// called; implementations do not validate.
type Device interface {
	// CmdUpdateBuffer writes data to dst at offset. len(data) never
	// exceeds size.
	CmdUpdateBuffer(cb CommandBufferHandle, dst BufferHandle, offset, size uint64, data []byte)

	// CmdFillBuffer fills size bytes of dst at offset with a repeated
	// 32-bit word.
	CmdFillBuffer(cb CommandBufferHandle, dst BufferHandle, offset, size uint64, value uint32)

	// CmdCopyBuffer copies the given regions from src to dst.
	CmdCopyBuffer(cb CommandBufferHandle, src, dst BufferHandle, regions []BufferCopy)
}

// DeviceOwned is implemented by resources that report their owning
// device. Commands derive device affinity transitively through it.
type DeviceOwned interface {
	Device() Device
}

// TypedAccess pairs a BufferAccess with a statically declared content
// type. It is the access-level carrier of the compile-time guarantee
// that a command's payload type matches the buffer's content type.
type TypedAccess[T any] struct {
	BufferAccess
}

// AsTyped declares the content type of an access handle. The caller is
// responsible for the declaration being truthful; once declared, the
// typed constructors enforce it at compile time.
func AsTyped[T any](access BufferAccess) TypedAccess[T] {
	return TypedAccess[T]{BufferAccess: access}
}

// Buffer is a higher-level buffer abstraction whose content type is
// part of its static type. It yields the access handle that commands
// validate and capture.
type Buffer[T any] interface {
	Access() TypedAccess[T]
}
