package gpucmd

import (
	"errors"

	"github.com/gogpu/gputypes"
)

// Update-buffer construction errors.
var (
	// ErrBufferMissingUsage is returned when the target buffer was not
	// declared usable as a transfer destination.
	ErrBufferMissingUsage = errors.New("gpucmd: the transfer destination usage must be enabled on the buffer")

	// ErrWrongAlignment is returned when the buffer offset or size is
	// not a multiple of 4 bytes.
	ErrWrongAlignment = errors.New("gpucmd: the offset or size are not aligned to 4 bytes")

	// ErrDataTooLarge is returned when the update exceeds MaxUpdateSize.
	ErrDataTooLarge = errors.New("gpucmd: data is too large")
)

const (
	// MaxUpdateSize is the ceiling on inline buffer updates, in bytes.
	// Larger writes must be split into multiple commands or staged
	// through a copy.
	MaxUpdateSize = 65536

	// updateAlignment is the required alignment of offset and size.
	updateAlignment = 4
)

// UpdateBufferCommand sets the content of a buffer range to inline
// data. A value of this type is proof that the target resource carries
// the transfer-destination usage, that its offset and size are 4-byte
// aligned, and that the size does not exceed MaxUpdateSize.
//
// The command is immutable after construction. The native handle and
// offset are captured once, so injection never re-resolves the
// resource descriptor.
type UpdateBufferCommand struct {
	// buffer is the target resource, held for the command's lifetime.
	buffer BufferAccess

	// handle is the captured native buffer handle.
	handle BufferHandle

	// offset is the byte offset of the write.
	offset uint64

	// size is the byte length of the write.
	size uint64

	// data is the payload. If its length and size disagree, only the
	// intersection is written.
	data []byte
}

// NewUpdateBuffer builds a command that writes data to a typed buffer.
//
// The buffer's content type and the payload type agree by construction.
// Runtime preconditions are the same as NewUpdateBufferUnchecked.
func NewUpdateBuffer[T any](buffer Buffer[T], data *T) (*UpdateBufferCommand, error) {
	return NewUpdateBufferFromAccess(buffer.Access(), data)
}

// NewUpdateBufferFromAccess is like NewUpdateBuffer, except that the
// parameter is an access-level handle instead of a Buffer. The static
// content-type guarantee is preserved through TypedAccess.
func NewUpdateBufferFromAccess[T any](access TypedAccess[T], data *T) (*UpdateBufferCommand, error) {
	return NewUpdateBufferUnchecked(access.BufferAccess, contentBytes(data))
}

// NewUpdateBufferSlice builds a command that writes a slice of plain
// values to a buffer declared to hold []T. The static content-type
// guarantee is preserved through TypedAccess; runtime preconditions are
// the same as NewUpdateBufferUnchecked.
func NewUpdateBufferSlice[T any](access TypedAccess[[]T], data []T) (*UpdateBufferCommand, error) {
	return NewUpdateBufferUnchecked(access.BufferAccess, sliceBytes(data))
}

// NewUpdateBufferUnchecked is like NewUpdateBufferFromAccess, except
// that type safety is not enforced: the caller asserts out of band that
// data matches the buffer's content type. All runtime checks are still
// performed.
//
// If the payload length and the buffer size mismatch, only the
// intersection of both is written.
func NewUpdateBufferUnchecked(access BufferAccess, data []byte) (*UpdateBufferCommand, error) {
	if !access.Usage().Contains(gputypes.BufferUsageCopyDst) {
		return nil, ErrBufferMissingUsage
	}

	inner := access.Inner()
	if inner.Offset%updateAlignment != 0 {
		return nil, ErrWrongAlignment
	}

	size := access.Size()
	if size%updateAlignment != 0 {
		return nil, ErrWrongAlignment
	}
	if size > MaxUpdateSize {
		return nil, ErrDataTooLarge
	}

	return &UpdateBufferCommand{
		buffer: access,
		handle: inner.Handle,
		offset: inner.Offset,
		size:   size,
		data:   data,
	}, nil
}

// Buffer returns the resource that is going to be written.
func (c *UpdateBufferCommand) Buffer() BufferAccess {
	return c.buffer
}

// Device returns the device owning the target resource, or nil if the
// resource does not report one.
func (c *UpdateBufferCommand) Device() Device {
	if owned, ok := c.buffer.(DeviceOwned); ok {
		return owned.Device()
	}
	return nil
}

// Type implements Command.
func (c *UpdateBufferCommand) Type() CommandType { return CmdUpdateBuffer }

// record implements Command.
func (c *UpdateBufferCommand) record(dev Device, cb CommandBufferHandle) {
	data := c.data
	if uint64(len(data)) > c.size {
		data = data[:c.size]
	}
	dev.CmdUpdateBuffer(cb, c.handle, c.offset, c.size, data)
}
