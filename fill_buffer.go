package gpucmd

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
)

// ErrOutOfBounds is returned when a command's byte range exceeds the
// target resource's size.
var ErrOutOfBounds = errors.New("gpucmd: range out of buffer bounds")

// WholeSize selects everything from the offset to the end of the
// buffer in a FillBufferCommand.
const WholeSize = ^uint64(0)

// FillBufferCommand fills a byte range of a buffer with a repeated
// 32-bit word.
type FillBufferCommand struct {
	buffer BufferAccess
	handle BufferHandle
	offset uint64
	size   uint64
	value  uint32
}

// NewFillBuffer builds a command that fills size bytes of the buffer at
// offset with value. Pass WholeSize to fill to the end of the buffer.
//
// The buffer must carry the transfer-destination usage. Offset and the
// resolved size must be multiples of 4, and the range must lie within
// the buffer.
func NewFillBuffer(access BufferAccess, offset, size uint64, value uint32) (*FillBufferCommand, error) {
	if !access.Usage().Contains(gputypes.BufferUsageCopyDst) {
		return nil, ErrBufferMissingUsage
	}

	inner := access.Inner()
	if (inner.Offset+offset)%updateAlignment != 0 {
		return nil, ErrWrongAlignment
	}

	bufSize := access.Size()
	if offset > bufSize {
		return nil, fmt.Errorf("%w: offset %d > buffer size %d", ErrOutOfBounds, offset, bufSize)
	}
	if size == WholeSize {
		size = bufSize - offset
	}
	if size%updateAlignment != 0 {
		return nil, ErrWrongAlignment
	}
	// Subtraction form: offset <= bufSize holds, and offset+size could
	// wrap in uint64.
	if size > bufSize-offset {
		return nil, fmt.Errorf("%w: offset %d + size %d > buffer size %d", ErrOutOfBounds, offset, size, bufSize)
	}

	return &FillBufferCommand{
		buffer: access,
		handle: inner.Handle,
		offset: inner.Offset + offset,
		size:   size,
		value:  value,
	}, nil
}

// Buffer returns the resource that is going to be filled.
func (c *FillBufferCommand) Buffer() BufferAccess {
	return c.buffer
}

// Device returns the device owning the target resource, or nil if the
// resource does not report one.
func (c *FillBufferCommand) Device() Device {
	if owned, ok := c.buffer.(DeviceOwned); ok {
		return owned.Device()
	}
	return nil
}

// Type implements Command.
func (c *FillBufferCommand) Type() CommandType { return CmdFillBuffer }

// record implements Command.
func (c *FillBufferCommand) record(dev Device, cb CommandBufferHandle) {
	dev.CmdFillBuffer(cb, c.handle, c.offset, c.size, c.value)
}
