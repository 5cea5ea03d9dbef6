package gpucmd

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
)

// Copy-buffer construction errors.
var (
	// ErrCopyOverlap is returned when a copy within a single buffer has
	// overlapping source and destination ranges.
	ErrCopyOverlap = errors.New("gpucmd: source and destination ranges overlap")

	// ErrNoRegions is returned when a copy command has no regions.
	ErrNoRegions = errors.New("gpucmd: copy has no regions")
)

// BufferCopy describes one region of a buffer-to-buffer copy.
type BufferCopy struct {
	// SrcOffset is the byte offset in the source buffer.
	SrcOffset uint64

	// DstOffset is the byte offset in the destination buffer.
	DstOffset uint64

	// Size is the number of bytes to copy.
	Size uint64
}

// CopyBufferCommand copies byte ranges from one buffer to another.
type CopyBufferCommand struct {
	src, dst             BufferAccess
	srcHandle, dstHandle BufferHandle
	regions              []BufferCopy
}

// NewCopyBuffer builds a command that copies the given regions from src
// to dst.
//
// src must carry the transfer-source usage and dst the
// transfer-destination usage. All offsets and sizes must be multiples
// of 4, every region must lie within both buffers, and regions of a
// copy within a single buffer must not overlap.
func NewCopyBuffer(src, dst BufferAccess, regions []BufferCopy) (*CopyBufferCommand, error) {
	if !src.Usage().Contains(gputypes.BufferUsageCopySrc) {
		return nil, fmt.Errorf("%w: source", ErrBufferMissingUsage)
	}
	if !dst.Usage().Contains(gputypes.BufferUsageCopyDst) {
		return nil, fmt.Errorf("%w: destination", ErrBufferMissingUsage)
	}
	if len(regions) == 0 {
		return nil, ErrNoRegions
	}

	srcInner, dstInner := src.Inner(), dst.Inner()
	sameBuffer := srcInner.Handle == dstInner.Handle

	for i, r := range regions {
		if r.SrcOffset%updateAlignment != 0 || r.DstOffset%updateAlignment != 0 || r.Size%updateAlignment != 0 {
			return nil, fmt.Errorf("%w: region %d", ErrWrongAlignment, i)
		}
		// Subtraction form: offset+size could wrap in uint64.
		if r.SrcOffset > src.Size() || r.Size > src.Size()-r.SrcOffset {
			return nil, fmt.Errorf("%w: region %d source offset %d + size %d > buffer size %d",
				ErrOutOfBounds, i, r.SrcOffset, r.Size, src.Size())
		}
		if r.DstOffset > dst.Size() || r.Size > dst.Size()-r.DstOffset {
			return nil, fmt.Errorf("%w: region %d destination offset %d + size %d > buffer size %d",
				ErrOutOfBounds, i, r.DstOffset, r.Size, dst.Size())
		}
		if sameBuffer && rangesOverlap(srcInner.Offset+r.SrcOffset, dstInner.Offset+r.DstOffset, r.Size) {
			return nil, fmt.Errorf("%w: region %d", ErrCopyOverlap, i)
		}
	}

	// Snapshot regions translated to allocation-relative offsets.
	captured := make([]BufferCopy, len(regions))
	for i, r := range regions {
		captured[i] = BufferCopy{
			SrcOffset: srcInner.Offset + r.SrcOffset,
			DstOffset: dstInner.Offset + r.DstOffset,
			Size:      r.Size,
		}
	}

	return &CopyBufferCommand{
		src:       src,
		dst:       dst,
		srcHandle: srcInner.Handle,
		dstHandle: dstInner.Handle,
		regions:   captured,
	}, nil
}

// rangesOverlap reports whether [a, a+size) and [b, b+size) intersect.
// The subtraction keeps the comparison exact when a+size would wrap.
func rangesOverlap(a, b, size uint64) bool {
	if a > b {
		a, b = b, a
	}
	return b-a < size
}

// Source returns the resource that is read.
func (c *CopyBufferCommand) Source() BufferAccess {
	return c.src
}

// Destination returns the resource that is written.
func (c *CopyBufferCommand) Destination() BufferAccess {
	return c.dst
}

// Regions returns the captured copy regions, in allocation-relative
// offsets.
func (c *CopyBufferCommand) Regions() []BufferCopy {
	return c.regions
}

// Device returns the device owning the destination resource, or nil if
// the resource does not report one.
func (c *CopyBufferCommand) Device() Device {
	if owned, ok := c.dst.(DeviceOwned); ok {
		return owned.Device()
	}
	return nil
}

// Type implements Command.
func (c *CopyBufferCommand) Type() CommandType { return CmdCopyBuffer }

// record implements Command.
func (c *CopyBufferCommand) record(dev Device, cb CommandBufferHandle) {
	dev.CmdCopyBuffer(cb, c.srcHandle, c.dstHandle, c.regions)
}
