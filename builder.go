package gpucmd

import (
	"errors"
	"fmt"
	"reflect"
)

// Builder state errors.
var (
	// ErrNotRecording is returned when commands are added to a builder
	// that is not in the Recording state.
	ErrNotRecording = errors.New("gpucmd: builder not in recording state")

	// ErrFinished is returned when operations are called on a builder
	// that has already been finished.
	ErrFinished = errors.New("gpucmd: builder already finished")

	// ErrConsumed is returned when operations are called on a command
	// buffer that has been submitted.
	ErrConsumed = errors.New("gpucmd: command buffer has been consumed")

	// ErrNilCommand is returned when a nil command is added.
	ErrNilCommand = errors.New("gpucmd: command is nil")

	// ErrNilDevice is returned when a builder is created without a device.
	ErrNilDevice = errors.New("gpucmd: device is nil")
)

// BuilderStatus is the recording state of a Builder.
type BuilderStatus uint8

const (
	// BuilderStatusRecording means the builder accepts commands.
	BuilderStatusRecording BuilderStatus = iota
	// BuilderStatusFinished means Finish was called; the recording is
	// sealed inside a CommandBuffer.
	BuilderStatusFinished
)

// String returns the string representation of a BuilderStatus.
func (s BuilderStatus) String() string {
	switch s {
	case BuilderStatusRecording:
		return "Recording"
	case BuilderStatusFinished:
		return "Finished"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// Builder records validated commands onto a native recording handle.
//
// A Builder exclusively owns its recording handle for the duration of a
// recording session. Injection hands the builder through the call and
// back out, so exactly one logical owner of the handle exists at any
// time:
//
//	b, err = b.Add(cmd1)
//	b, err = b.Add(cmd2)
//	cb, err := b.Finish()
//
// Builder is NOT safe for concurrent use. The surrounding system must
// drive a recording session from one logical sequence of injections at
// a time; no locking is performed here.
type Builder struct {
	// device supplies the native entry points.
	device Device

	// handle is the native recording handle, exclusively owned.
	handle CommandBufferHandle

	// kind is the pool category the builder was allocated from.
	kind PoolKind

	// label is the debug label for this recording.
	label string

	// status is the recording state.
	status BuilderStatus
}

// NewBuilder creates a builder recording onto the given native handle.
//
// The builder starts in the Recording state. Prefer allocating builders
// through a Pool, which tracks the pool category.
func NewBuilder(device Device, handle CommandBufferHandle, label string) (*Builder, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	return &Builder{
		device: device,
		handle: handle,
		kind:   PoolKindPrimary,
		label:  label,
	}, nil
}

// Label returns the builder's debug label.
func (b *Builder) Label() string {
	return b.label
}

// Kind returns the pool category the builder belongs to.
func (b *Builder) Kind() PoolKind {
	return b.kind
}

// Status returns the current recording state.
func (b *Builder) Status() BuilderStatus {
	return b.status
}

// Device returns the device whose entry points the builder records
// through.
func (b *Builder) Device() Device {
	return b.device
}

// Add appends one validated command to the recording and returns the
// builder for further chaining.
//
// The command is borrowed, not consumed, and performs no validation of
// its own: a Command value is proof that its preconditions hold. The
// only failures are builder-state errors.
func (b *Builder) Add(cmd Command) (*Builder, error) {
	if err := b.checkRecording(); err != nil {
		return nil, fmt.Errorf("add %s: %w", commandName(cmd), err)
	}
	if isNilCommand(cmd) {
		return nil, ErrNilCommand
	}

	cmd.record(b.device, b.handle)

	slogger().Debug("gpucmd: command recorded",
		"command", cmd.Type().String(),
		"label", b.label)

	return b, nil
}

// Finish seals the recording and returns a CommandBuffer.
//
// After Finish the builder rejects further commands.
func (b *Builder) Finish() (*CommandBuffer, error) {
	if err := b.checkRecording(); err != nil {
		return nil, fmt.Errorf("finish: %w", err)
	}

	b.status = BuilderStatusFinished

	return &CommandBuffer{
		device: b.device,
		handle: b.handle,
		kind:   b.kind,
		label:  b.label,
	}, nil
}

// checkRecording returns an error if the builder cannot accept commands.
func (b *Builder) checkRecording() error {
	switch b.status {
	case BuilderStatusRecording:
		return nil
	case BuilderStatusFinished:
		return ErrFinished
	default:
		return ErrNotRecording
	}
}

// isNilCommand reports whether cmd is nil, including a typed nil
// pointer wrapped in the interface, which compares unequal to nil but
// would still crash inside record.
func isNilCommand(cmd Command) bool {
	if cmd == nil {
		return true
	}
	v := reflect.ValueOf(cmd)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// commandName names a command for error context without touching a nil
// value.
func commandName(cmd Command) string {
	if cmd == nil {
		return "Command"
	}
	return cmd.Type().String()
}

// CommandBuffer is a finished recording ready for submission.
//
// Command buffers are created by Builder.Finish. Submitting one marks
// it consumed; a consumed buffer cannot be handed out again.
type CommandBuffer struct {
	device   Device
	handle   CommandBufferHandle
	kind     PoolKind
	label    string
	consumed bool
}

// Label returns the command buffer's debug label.
func (cb *CommandBuffer) Label() string {
	return cb.label
}

// Kind returns the pool category the recording came from.
func (cb *CommandBuffer) Kind() PoolKind {
	return cb.kind
}

// Handle returns the native recording handle and marks the buffer
// consumed. It fails with ErrConsumed on second use: the native handle
// may only be submitted once per recording session.
func (cb *CommandBuffer) Handle() (CommandBufferHandle, error) {
	if cb.consumed {
		return nil, ErrConsumed
	}
	cb.consumed = true
	return cb.handle, nil
}
