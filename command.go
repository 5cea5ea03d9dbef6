package gpucmd

// CommandType identifies the kind of a command.
type CommandType uint8

const (
	// CmdUpdateBuffer overwrites a byte range of a buffer with inline data.
	CmdUpdateBuffer CommandType = iota
	// CmdFillBuffer fills a byte range of a buffer with a repeated word.
	CmdFillBuffer
	// CmdCopyBuffer copies byte ranges between two buffers.
	CmdCopyBuffer
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdUpdateBuffer: "UpdateBuffer",
	CmdFillBuffer:   "FillBuffer",
	CmdCopyBuffer:   "CopyBuffer",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is a validated, immutable command value ready for injection
// into a Builder. Every command kind implements the same shape: a
// constructor family that establishes the native preconditions, and a
// record step that performs the raw call with the captured arguments.
//
// The interface is sealed; command values are only produced by the
// constructors in this package, so an existing Command is proof that
// its preconditions were satisfied.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType

	// record appends the command to the native stream through the
	// device entry points. Assumed infallible: all preconditions were
	// established at construction time.
	record(dev Device, cb CommandBufferHandle)
}
