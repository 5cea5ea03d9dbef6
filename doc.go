// Package gpucmd provides a typed, validating front-end for recording
// GPU commands.
//
// # Overview
//
// gpucmd sits between application code and a raw command-recording
// backend. Callers build immutable command values through validating
// constructors, then inject them into a Builder. Every driver-level
// precondition (usage flags, alignment, size ceilings) is checked at
// construction time, so the single unsafe crossing into the native
// layer happens only after all invariants hold.
//
// # Quick Start
//
//	import "github.com/gogpu/gpucmd"
//
//	// Declare the buffer's content type and build a validated command.
//	access := gpucmd.AsTyped[[16]float32](storage)
//	cmd, err := gpucmd.NewUpdateBufferFromAccess(access, &contents)
//	if err != nil {
//		// ErrBufferMissingUsage, ErrWrongAlignment or ErrDataTooLarge
//	}
//
//	// Inject into a builder. Add returns the builder for chaining.
//	b := pool.Begin(handle, "frame-setup")
//	b, err = b.Add(cmd)
//	cb, err := b.Finish()
//
// # Architecture
//
// The library is organized into:
//   - Public API: Command values, Builder, Pool, buffer access interfaces
//   - capture: in-memory backend that records commands for inspection
//   - backend/wgpu: adapter onto the gogpu/wgpu HAL
//
// Construction failures are reported as one of three sentinel errors so
// callers can pick a corrective action with errors.Is. Injection itself
// never re-validates; its only failures are builder-state errors.
package gpucmd
