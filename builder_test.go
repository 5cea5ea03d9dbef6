package gpucmd

import (
	"errors"
	"testing"
)

func TestNewBuilder(t *testing.T) {
	dev := &fakeDevice{}

	b, err := NewBuilder(dev, "cb", "setup")
	if err != nil {
		t.Fatalf("NewBuilder() error = %v", err)
	}
	if b.Status() != BuilderStatusRecording {
		t.Errorf("Status() = %v, want Recording", b.Status())
	}
	if b.Label() != "setup" {
		t.Errorf("Label() = %q, want %q", b.Label(), "setup")
	}
	if b.Device() != Device(dev) {
		t.Error("Device() should return the construction device")
	}

	if _, err := NewBuilder(nil, "cb", ""); !errors.Is(err, ErrNilDevice) {
		t.Errorf("NewBuilder(nil) error = %v, want ErrNilDevice", err)
	}
}

func TestBuilderAdd_RecordsExactlyOnce(t *testing.T) {
	dev := &fakeDevice{}
	b, err := NewBuilder(dev, "cb-1", "")
	if err != nil {
		t.Fatalf("NewBuilder() error = %v", err)
	}

	cmd, err := NewUpdateBufferUnchecked(transferDst(64), make([]byte, 64))
	if err != nil {
		t.Fatalf("NewUpdateBufferUnchecked() error = %v", err)
	}

	out, err := b.Add(cmd)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if out != b {
		t.Error("Add() should return the same builder for chaining")
	}

	if len(dev.updates) != 1 {
		t.Fatalf("got %d native calls, want 1", len(dev.updates))
	}
	call := dev.updates[0]
	if call.cb != CommandBufferHandle("cb-1") {
		t.Errorf("recorded on handle %v, want cb-1", call.cb)
	}
	if call.offset != 0 || call.size != 64 {
		t.Errorf("recorded offset=%d size=%d, want offset=0 size=64", call.offset, call.size)
	}
}

func TestBuilderAdd_Chaining(t *testing.T) {
	dev := &fakeDevice{}
	b, _ := NewBuilder(dev, "cb", "")

	update, err := NewUpdateBufferUnchecked(transferDst(16), make([]byte, 16))
	if err != nil {
		t.Fatalf("NewUpdateBufferUnchecked() error = %v", err)
	}
	fill, err := NewFillBuffer(transferDst(32), 0, WholeSize, 0xdeadbeef)
	if err != nil {
		t.Fatalf("NewFillBuffer() error = %v", err)
	}

	b, err = b.Add(update)
	if err != nil {
		t.Fatalf("Add(update) error = %v", err)
	}
	b, err = b.Add(fill)
	if err != nil {
		t.Fatalf("Add(fill) error = %v", err)
	}

	if len(dev.updates) != 1 || len(dev.fills) != 1 {
		t.Errorf("got %d updates and %d fills, want 1 and 1", len(dev.updates), len(dev.fills))
	}

	if _, err := b.Finish(); err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
}

func TestBuilderAdd_NilCommand(t *testing.T) {
	dev := &fakeDevice{}
	b, _ := NewBuilder(dev, "cb", "")

	if _, err := b.Add(nil); !errors.Is(err, ErrNilCommand) {
		t.Errorf("Add(nil) error = %v, want ErrNilCommand", err)
	}

	// A typed nil pointer inside the interface must be rejected too,
	// not passed on to record.
	if _, err := b.Add((*UpdateBufferCommand)(nil)); !errors.Is(err, ErrNilCommand) {
		t.Errorf("Add(typed nil) error = %v, want ErrNilCommand", err)
	}
	if len(dev.updates) != 0 {
		t.Error("rejected Add must not reach the native stream")
	}
}

func TestBuilderFinish_SealsRecording(t *testing.T) {
	dev := &fakeDevice{}
	b, _ := NewBuilder(dev, "cb", "frame")

	cb, err := b.Finish()
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	if cb.Label() != "frame" {
		t.Errorf("Label() = %q, want %q", cb.Label(), "frame")
	}
	if b.Status() != BuilderStatusFinished {
		t.Errorf("Status() = %v, want Finished", b.Status())
	}

	// Further operations fail.
	cmd, _ := NewUpdateBufferUnchecked(transferDst(4), make([]byte, 4))
	if _, err := b.Add(cmd); !errors.Is(err, ErrFinished) {
		t.Errorf("Add() after Finish error = %v, want ErrFinished", err)
	}
	if _, err := b.Finish(); !errors.Is(err, ErrFinished) {
		t.Errorf("second Finish() error = %v, want ErrFinished", err)
	}
	if len(dev.updates) != 0 {
		t.Error("rejected Add must not reach the native stream")
	}
}

func TestCommandBufferHandle_ConsumedOnce(t *testing.T) {
	dev := &fakeDevice{}
	b, _ := NewBuilder(dev, "cb-native", "")
	cb, err := b.Finish()
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}

	handle, err := cb.Handle()
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if handle != CommandBufferHandle("cb-native") {
		t.Errorf("Handle() = %v, want cb-native", handle)
	}

	if _, err := cb.Handle(); !errors.Is(err, ErrConsumed) {
		t.Errorf("second Handle() error = %v, want ErrConsumed", err)
	}
}

func TestBuilderStatusString(t *testing.T) {
	if got := BuilderStatusRecording.String(); got != "Recording" {
		t.Errorf("String() = %q, want Recording", got)
	}
	if got := BuilderStatusFinished.String(); got != "Finished" {
		t.Errorf("String() = %q, want Finished", got)
	}
}
