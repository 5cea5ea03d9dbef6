// Package wgpu adapts gpucmd onto the gogpu/wgpu hardware abstraction
// layer.
//
// It uses the gogpu/wgpu Pure Go WebGPU implementation, which supports
// Vulkan, Metal, and DX12 backends depending on the platform.
//
// # Architecture Overview
//
// The adapter implements gpucmd.Device by accumulating pending
// operations on a Recording (the native command-buffer handle for this
// backend) and flushing them on Submit:
//
//	gpucmd.Builder -> Recording (pending writes/copies) -> hal.Queue
//
// Buffer updates and fills become hal.Queue.WriteBuffer calls; copies
// are encoded through a hal.CommandEncoder, submitted, and drained with
// Device.WaitIdle (the HAL fences its own submissions). This matches
// how WebGPU exposes inline buffer writes: the queue, not the encoder,
// owns the write path.
package wgpu
