// Command gpucmddemo records a small command stream against the
// in-memory capture backend and prints the result.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gpucmd"
	"github.com/gogpu/gpucmd/capture"
)

// demoBuffer is a standalone transfer-destination resource backed by
// nothing; the capture backend never dereferences handles.
type demoBuffer struct {
	name string
	size uint64
}

func (b *demoBuffer) Size() uint64 { return b.size }

func (b *demoBuffer) Inner() gpucmd.BufferInner {
	return gpucmd.BufferInner{Handle: b.name}
}

func (b *demoBuffer) Usage() gputypes.BufferUsage {
	return gputypes.BufferUsageCopyDst | gputypes.BufferUsageCopySrc
}

func main() {
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	if *verbose {
		gpucmd.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	dev := capture.New()
	pool, err := gpucmd.NewPool(dev, gpucmd.PoolKindPrimary)
	if err != nil {
		log.Fatalf("create pool: %v", err)
	}

	uniforms := &demoBuffer{name: "uniforms", size: 64}
	scratch := &demoBuffer{name: "scratch", size: 256}

	contents := [16]float32{0: 1, 5: 1, 10: 1, 15: 1} // identity matrix
	update, err := gpucmd.NewUpdateBufferFromAccess(gpucmd.AsTyped[[16]float32](uniforms), &contents)
	if err != nil {
		log.Fatalf("build update command: %v", err)
	}
	clear, err := gpucmd.NewFillBuffer(scratch, 0, gpucmd.WholeSize, 0)
	if err != nil {
		log.Fatalf("build fill command: %v", err)
	}
	stage, err := gpucmd.NewCopyBuffer(uniforms, scratch, []gpucmd.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: 64},
	})
	if err != nil {
		log.Fatalf("build copy command: %v", err)
	}

	b := pool.Begin("demo-cb", "demo")
	for _, cmd := range []gpucmd.Command{update, clear, stage} {
		if b, err = b.Add(cmd); err != nil {
			log.Fatalf("add %s: %v", cmd.Type(), err)
		}
	}
	cb, err := b.Finish()
	if err != nil {
		log.Fatalf("finish recording: %v", err)
	}
	pool.Recycle(b)

	fmt.Printf("recorded %q (%d commands):\n%s", cb.Label(), dev.Len(), dev.Dump())
}
