// Command glemudemo uploads a quad-grid index list through a glemu backend,
// simulates a context loss and recovers the array.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/glemu"
	"github.com/gogpu/glemu/backend"
	"github.com/gogpu/glemu/backend/emulated"

	_ "github.com/gogpu/glemu/backend/native"
)

// maxQuads keeps the highest vertex index within uint16.
const maxQuads = (1 << 16) / 4

func main() {
	var (
		indices = flag.Int("indices", 600, "number of indices (multiple of 6)")
		dynamic = flag.Bool("dynamic", false, "use the DYNAMIC_DRAW usage hint")
		name    = flag.String("backend", "", "backend name (default: best available)")
		lose    = flag.Bool("lose", true, "simulate a context loss after the first upload")
		verbose = flag.Bool("v", false, "log debug output")
	)
	flag.Parse()

	if *verbose {
		glemu.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if err := run(*name, *indices, !*dynamic, *lose); err != nil {
		log.Fatal(err)
	}
}

func run(name string, count int, isStatic, lose bool) error {
	if count < 0 || count%6 != 0 || count/6 > maxQuads {
		return fmt.Errorf("indices must be a multiple of 6 up to %d, got %d", maxQuads*6, count)
	}

	var (
		b   backend.ContextBackend
		err error
	)
	if name == "" {
		b, err = backend.InitDefault()
	} else {
		b, err = backend.InitNamed(name)
	}
	if err != nil {
		return err
	}
	defer b.Close()
	log.Printf("backend: %s (available: %v)", b.Name(), backend.Available())

	gl := b.GL()
	if gl == nil {
		return fmt.Errorf("%s: %w", b.Name(), backend.ErrNotInitialized)
	}
	res := glemu.NewResources()
	ia := glemu.NewIndexArray(gl, isStatic, count, glemu.WithLabel("quad-grid"), glemu.WithResources(res))
	defer ia.Dispose()

	if err := ia.SetIndices(quadGrid(count/6), 0, count); err != nil {
		return err
	}
	if err := draw(ia, gl); err != nil {
		return err
	}
	report("upload", ia, gl)

	if !lose {
		return nil
	}
	l, ok := b.(backend.Loser)
	if !ok {
		log.Printf("backend %s cannot simulate a context loss", b.Name())
		return nil
	}
	l.Lose()
	log.Printf("context lost, invalidated %d arrays", res.InvalidateAll())

	if err := draw(ia, gl); err != nil {
		return err
	}
	report("recover", ia, gl)
	return nil
}

// draw binds ia the way a renderer does around an indexed draw call.
func draw(ia *glemu.IndexArray, gl glemu.GL20) error {
	if err := ia.Bind(); err != nil {
		return err
	}
	defer ia.Unbind()
	if r, ok := gl.(backend.ErrorReporter); ok {
		if err := r.Error(); err != nil {
			return fmt.Errorf("gl: %w", err)
		}
	}
	return nil
}

func report(stage string, ia *glemu.IndexArray, gl glemu.GL20) {
	log.Printf("%s: handle=%d indices=%d/%d usage=%v dirty=%t",
		stage, ia.Handle(), ia.NumIndices(), ia.NumMaxIndices(), ia.Usage(), ia.Dirty())

	switch c := gl.(type) {
	case *backend.MemoryContext:
		s := c.Stats()
		log.Printf("%s: gens=%d binds=%d uploads=%d bytes=%d deletes=%d losses=%d",
			stage, s.Gens, s.Binds, s.Uploads, s.UploadedBytes, s.Deletes, c.Losses())
	case *emulated.Context:
		if info, ok := c.Info(ia.Handle()); ok {
			log.Printf("%s: device buffer=%d size=%d capacity=%d",
				stage, info.ID, info.Size, info.Capacity)
		}
	}
}

// quadGrid returns two triangles per quad over four vertices each.
func quadGrid(quads int) []uint16 {
	out := make([]uint16, 0, quads*6)
	for q := range quads {
		v := uint16(q * 4)
		out = append(out, v, v+1, v+2, v+2, v+3, v)
	}
	return out
}
