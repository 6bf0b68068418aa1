// This file is part of GopherGE.
//
// GopherGE is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherGE is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherGE.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/hakea/gopherge/digest"
	"github.com/hakea/gopherge/hardware/ge"
	"github.com/hakea/gopherge/hardware/memory"
	"github.com/hakea/gopherge/logger"
	"github.com/hakea/gopherge/modalflag"
	"github.com/hakea/gopherge/performance"
	"github.com/hakea/gopherge/render"
	"github.com/hakea/gopherge/render/gles"
	"github.com/hakea/gopherge/render/headless"
	"github.com/hakea/gopherge/statsview"
	"github.com/hakea/gopherge/version"

	"github.com/bradleyjkemp/memviz"
	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/veandco/go-sdl2/sdl"
)

// output surface dimensions. twice the guest display in both directions
const (
	winWidth  = 960
	winHeight = 544
)

// height of the displayed guest surface, used when hashing frames
const guestHeight = 272

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Printf("* %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "VERSION":
		vers, rev := version.Version()
		fmt.Printf("%s (%s)\n", version.ApplicationName, vers)
		fmt.Printf("  %s\n", rev)

	case "RUN":
		md.NewMode()
		err = play(md)
		if err != nil {
			fmt.Printf("* %v\n", err)
			os.Exit(10)
		}
	}
}

func play(md *modalflag.Modes) error {
	noWindow := md.AddBool("headless", false, "run without a window or GL context")
	numFrames := md.AddInt("frames", 0, "number of frames to replay. zero means until quit")
	memvizFile := md.AddString("memviz", "", "write the GPU object graph to file in dot format")
	stats := md.AddBool("stats", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	prescaleUV := md.AddBool("prescale-uv", false, "bake texture scale/offset into vertices at decode")
	softSkinning := md.AddBool("software-skinning", true, "apply bone weights on the CPU")
	echoLog := md.AddBool("log", false, "echo log entries to stderr")
	hash := md.AddBool("hash", false, "print a hash of the displayed frames")
	profile := md.AddString("profile", "none", "run through the profiler (cpu|mem|all)")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return nil
	case modalflag.ParseError:
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("one recording file required")
	}

	if *echoLog {
		logger.SetEcho(os.Stderr)
	}

	if *stats {
		if !statsview.Available() {
			return fmt.Errorf("statsview not available in this build. rebuild with the statsview build tag")
		}
		statsview.Launch(md.Output)
	}

	rec, err := loadRecording(md.GetArg(0))
	if err != nil {
		return err
	}

	cfg := ge.Config{
		PrescaleUV:       *prescaleUV,
		SoftwareSkinning: *softSkinning,
		VSync:            true,
		OutputWidth:      winWidth,
		OutputHeight:     winHeight,
	}

	prf, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	return performance.RunProfiler(prf, version.ApplicationName, func() error {
		if *noWindow {
			return playHeadless(md.Output, rec, cfg, *numFrames, *memvizFile, *hash)
		}
		return playWindowed(md.Output, rec, cfg, *numFrames, *memvizFile, *hash)
	})
}

// replayer feeds a recording through the GPU, one frame at a time.
type replayer struct {
	mem *memory.Mem
	gpu *ge.GPU
	rec *recording

	// index of the next record. wraps to zero at the end of the recording
	idx int

	// the displayed guest surface, tracked for the frame digest. dig is
	// nil unless hashing was requested
	dig        *digest.Video
	dispAddr   uint32
	dispStride int
	dispFormat render.BufferFormat
}

// hashFrame folds the displayed guest surface into the digest.
func (rp *replayer) hashFrame() {
	if rp.dispStride == 0 {
		return
	}

	bpp := 2
	if rp.dispFormat == render.Buffer8888 {
		bpp = 4
	}

	s, err := rp.mem.Slice(rp.dispAddr, uint32(guestHeight*rp.dispStride*bpp))
	if err != nil {
		logger.Logf(logger.Allow, "replay", "frame hash: %v", err)
		return
	}
	rp.dig.Frame(s)
}

// runFrame replays records up to and including the next frame marker.
func (rp *replayer) runFrame() {
	rp.gpu.ProcessEvents()
	rp.gpu.BeginFrame()

	for {
		r := rp.rec.records[rp.idx]
		rp.idx++
		if rp.idx >= len(rp.rec.records) {
			rp.idx = 0
		}

		switch r.kind {
		case recMemory:
			s, err := rp.mem.Slice(r.addr, uint32(len(r.data)))
			if err != nil {
				logger.Logf(logger.Allow, "replay", "memory record: %v", err)
				continue
			}
			copy(s, r.data)
			rp.gpu.InvalidateCache(r.addr, len(r.data), render.InvalidateSafe)

		case recDisplay:
			rp.dispAddr = r.addr
			rp.dispStride = r.stride
			rp.dispFormat = r.format
			rp.gpu.SetDisplayFramebuffer(r.addr, r.stride, r.format)

		case recList:
			list := &render.DisplayList{
				PC:        r.pc,
				Downcount: int64(r.words),
			}
			rp.gpu.Run(list)

		case recFrame:
			if rp.dig != nil {
				rp.hashFrame()
			}
			rp.gpu.CopyDisplayToOutput()
			return
		}
	}
}

func playHeadless(output io.Writer, rec *recording, cfg ge.Config, numFrames int, memvizFile string, hash bool) error {
	mem := memory.NewMem()
	rnd := headless.NewRenderer()
	gpu := ge.NewGPU(cfg, mem, rnd.Renderer())

	rp := &replayer{mem: mem, gpu: gpu, rec: rec}
	if hash {
		rp.dig = digest.NewVideo()
	}

	if memvizFile != "" {
		err := dumpMemviz(memvizFile, gpu)
		if err != nil {
			return err
		}
	}

	if numFrames == 0 {
		numFrames = rec.numFrames
	}

	// per-frame counters are left to accumulate so the summary covers the
	// whole run
	startTime := time.Now()
	gpu.InitClear()
	for fr := 0; fr < numFrames; fr++ {
		rp.runFrame()
	}
	gpu.UpdateStats()

	dur := time.Since(startTime)
	st := gpu.Stats()
	fmt.Fprintf(output, "%d frames in %v (%.1f fps)\n",
		numFrames, dur, float64(numFrames)/dur.Seconds())
	fmt.Fprintf(output, "%d commands, %d draw calls, %d flushes, %d gpu cycles\n",
		st.CommandsInterpreted, st.DrawCalls, st.Flushes, gpu.CyclesExecuted())

	if rp.dig != nil {
		fmt.Fprintf(output, "frames hash: %s\n", rp.dig.Hash())
	}

	return nil
}

func playWindowed(output io.Writer, rec *recording, cfg ge.Config, numFrames int, memvizFile string, hash bool) error {
	// SDL window and GL context handling must happen on the same OS thread
	runtime.LockOSThread()

	err := sdl.Init(sdl.INIT_VIDEO)
	if err != nil {
		return fmt.Errorf("sdl: %w", err)
	}
	defer sdl.Quit()

	err = sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 3)
	if err != nil {
		return fmt.Errorf("sdl: %w", err)
	}
	err = sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 2)
	if err != nil {
		return fmt.Errorf("sdl: %w", err)
	}
	err = sdl.GLSetAttribute(sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG)
	if err != nil {
		return fmt.Errorf("sdl: %w", err)
	}
	err = sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	if err != nil {
		return fmt.Errorf("sdl: %w", err)
	}

	vers, _ := version.Version()
	window, err := sdl.CreateWindow(fmt.Sprintf("%s (%s)", version.ApplicationName, vers),
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		winWidth, winHeight,
		sdl.WINDOW_OPENGL|sdl.WINDOW_ALLOW_HIGHDPI)
	if err != nil {
		return fmt.Errorf("sdl: %w", err)
	}
	defer window.Destroy()

	glContext, err := window.GLCreateContext()
	if err != nil {
		return fmt.Errorf("sdl: %w", err)
	}
	defer sdl.GLDeleteContext(glContext)

	err = window.GLMakeCurrent(glContext)
	if err != nil {
		return fmt.Errorf("sdl: %w", err)
	}

	if cfg.VSync {
		err = sdl.GLSetSwapInterval(1)
		if err != nil {
			logger.Logf(logger.Allow, "sdl", "cannot set swap interval: %v", err)
		}
	}

	mem := memory.NewMem()
	glRnd, err := gles.NewRenderer(mem, winWidth, winHeight, cfg.PrescaleUV)
	if err != nil {
		return err
	}
	defer glRnd.Destroy()

	gpu := ge.NewGPU(cfg, mem, glRnd.Renderer())
	glRnd.SetState(gpu)

	rp := &replayer{mem: mem, gpu: gpu, rec: rec}
	if hash {
		rp.dig = digest.NewVideo()
	}

	if memvizFile != "" {
		err = dumpMemviz(memvizFile, gpu)
		if err != nil {
			return err
		}
	}

	gpu.InitClear()

	fr := 0
	for {
		quit := false
		for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
			switch ev := ev.(type) {
			case *sdl.QuitEvent:
				quit = true
			case *sdl.KeyboardEvent:
				if ev.Type != sdl.KEYDOWN {
					break
				}
				switch ev.Keysym.Sym {
				case sdl.K_ESCAPE:
					quit = true
				case sdl.K_F12:
					err = saveScreenshot(output)
					if err != nil {
						logger.Logf(logger.Allow, "replay", "screenshot: %v", err)
					}
				}
			}
		}
		if quit {
			break
		}

		rp.runFrame()
		gpu.UpdateStats()
		gpu.ResetFrameStats()
		window.GLSwap()

		fr++
		if numFrames > 0 && fr >= numFrames {
			break
		}
	}

	if rp.dig != nil {
		fmt.Fprintf(output, "frames hash: %s\n", rp.dig.Hash())
	}

	return nil
}

// saveScreenshot reads the output surface back and writes it to a
// timestamped PNG in the current directory.
func saveScreenshot(output io.Writer) error {
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

	img := image.NewRGBA(image.Rect(0, 0, winWidth, winHeight))
	raw := make([]uint8, winWidth*winHeight*4)
	gl.ReadPixels(0, 0, winWidth, winHeight, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(raw))

	// GL reads rows bottom to top
	for y := 0; y < winHeight; y++ {
		copy(img.Pix[y*img.Stride:], raw[(winHeight-1-y)*winWidth*4:(winHeight-y)*winWidth*4])
	}

	filename := fmt.Sprintf("%s_%s.png", version.ApplicationName, time.Now().Format("2006-01-02_15.04.05"))
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	err = png.Encode(f, img)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "screenshot: %s\n", filename)
	return nil
}

// dumpMemviz writes the object graph rooted at the GPU to file in graphviz
// dot format.
func dumpMemviz(filename string, gpu *ge.GPU) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	memviz.Map(f, gpu)
	return nil
}
