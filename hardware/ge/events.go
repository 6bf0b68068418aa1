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

package ge

import (
	"github.com/hakea/gopherge/render"
)

// maximum number of events the CPU thread can post before it blocks
// waiting for the render thread to drain
const maxPendingEvents = 64

// EventType identifies an entry on the cross-thread event queue.
type EventType int

// List of valid EventType values.
const (
	EventInitClear EventType = iota
	EventBeginFrame
	EventCopyDisplayToOutput
	EventInvalidateCache
	EventSync
)

// Event is a tagged record posted by the CPU thread and serviced on the
// render thread. Addr, Size and Kind are meaningful only for
// EventInvalidateCache; Done only for EventSync.
type Event struct {
	Type EventType
	Addr uint32
	Size int
	Kind render.InvalidationKind

	// closed by the render thread when the sync event is reached
	Done chan struct{}
}

// scheduleEvent posts an event for the render thread. Without a separate
// CPU thread there is nothing to defer to and the event runs immediately.
func (gpu *GPU) scheduleEvent(ev Event) {
	if !gpu.cfg.SeparateCPUThread {
		gpu.processEvent(ev)
		return
	}
	gpu.events <- ev
}

// ProcessEvents services every event currently on the queue. Called on the
// render thread between display list runs, and by Run between commands.
func (gpu *GPU) ProcessEvents() {
	for {
		select {
		case ev := <-gpu.events:
			gpu.processEvent(ev)
		default:
			return
		}
	}
}

// SyncThread blocks until the render thread has drained the queue up to
// this point. A no-op without a separate CPU thread.
func (gpu *GPU) SyncThread() {
	if !gpu.cfg.SeparateCPUThread {
		return
	}
	done := make(chan struct{})
	gpu.events <- Event{Type: EventSync, Done: done}
	<-done
}

func (gpu *GPU) processEvent(ev Event) {
	switch ev.Type {
	case EventInitClear:
		gpu.initClear()
	case EventBeginFrame:
		gpu.beginFrame()
	case EventCopyDisplayToOutput:
		gpu.copyDisplayToOutput()
	case EventInvalidateCache:
		gpu.invalidateCache(ev.Addr, ev.Size, ev.Kind)
	case EventSync:
		close(ev.Done)
	}
}

// InitClear prepares the output surface for the first frame.
func (gpu *GPU) InitClear() {
	gpu.scheduleEvent(Event{Type: EventInitClear})
}

func (gpu *GPU) initClear() {
	gpu.rend.Framebuf.InitClear(gpu.cfg.NonBufferedRendering,
		gpu.cfg.OutputWidth, gpu.cfg.OutputHeight)
}

// BeginFrame starts per-frame housekeeping in every subsystem.
func (gpu *GPU) BeginFrame() {
	gpu.scheduleEvent(Event{Type: EventBeginFrame})
}

func (gpu *GPU) beginFrame() {
	gpu.rend.Texture.StartFrame()
	gpu.rend.Draw.DecimateTrackedVertexArrays()
	gpu.rend.Shader.DirtyShader()
	gpu.rend.Shader.DirtyUniform(render.UniformAll)
	gpu.rend.Framebuf.BeginFrame()
}

// CopyDisplayToOutput presents the displayed framebuffer and ends the
// frame.
func (gpu *GPU) CopyDisplayToOutput() {
	gpu.scheduleEvent(Event{Type: EventCopyDisplayToOutput})
}

func (gpu *GPU) copyDisplayToOutput() {
	gpu.rend.Draw.Flush()
	gpu.rend.Framebuf.CopyDisplayToOutput()
	gpu.rend.Framebuf.EndFrame()
	gpu.rend.Shader.DirtyLastShader()
	gpu.textureChanged = true
}

// InvalidateCache marks a guest address range stale in the texture cache
// and, unless the invalidation covers everything, asks the framebuffer
// manager to re-read the range.
func (gpu *GPU) InvalidateCache(addr uint32, size int, kind render.InvalidationKind) {
	gpu.scheduleEvent(Event{
		Type: EventInvalidateCache,
		Addr: addr,
		Size: size,
		Kind: kind,
	})
}

func (gpu *GPU) invalidateCache(addr uint32, size int, kind render.InvalidationKind) {
	if size > 0 {
		gpu.rend.Texture.Invalidate(addr, size, kind)
	} else {
		gpu.rend.Texture.InvalidateAll(kind)
	}

	if kind != render.InvalidateAll {
		gpu.rend.Framebuf.UpdateFromMemory(addr, size, kind == render.InvalidateSafe)
	}
}

// UpdateMemory reports a guest memory copy performed outside the GE. The
// destination is invalidated and a VRAM to RAM copy is tracked as a
// framebuffer readback.
func (gpu *GPU) UpdateMemory(dest uint32, src uint32, size int) {
	gpu.InvalidateCache(dest, size, render.InvalidateHint)

	if gpu.mem.InVRAM(src) && gpu.mem.InRAM(dest) {
		gpu.rend.Framebuf.NotifyFramebufferCopy(src, dest, size)
	}
}

// DeviceLost drops every GL-backed cache. Must be called on the render
// thread; the underlying objects are assumed already gone.
func (gpu *GPU) DeviceLost() {
	gpu.rend.Shader.ClearCache(false)
	gpu.rend.Texture.Clear(false)
	gpu.rend.Framebuf.DeviceLost()
}

// ClearCacheNextFrame defers a full texture cache clear to the next
// BeginFrame.
func (gpu *GPU) ClearCacheNextFrame() {
	gpu.rend.Texture.ClearNextFrame()
}

// ClearShaderCache drops and deletes every cached program.
func (gpu *GPU) ClearShaderCache() {
	gpu.rend.Shader.ClearCache(true)
}

// Resized reports that the output surface changed size.
func (gpu *GPU) Resized() {
	gpu.rend.Framebuf.Resized()
}

// GetFramebufferList returns a description of every live virtual
// framebuffer.
func (gpu *GPU) GetFramebufferList() []render.FramebufferInfo {
	return gpu.rend.Framebuf.GetFramebufferList()
}
