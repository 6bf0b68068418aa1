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
	"github.com/hakea/gopherge/logger"
	"github.com/hakea/gopherge/render"
)

// Run interprets the display list until its downcount reaches zero or an
// end command is reached. Must be called on the render thread; pending
// events are serviced before the first command and between commands.
func (gpu *GPU) Run(list *render.DisplayList) {
	gpu.ProcessEvents()

	gpu.list = list
	for ; list.Downcount > 0; list.Downcount-- {
		op := gpu.mem.Read32(list.PC)
		cmd := Command(op >> 24)

		flags := gpu.flags[cmd]
		diff := op ^ gpu.mirror[cmd]

		if flags&FlagFlushBefore != 0 || (diff != 0 && flags&FlagFlushBeforeOnChange != 0) {
			gpu.flushDraw()
		}

		gpu.mirror[cmd] = op

		if flags&(FlagExecute|FlagExecuteOnChange) != 0 {
			gpu.executeOp(op, diff)
		}

		list.PC += 4
		gpu.stats.CommandsInterpreted++

		if list.Ended {
			break
		}

		if len(gpu.events) > 0 {
			gpu.ProcessEvents()
		}
	}
	gpu.list = nil
}

// control flow handlers. each runs before the loop's own pc advance so
// jump targets are stored minus one command word.

func (gpu *GPU) opJump(data uint32) {
	target := gpu.relativeAddr(data) &^ 3
	gpu.list.PC = target - 4
}

func (gpu *GPU) opBJump(data uint32) {
	// jump only when the bounding box failed the visibility test
	if !gpu.list.BBoxResult {
		gpu.opJump(data)
	}
}

func (gpu *GPU) opCall(data uint32) {
	if gpu.list.StackPtr >= render.CallStackDepth {
		logger.Log(logger.Allow, "ge", "display list call stack overflow")
		return
	}
	gpu.list.Stack[gpu.list.StackPtr] = gpu.list.PC + 4
	gpu.list.StackPtr++
	target := gpu.relativeAddr(data) &^ 3
	gpu.list.PC = target - 4
}

func (gpu *GPU) opRet(data uint32) {
	if gpu.list.StackPtr == 0 {
		logger.Log(logger.Allow, "ge", "display list return with empty stack")
		return
	}
	gpu.list.StackPtr--
	gpu.list.PC = (gpu.list.Stack[gpu.list.StackPtr] & 0x0fffffff) - 4
}

func (gpu *GPU) opEnd() {
	// the word before the end command says why the list ended
	prev := gpu.mem.Read32(gpu.list.PC - 4)
	switch Command(prev >> 24) {
	case CmdSignal:
		gpu.list.Signal = prev & 0x00ffffff
	case CmdFinish:
		gpu.list.Finish = prev & 0x00ffffff
	}
	gpu.list.Ended = true
	gpu.list.Downcount = 0
}
