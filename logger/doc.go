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

// Package logger is the central log for the project. There is no provision
// for individual loggers; a single log is enough for an emulator.
//
// Consecutive identical entries are coalesced into one entry with a repeat
// count. The command interpreter leans on this: a guest program that feeds a
// bad vertex address into every draw of a frame produces one log line, not
// thousands.
package logger
