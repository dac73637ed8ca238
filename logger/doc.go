// This file is part of EMulatR.
//
// EMulatR is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// EMulatR is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with EMulatR.  If not, see <https://www.gnu.org/licenses/>.

// Package logger is the central log for the entire application. There is
// only ever one log and it can be accessed through the package level
// functions.
//
// Entries are submitted with a tag and a detail string:
//
//	logger.Logf(logger.Allow, "smp", "cpu %d registered", id)
//
// The tag groups entries by subsystem. Repeated identical entries are
// folded into a single entry with a repeat count. Log output can be echoed
// to an io.Writer as it arrives with SetEcho(), which is useful for
// command-line operation of the emulator.
package logger
