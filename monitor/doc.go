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

// Package monitor is the interactive inspection tool for the emulated
// machine. It connects a terminal implementation (see the terminal
// sub-package) to the debugging surfaces of the memory system: translation
// buffer entries, cache lines and their coherency states, load-locked
// reservations, CPU topology and physical memory via peek and poke.
//
// Type HELP at the monitor prompt for the command list.
package monitor
