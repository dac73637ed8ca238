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

// Package bus defines the bus concepts of the memory subsystem. For an
// explanation of how the buses relate to one another see the memory package
// documentation.
//
// Instruction execution and trap dispatch consume the CPUBus. Device models
// implement the DeviceBus and receive accesses that fall in their MMIO
// window. The cache hierarchy drains to and fills from a CacheFiller. The
// monitor uses the DebugBus.
package bus
