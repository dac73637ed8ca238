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

package memorymap

// The emulated architecture is little-endian. ReadValue and WriteValue are
// the single definition of the byte order, used by the cache hierarchy and
// by the memory system for RAM access.

// ReadValue decodes a little-endian value of the given width from the start
// of the slice.
func ReadValue(b []byte, width int) uint64 {
	var v uint64
	for i := 0; i < width; i++ {
		v |= uint64(b[i]) << (8 * i)
	}
	return v
}

// WriteValue encodes a little-endian value of the given width to the start
// of the slice.
func WriteValue(b []byte, value uint64, width int) {
	for i := 0; i < width; i++ {
		b[i] = byte(value >> (8 * i))
	}
}
