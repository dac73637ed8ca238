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

// Package reservation implements the machine-wide table of load-locked
// reservations underpinning the LL/SC atomic primitive.
//
// Granularity is the 16 byte aligned block defined in the memorymap
// package. A store-conditional succeeds if, and only if, the issuing CPU's
// reservation is still valid for the block containing the store address.
// The tracker never raises errors: an invalid or mismatched reservation
// simply makes the store-conditional report failure, which is
// architecturally defined behaviour.
package reservation
