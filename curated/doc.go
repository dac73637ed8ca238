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

// Package curated provides the error type used throughout the project. A
// curated error is created with a pattern string and a list of values, in the
// manner of fmt.Errorf():
//
//	err := curated.Errorf("mmu: no translation for %08x", va)
//
// The pattern string is the identity of the error. Packages that need their
// errors to be identifiable by callers export the pattern as a string
// constant, and callers test for it with the Is() and Has() functions:
//
//	if curated.Is(err, faults.TranslationMiss) {
//		...
//	}
//
// Is() matches the error itself, while Has() searches the chain of wrapped
// curated errors. Messages are normalised on formatting so that wrapped
// errors do not repeat adjacent message parts.
package curated
