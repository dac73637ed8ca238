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

package test

import (
	"testing"
)

// Equate is used to test equality between one value and another. The
// expected value is converted to the type of the value being tested, which
// means a literal number can be used for the expectation without casting:
//
//	var pa uint64
//	pa = someFunction()
//	test.Equate(t, pa, 0x2000)
func Equate[T comparable](t *testing.T, value T, expectedValue T) {
	t.Helper()

	if value != expectedValue {
		t.Errorf("equation of type %T failed (%v - wanted %v)", value, value, expectedValue)
	}
}

// DemandEquality is the same as Equate() except that the test is terminated
// on failure.
func DemandEquality[T comparable](t *testing.T, value T, expectedValue T) {
	t.Helper()

	if value != expectedValue {
		t.Fatalf("equation of type %T failed (%v - wanted %v)", value, value, expectedValue)
	}
}
