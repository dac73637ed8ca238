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

package curated_test

import (
	"fmt"
	"testing"

	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/curated"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/test"
)

const testPattern = "test error: %s"
const wrapPattern = "wrapping error: %v"

func TestIdentity(t *testing.T) {
	err := curated.Errorf(testPattern, "detail")
	test.ExpectedSuccess(t, curated.IsAny(err))
	test.ExpectedSuccess(t, curated.Is(err, testPattern))
	test.ExpectedFailure(t, curated.Is(err, wrapPattern))

	// plain errors are never curated
	plain := fmt.Errorf("plain error")
	test.ExpectedFailure(t, curated.IsAny(plain))
	test.ExpectedFailure(t, curated.Is(plain, testPattern))

	// nil is never curated
	test.ExpectedFailure(t, curated.IsAny(nil))
	test.ExpectedFailure(t, curated.Is(nil, testPattern))
}

func TestHas(t *testing.T) {
	inner := curated.Errorf(testPattern, "detail")
	outer := curated.Errorf(wrapPattern, inner)

	// Is() only matches the outermost error
	test.ExpectedSuccess(t, curated.Is(outer, wrapPattern))
	test.ExpectedFailure(t, curated.Is(outer, testPattern))

	// Has() matches anywhere in the chain
	test.ExpectedSuccess(t, curated.Has(outer, wrapPattern))
	test.ExpectedSuccess(t, curated.Has(outer, testPattern))
}

func TestNormalisation(t *testing.T) {
	// adjacent duplicate message parts are removed on formatting
	inner := curated.Errorf("segment fault: %s", "negative address")
	outer := curated.Errorf("segment fault: %v", inner)
	test.Equate(t, outer.Error(), "segment fault: negative address")
}
