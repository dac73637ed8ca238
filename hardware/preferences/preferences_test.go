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

package preferences_test

import (
	"testing"

	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/preferences"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/test"
)

func TestDefaults(t *testing.T) {
	p := preferences.NewPreferences()
	test.ExpectedSuccess(t, p.Validate())
}

func TestValidation(t *testing.T) {
	p := preferences.NewPreferences()
	p.NumCPUs = 0
	test.ExpectedFailure(t, p.Validate())

	p = preferences.NewPreferences()
	p.RAMSize = 0
	test.ExpectedFailure(t, p.Validate())

	// cache sets must be a power of two
	p = preferences.NewPreferences()
	p.L2Sets = 100
	test.ExpectedFailure(t, p.Validate())

	p = preferences.NewPreferences()
	p.BarrierTimeout = 0
	test.ExpectedFailure(t, p.Validate())
}
