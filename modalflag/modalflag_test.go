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

package modalflag_test

import (
	"testing"

	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/modalflag"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/test"
)

func TestDefaultSubMode(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{})
	md.AddSubModes("RUN", "MONITOR")

	r, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, r, modalflag.ParseContinue)
	test.Equate(t, md.Mode(), "RUN")
}

func TestNamedSubMode(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"monitor"})
	md.AddSubModes("RUN", "MONITOR")

	r, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, r, modalflag.ParseContinue)

	// sub-mode selection is case insensitive
	test.Equate(t, md.Mode(), "MONITOR")
}

func TestModeFlags(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"run", "-cpus", "4", "image.bin"})
	md.AddSubModes("RUN", "MONITOR")

	_, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, md.Mode(), "RUN")

	md.NewMode()
	cpus := md.AddInt("cpus", 2, "number of emulated CPUs")

	r, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, r, modalflag.ParseContinue)
	test.Equate(t, *cpus, 4)
	test.Equate(t, md.GetArg(0), "image.bin")
}

func TestUnknownFlag(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-no-such-flag"})

	r, err := md.Parse()
	test.ExpectedFailure(t, err)
	test.Equate(t, r, modalflag.ParseError)
}

func TestPath(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"run", "sub"})
	md.AddSubModes("RUN")
	_, err := md.Parse()
	test.ExpectedSuccess(t, err)

	md.NewMode()
	md.AddSubModes("SUB", "OTHER")
	_, err = md.Parse()
	test.ExpectedSuccess(t, err)

	test.Equate(t, md.Path(), "RUN/SUB")
}
