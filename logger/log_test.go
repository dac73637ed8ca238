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

package logger_test

import (
	"strings"
	"testing"

	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/logger"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/test"
)

func TestLog(t *testing.T) {
	logger.Clear()

	w, err := test.NewCappedWriter(1024)
	test.DemandSuccess(t, err)

	logger.Log(logger.Allow, "test", "hello")
	logger.Write(w)
	test.Equate(t, w.String(), "test: hello\n")

	// identical entries are folded with a repeat count
	w.Reset()
	logger.Log(logger.Allow, "test", "hello")
	logger.Write(w)
	test.Equate(t, w.String(), "test: hello (repeat x2)\n")
}

func TestTail(t *testing.T) {
	logger.Clear()

	logger.Logf(logger.Allow, "test", "entry %d", 1)
	logger.Logf(logger.Allow, "test", "entry %d", 2)
	logger.Logf(logger.Allow, "test", "entry %d", 3)

	w, err := test.NewCappedWriter(1024)
	test.DemandSuccess(t, err)

	logger.Tail(w, 2)
	lines := strings.Split(strings.TrimSpace(w.String()), "\n")
	test.Equate(t, len(lines), 2)
	test.Equate(t, lines[0], "test: entry 2")
	test.Equate(t, lines[1], "test: entry 3")
}

type deny struct{}

func (_ deny) AllowLogging() bool {
	return false
}

func TestPermission(t *testing.T) {
	logger.Clear()

	logger.Log(deny{}, "test", "should not appear")

	w, err := test.NewCappedWriter(1024)
	test.DemandSuccess(t, err)

	logger.Write(w)
	test.Equate(t, w.String(), "")
}
