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

package mmu_test

import (
	"testing"

	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/curated"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/bus"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/faults"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/hardware/memory/mmu"
	"github.com/timothyPeer/ASA-EMulatR-Project-sub005/test"
)

func TestTranslate(t *testing.T) {
	tu := mmu.NewTranslationUnit("test tb", 8)

	tu.InstallEntry(mmu.Entry{
		VirtualPage:  0x4000,
		PhysicalPage: 0x2000,
		ASN:          1,
		Flags:        mmu.KRE | mmu.KWE,
	})

	// offset into the page is preserved
	pa, err := tu.Translate(0x4008, 1, bus.Kernel, false, false)
	test.DemandSuccess(t, err)
	test.Equate(t, pa, 0x2008)

	// a missing translation is a miss, not a violation
	_, err = tu.Translate(0x8000, 1, bus.Kernel, false, false)
	test.ExpectedFailure(t, err)
	test.Equate(t, curated.Is(err, faults.TranslationMiss), true)
}

func TestASNIsolation(t *testing.T) {
	tu := mmu.NewTranslationUnit("test tb", 8)

	tu.InstallEntry(mmu.Entry{
		VirtualPage:  0x4000,
		PhysicalPage: 0x2000,
		ASN:          1,
		Flags:        mmu.KRE,
	})
	tu.InstallEntry(mmu.Entry{
		VirtualPage:  0x4000,
		PhysicalPage: 0x6000,
		ASN:          2,
		Flags:        mmu.KRE,
	})

	// the same virtual page resolves differently under each ASN
	pa, err := tu.Translate(0x4000, 1, bus.Kernel, false, false)
	test.DemandSuccess(t, err)
	test.Equate(t, pa, 0x2000)

	pa, err = tu.Translate(0x4000, 2, bus.Kernel, false, false)
	test.DemandSuccess(t, err)
	test.Equate(t, pa, 0x6000)

	// an ASN with no entry misses
	_, err = tu.Translate(0x4000, 3, bus.Kernel, false, false)
	test.Equate(t, curated.Is(err, faults.TranslationMiss), true)
}

func TestGlobalEntries(t *testing.T) {
	tu := mmu.NewTranslationUnit("test tb", 8)

	tu.InstallEntry(mmu.Entry{
		VirtualPage:  0x2000,
		PhysicalPage: 0x2000,
		Flags:        mmu.KRE,
		Global:       true,
	})

	// a global entry matches any ASN
	for _, asn := range []uint8{0, 1, 200} {
		pa, err := tu.Translate(0x2000, asn, bus.Kernel, false, false)
		test.DemandSuccess(t, err)
		test.Equate(t, pa, 0x2000)
	}

	// by-ASN invalidation spares global entries
	tu.Invalidate(mmu.ScopeASN(1))
	_, err := tu.Translate(0x2000, 1, bus.Kernel, false, false)
	test.ExpectedSuccess(t, err)

	// a global flush does not
	tu.Invalidate(mmu.ScopeAll())
	_, err = tu.Translate(0x2000, 1, bus.Kernel, false, false)
	test.Equate(t, curated.Is(err, faults.TranslationMiss), true)
}

func TestProtection(t *testing.T) {
	tu := mmu.NewTranslationUnit("test tb", 8)

	// kernel read/write, user read only
	tu.InstallEntry(mmu.Entry{
		VirtualPage:  0x2000,
		PhysicalPage: 0x2000,
		ASN:          1,
		Flags:        mmu.KRE | mmu.KWE | mmu.URE,
	})

	_, err := tu.Translate(0x2000, 1, bus.Kernel, true, false)
	test.ExpectedSuccess(t, err)

	_, err = tu.Translate(0x2000, 1, bus.User, false, false)
	test.ExpectedSuccess(t, err)

	// a user write is a violation, not a miss. a violation is never retried
	_, err = tu.Translate(0x2000, 1, bus.User, true, false)
	test.Equate(t, curated.Is(err, faults.AccessViolation), true)
	test.Equate(t, curated.Is(err, faults.TranslationMiss), false)
}

func TestFaultOnExecute(t *testing.T) {
	tu := mmu.NewTranslationUnit("test tb", 8)

	tu.InstallEntry(mmu.Entry{
		VirtualPage:  0x2000,
		PhysicalPage: 0x2000,
		ASN:          1,
		Flags:        mmu.KRE | mmu.FOE,
	})

	// data reads succeed
	_, err := tu.Translate(0x2000, 1, bus.Kernel, false, false)
	test.ExpectedSuccess(t, err)

	// instruction fetches fault
	_, err = tu.Translate(0x2000, 1, bus.Kernel, false, true)
	test.Equate(t, curated.Is(err, faults.AccessViolation), true)
}

func TestInvalidateAddress(t *testing.T) {
	tu := mmu.NewTranslationUnit("test tb", 8)

	tu.InstallEntry(mmu.Entry{
		VirtualPage:  0x2000,
		PhysicalPage: 0x2000,
		ASN:          1,
		Flags:        mmu.KRE,
	})
	tu.InstallEntry(mmu.Entry{
		VirtualPage:  0x2000,
		PhysicalPage: 0x4000,
		ASN:          2,
		Flags:        mmu.KRE,
	})
	tu.InstallEntry(mmu.Entry{
		VirtualPage:  0x4000,
		PhysicalPage: 0x6000,
		ASN:          1,
		Flags:        mmu.KRE,
	})

	// single-address invalidation removes the page for every ASN
	tu.Invalidate(mmu.ScopeAddress(0x2008))

	_, err := tu.Translate(0x2000, 1, bus.Kernel, false, false)
	test.Equate(t, curated.Is(err, faults.TranslationMiss), true)
	_, err = tu.Translate(0x2000, 2, bus.Kernel, false, false)
	test.Equate(t, curated.Is(err, faults.TranslationMiss), true)

	// other pages are untouched
	_, err = tu.Translate(0x4000, 1, bus.Kernel, false, false)
	test.ExpectedSuccess(t, err)
}

func TestReplaceOnUpdate(t *testing.T) {
	tu := mmu.NewTranslationUnit("test tb", 8)

	tu.InstallEntry(mmu.Entry{
		VirtualPage:  0x2000,
		PhysicalPage: 0x2000,
		ASN:          1,
		Flags:        mmu.KRE,
	})
	tu.InstallEntry(mmu.Entry{
		VirtualPage:  0x2000,
		PhysicalPage: 0x8000,
		ASN:          1,
		Flags:        mmu.KRE,
	})

	// the second install replaced the first. there is exactly one entry
	test.DemandEquality(t, len(tu.Entries()), 1)

	pa, err := tu.Translate(0x2000, 1, bus.Kernel, false, false)
	test.DemandSuccess(t, err)
	test.Equate(t, pa, 0x8000)
}

func TestCapacityEviction(t *testing.T) {
	tu := mmu.NewTranslationUnit("test tb", 4)

	for i := uint64(0); i < 6; i++ {
		tu.InstallEntry(mmu.Entry{
			VirtualPage:  i * 0x2000,
			PhysicalPage: i * 0x2000,
			ASN:          1,
			Flags:        mmu.KRE,
		})
	}

	// the table never grows beyond its capacity
	test.Equate(t, len(tu.Entries()), 4)

	// the most recent install is always present
	_, err := tu.Translate(5*0x2000, 1, bus.Kernel, false, false)
	test.ExpectedSuccess(t, err)
}
