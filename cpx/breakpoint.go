// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpx

import "github.com/biogo/sv/align"

// SelectBreakpoints returns the distinct jump starts and landings on the
// primary chromosome that lie strictly between alpha and omega, sorted
// in the reference order of d.
func SelectBreakpoints(jumps []Jump, info BasicInfo, d *align.Dictionary) []align.Interval {
	var (
		locs []align.Interval
		seen = make(map[align.Interval]bool)
	)
	for _, j := range jumps {
		for _, loc := range [...]align.Interval{j.Start, j.Landing} {
			if loc.Ref != info.PrimaryChromosome || seen[loc] {
				continue
			}
			if d.Compare(loc, info.Alpha) > 0 && d.Compare(loc, info.Omega) < 0 {
				seen[loc] = true
				locs = append(locs, loc)
			}
		}
	}
	d.Sort(locs)
	return locs
}
