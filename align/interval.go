// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package align

import "fmt"

// Interval is a closed 1-based interval on a named reference sequence.
// A single base locus has Start == End.
type Interval struct {
	Ref        string
	Start, End int
}

// Locus returns the single base Interval at pos on ref.
func Locus(ref string, pos int) Interval {
	return Interval{Ref: ref, Start: pos, End: pos}
}

// Len returns the number of bases covered by the interval.
func (iv Interval) Len() int {
	return iv.End - iv.Start + 1
}

// Overlaps returns whether iv and other share at least one base.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Ref == other.Ref && iv.Start <= other.End && other.Start <= iv.End
}

// Intersect returns the bases shared by iv and other. The
// returned interval is only meaningful if iv.Overlaps(other).
func (iv Interval) Intersect(other Interval) Interval {
	return Interval{
		Ref:   iv.Ref,
		Start: max(iv.Start, other.Start),
		End:   min(iv.End, other.End),
	}
}

// String returns the interval in ref:start-end notation.
func (iv Interval) String() string {
	return fmt.Sprintf("%s:%d-%d", iv.Ref, iv.Start, iv.End)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a < b {
		return b
	}
	return a
}
