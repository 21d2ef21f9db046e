// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpx

import (
	"fmt"

	"github.com/biogo/sv/align"
)

// StrandSwitch describes whether consecutive alignments of a contig keep
// or flip strand. The numeric values are used by the checkpoint format.
type StrandSwitch int8

const (
	NoSwitch         StrandSwitch = iota // Both alignments on the same strand.
	ForwardToReverse                     // Forward strand followed by reverse.
	ReverseToForward                     // Reverse strand followed by forward.
	lastSwitch
)

var strandSwitches = []string{"NO_SWITCH", "FORWARD_TO_REVERSE", "REVERSE_TO_FORWARD", "?"}

// String returns the string representation of a StrandSwitch.
func (s StrandSwitch) String() string {
	if s < 0 || s > lastSwitch {
		s = lastSwitch
	}
	return strandSwitches[s]
}

// DetermineStrandSwitch returns the StrandSwitch from one to two.
func DetermineStrandSwitch(one, two align.Alignment) StrandSwitch {
	switch {
	case one.Forward == two.Forward:
		return NoSwitch
	case one.Forward:
		return ForwardToReverse
	default:
		return ReverseToForward
	}
}

// Jump is the directional transition on the reference between two
// alignments that are neighbours on a contig.
//
// Jumps are never retracting: neighbouring alignments must not overlap on
// the contig, so homologous sequence has already been given to one of them.
type Jump struct {
	Start   align.Interval
	Landing align.Interval
	Switch  StrandSwitch
}

// NewJump returns the Jump from one to two. The alignments must not
// overlap on the contig.
func NewJump(one, two align.Alignment) (Jump, error) {
	if align.OverlapOnRead(one, two) > 0 {
		return Jump{}, fmt.Errorf("%w: %v %v", ErrReadOverlap, one, two)
	}

	j := Jump{Switch: DetermineStrandSwitch(one, two)}
	switch j.Switch {
	case NoSwitch:
		if one.Forward {
			j.Start = align.Locus(one.Ref, one.End)
			j.Landing = align.Locus(two.Ref, two.Start)
		} else {
			j.Start = align.Locus(one.Ref, one.Start)
			j.Landing = align.Locus(two.Ref, two.End)
		}
	case ForwardToReverse:
		j.Start = align.Locus(one.Ref, one.End)
		j.Landing = align.Locus(two.Ref, two.End)
	case ReverseToForward:
		j.Start = align.Locus(one.Ref, one.Start)
		j.Landing = align.Locus(two.Ref, two.Start)
	default:
		panic(fmt.Sprintf("cpx: strand switch that doesn't make sense: %v", j.Switch))
	}
	return j, nil
}

// String returns a string representation of the Jump.
func (j Jump) String() string {
	return fmt.Sprintf("Jump start: %v\tjump landing: %v\t%v", j.Start, j.Landing, j.Switch)
}

// ExtractJumps returns the jumps between each pair of neighbouring
// alignments in contig order.
func ExtractJumps(alignments []align.Alignment) ([]Jump, error) {
	if len(alignments) < 2 {
		return nil, ErrTooFewAlignments
	}
	jumps := make([]Jump, 0, len(alignments)-1)
	one := alignments[0]
	for _, two := range alignments[1:] {
		j, err := NewJump(one, two)
		if err != nil {
			return nil, err
		}
		jumps = append(jumps, j)
		one = two
	}
	return jumps, nil
}
