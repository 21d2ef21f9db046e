// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package align

import (
	"errors"
	"fmt"

	"github.com/biogo/hts/sam"
)

var (
	// ErrContained is returned by RemoveOverlap when one of the
	// alignments lies entirely within the other on the contig.
	ErrContained = errors.New("align: alignment contained on read")

	// ErrReadOrder is returned when a pair of alignments is not
	// in contig order.
	ErrReadOrder = errors.New("align: alignments not in read order")

	errClipAll = errors.New("align: clip removes all aligned bases")
)

// RemoveOverlap returns one and two modified so that they share no contig
// bases. The bases aligned by both are given to the alignment whose
// reference span sorts first in d; the other alignment yields them and is
// clipped at the end adjacent to its neighbour. Pairs that do not overlap
// are returned unaltered.
//
// one must precede two on the contig, and neither may be contained
// within the other.
func RemoveOverlap(one, two Alignment, d *Dictionary) (Alignment, Alignment, error) {
	if one.ReadStart > two.ReadStart {
		return one, two, ErrReadOrder
	}
	overlap := OverlapOnRead(one, two)
	if overlap == 0 {
		return one, two, nil
	}
	if overlap >= one.ReadSpan() || overlap >= two.ReadSpan() {
		return one, two, fmt.Errorf("%w: %v %v", ErrContained, one, two)
	}

	var err error
	if d.Compare(one.Span(), two.Span()) > 0 {
		one, err = Clip(one, overlap, true)
	} else {
		two, err = Clip(two, overlap, false)
	}
	return one, two, err
}

// Clip returns a with n contig bases removed from its read end if atEnd is
// true, or from its read start otherwise. The reference span is adjusted
// by the reference bases the removed part of the CIGAR consumed, and the
// removed bases become soft clips. Insertions left dangling at the new
// alignment boundary are clipped as well, so more than n bases may be
// removed.
func Clip(a Alignment, n int, atEnd bool) (Alignment, error) {
	if n <= 0 {
		return a, nil
	}
	cigar := a.Cigar
	if len(cigar) == 0 {
		cigar = sam.Cigar{sam.NewCigarOp(sam.CigarMatch, a.ReadSpan())}
	}
	lead, core, trail := splitClips(cigar)

	// Read end of a reverse strand alignment is
	// the left end of the CIGAR and vice versa.
	left := atEnd != a.Forward
	if !left {
		core = reverse(core)
	}
	core, ref, query, err := trim(core, n)
	if err != nil {
		return a, fmt.Errorf("%w: %v clipped by %d", err, a, n)
	}
	if left {
		lead = addSoftClip(lead, query, true)
		a.Start += ref
	} else {
		core = reverse(core)
		trail = addSoftClip(trail, query, false)
		a.End -= ref
	}
	if atEnd {
		a.ReadEnd -= query
	} else {
		a.ReadStart += query
	}

	c := make(sam.Cigar, 0, len(lead)+len(core)+len(trail))
	c = append(c, lead...)
	c = append(c, core...)
	a.Cigar = append(c, trail...)
	a.Origin = UnderwentClip
	return a, nil
}

// trim removes n query bases from the left of core, returning the
// remaining operations and the reference and query bases removed.
func trim(core []sam.CigarOp, n int) (rest []sam.CigarOp, ref, query int, err error) {
	i := 0
	for ; i < len(core) && query < n; i++ {
		co := core[i]
		con := co.Type().Consumes()
		if con.Query == 0 {
			ref += co.Len() * con.Reference
			continue
		}
		l := co.Len()
		if query+l > n {
			k := n - query
			query += k
			ref += k * con.Reference
			rest = append(rest, sam.NewCigarOp(co.Type(), l-k))
			i++
			break
		}
		query += l
		ref += l * con.Reference
	}
	if query < n {
		return nil, 0, 0, errClipAll
	}
	rest = append(rest, core[i:]...)

	// An alignment must begin with a base aligned to the reference.
	for len(rest) != 0 {
		co := rest[0]
		con := co.Type().Consumes()
		if con.Query != 0 && con.Reference != 0 {
			break
		}
		ref += co.Len() * con.Reference
		query += co.Len() * con.Query
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return nil, 0, 0, errClipAll
	}
	return rest, ref, query, nil
}

// splitClips returns the leading clips, the aligned operations and
// the trailing clips of c.
func splitClips(c sam.Cigar) (lead, core, trail []sam.CigarOp) {
	i := 0
	for i < len(c) && isClip(c[i]) {
		i++
	}
	j := len(c)
	for j > i && isClip(c[j-1]) {
		j--
	}
	lead = append([]sam.CigarOp(nil), c[:i]...)
	core = append([]sam.CigarOp(nil), c[i:j]...)
	trail = append([]sam.CigarOp(nil), c[j:]...)
	return lead, core, trail
}

func isClip(co sam.CigarOp) bool {
	t := co.Type()
	return t == sam.CigarSoftClipped || t == sam.CigarHardClipped
}

// addSoftClip adds n soft clipped bases to the clip operations in clips,
// keeping hard clips outermost. The clips are at the left of the CIGAR
// if left is true.
func addSoftClip(clips []sam.CigarOp, n int, left bool) []sam.CigarOp {
	if n == 0 {
		return clips
	}
	var hard, soft int
	for _, co := range clips {
		switch co.Type() {
		case sam.CigarHardClipped:
			hard += co.Len()
		case sam.CigarSoftClipped:
			soft += co.Len()
		}
	}
	soft += n
	c := make([]sam.CigarOp, 0, 2)
	if hard != 0 && left {
		c = append(c, sam.NewCigarOp(sam.CigarHardClipped, hard))
	}
	c = append(c, sam.NewCigarOp(sam.CigarSoftClipped, soft))
	if hard != 0 && !left {
		c = append(c, sam.NewCigarOp(sam.CigarHardClipped, hard))
	}
	return c
}

func reverse(c []sam.CigarOp) []sam.CigarOp {
	r := make([]sam.CigarOp, len(c))
	for i, co := range c {
		r[len(c)-1-i] = co
	}
	return r
}
