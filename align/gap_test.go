// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package align

import (
	"github.com/kortschak/utter"
	"gopkg.in/check.v1"
)

func (s *S) TestSplitGaps(c *check.C) {
	for i, t := range []struct {
		in     Alignment
		minGap int
		want   []Alignment
	}{
		{
			in:     Alignment{Ref: "chr1", Start: 1000, End: 1149, Forward: true, ReadStart: 11, ReadEnd: 100, Cigar: mustCigar("10S40M60D50M"), MapQ: 60},
			minGap: 50,
			want: []Alignment{
				{Ref: "chr1", Start: 1000, End: 1039, Forward: true, ReadStart: 11, ReadEnd: 50, Cigar: mustCigar("10S40M50S"), MapQ: 60, Origin: FromSplitGappedAlignment},
				{Ref: "chr1", Start: 1100, End: 1149, Forward: true, ReadStart: 51, ReadEnd: 100, Cigar: mustCigar("50S50M"), MapQ: 60, Origin: FromSplitGappedAlignment},
			},
		},
		{
			in:     Alignment{Ref: "chr1", Start: 1000, End: 1149, Forward: false, ReadStart: 1, ReadEnd: 90, Cigar: mustCigar("10S40M60D50M"), MapQ: 60},
			minGap: 50,
			want: []Alignment{
				{Ref: "chr1", Start: 1100, End: 1149, Forward: false, ReadStart: 1, ReadEnd: 50, Cigar: mustCigar("50S50M"), MapQ: 60, Origin: FromSplitGappedAlignment},
				{Ref: "chr1", Start: 1000, End: 1039, Forward: false, ReadStart: 51, ReadEnd: 90, Cigar: mustCigar("10S40M50S"), MapQ: 60, Origin: FromSplitGappedAlignment},
			},
		},
		{
			in:     Alignment{Ref: "chr1", Start: 1, End: 40, Forward: true, ReadStart: 1, ReadEnd: 100, Cigar: mustCigar("20M60I20M")},
			minGap: 50,
			want: []Alignment{
				{Ref: "chr1", Start: 1, End: 20, Forward: true, ReadStart: 1, ReadEnd: 20, Cigar: mustCigar("20M80S"), Origin: FromSplitGappedAlignment},
				{Ref: "chr1", Start: 21, End: 40, Forward: true, ReadStart: 81, ReadEnd: 100, Cigar: mustCigar("80S20M"), Origin: FromSplitGappedAlignment},
			},
		},
		{
			in:     Alignment{Ref: "chr1", Start: 1000, End: 1149, Forward: true, ReadStart: 11, ReadEnd: 100, Cigar: mustCigar("10S40M60D50M")},
			minGap: 61,
			want: []Alignment{
				{Ref: "chr1", Start: 1000, End: 1149, Forward: true, ReadStart: 11, ReadEnd: 100, Cigar: mustCigar("10S40M60D50M")},
			},
		},
		{
			in:     Alignment{Ref: "chr1", Start: 1000, End: 1149, Forward: true, ReadStart: 11, ReadEnd: 100, Cigar: mustCigar("10S40M60D50M")},
			minGap: 0,
			want: []Alignment{
				{Ref: "chr1", Start: 1000, End: 1149, Forward: true, ReadStart: 11, ReadEnd: 100, Cigar: mustCigar("10S40M60D50M")},
			},
		},
	} {
		got := SplitGaps(t.in, t.minGap)
		c.Check(got, check.DeepEquals, t.want, check.Commentf("test %d\n%s", i, utter.Sdump(got)))
	}
}

func (s *S) TestSplitContigGaps(c *check.C) {
	contig := Contig{
		Name: "tig00001",
		Alignments: []Alignment{
			{Ref: "chr1", Start: 1000, End: 1149, Forward: false, ReadStart: 1, ReadEnd: 90, Cigar: mustCigar("10S40M60D50M")},
			{Ref: "chr2", Start: 500, End: 509, Forward: true, ReadStart: 91, ReadEnd: 100, Cigar: mustCigar("90S10M")},
		},
	}
	got := SplitContigGaps(contig, 50)
	c.Assert(got.Alignments, check.HasLen, 3)
	for i, want := range []struct {
		readStart int
		ref       string
		origin    ModType
	}{
		{1, "chr1", FromSplitGappedAlignment},
		{51, "chr1", FromSplitGappedAlignment},
		{91, "chr2", Unmodified},
	} {
		c.Check(got.Alignments[i].ReadStart, check.Equals, want.readStart)
		c.Check(got.Alignments[i].Ref, check.Equals, want.ref)
		c.Check(got.Alignments[i].Origin, check.Equals, want.origin)
	}
	c.Check(SplitContigGaps(contig, 0), check.DeepEquals, contig)
}
