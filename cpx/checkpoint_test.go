// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpx

import (
	"bytes"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/biogo/hts/bgzf"
	"github.com/biogo/hts/sam"
	"github.com/kortschak/utter"
	"gopkg.in/check.v1"

	"github.com/biogo/sv/align"
)

func annotated(c *check.C) []*AnnotatedContig {
	d := mustDict("chr1", "chr2")
	var contigs []*AnnotatedContig
	for _, t := range []align.Contig{
		{
			Name: "tig00001",
			Seq:  bytes.Repeat([]byte("ACGTN"), 61),
			Alignments: []align.Alignment{
				aln("chr1", 100, 200, true, 1),
				aln("chr1", 300, 400, false, 102),
				aln("chr1", 500, 600, true, 203),
			},
		},
		{
			Name: "tig00002",
			Alignments: []align.Alignment{
				{Ref: "chr1", Start: 100, End: 199, Forward: true, ReadStart: 1, ReadEnd: 100, Cigar: mustCigar("100M100S"), MapQ: 60, Mismatches: 4},
				{Ref: "chr2", Start: 500, End: 609, Forward: true, ReadStart: 91, ReadEnd: 200, Cigar: mustCigar("90S110M"), MapQ: 13},
				{Ref: "chr1", Start: 800, End: 899, Forward: true, ReadStart: 201, ReadEnd: 300, Cigar: mustCigar("200H100M")},
			},
		},
		{
			// No breakpoints.
			Name: "tig00003",
			Alignments: []align.Alignment{
				aln("chr1", 500, 600, true, 1),
				aln("chr1", 100, 200, true, 102),
			},
		},
	} {
		a, err := Annotate(t, d)
		c.Assert(err, check.Equals, nil)
		contigs = append(contigs, a)
	}
	return contigs
}

func (s *S) TestCheckpointRoundTrip(c *check.C) {
	for _, a := range annotated(c) {
		b, err := a.MarshalBinary()
		c.Assert(err, check.Equals, nil)
		c.Check(b[0], check.Equals, byte(CheckpointVersion))

		var got AnnotatedContig
		err = got.UnmarshalBinary(b)
		c.Assert(err, check.Equals, nil)
		c.Check(&got, check.DeepEquals, a, check.Commentf("%s", utter.Sdump(got)))

		seg, err := Segment(a)
		gotSeg, gotErr := Segment(&got)
		c.Check(gotSeg, check.DeepEquals, seg)
		c.Check(gotErr == nil, check.Equals, err == nil)
	}
}

func (s *S) TestCheckpointEmptySlices(c *check.C) {
	a := &AnnotatedContig{
		contig: align.Contig{
			Name: "tig",
			Seq:  []byte{},
			Alignments: []align.Alignment{
				{Ref: "chr1", Cigar: sam.Cigar{}},
				{Ref: "chr1"},
			},
		},
		jumps: []Jump{},
	}
	b, err := a.MarshalBinary()
	c.Assert(err, check.Equals, nil)

	var got AnnotatedContig
	err = got.UnmarshalBinary(b)
	c.Assert(err, check.Equals, nil)
	c.Check(&got, check.DeepEquals, a, check.Commentf("%s", utter.Sdump(got)))
	c.Check(got.contig.Seq, check.NotNil)
	c.Check(got.contig.Alignments[0].Cigar, check.NotNil)
	c.Check(got.contig.Alignments[1].Cigar, check.IsNil)
	c.Check(got.jumps, check.NotNil)
	c.Check(got.breakpoints, check.IsNil)
}

func (s *S) TestCheckpointLengthRange(c *check.C) {
	for _, t := range []struct {
		n     int64
		isNil bool
		want  []byte
		err   string
	}{
		{n: 0, isNil: true, want: []byte{0xff, 0xff, 0xff, 0xff}},
		{n: 0, want: []byte{0, 0, 0, 0}},
		{n: math.MaxInt32, want: []byte{0xff, 0xff, 0xff, 0x7f}},
		{n: math.MaxInt32 + 1, err: "cpx: value out of range: 2147483648"},
	} {
		var buf bytes.Buffer
		wb := errWriter{w: &buf}
		bin := binaryWriter{w: &wb}
		bin.writeLen(int(t.n), t.isNil)
		if t.err != "" {
			c.Check(wb.err, check.ErrorMatches, t.err)
			c.Check(buf.Len(), check.Equals, 0)
			continue
		}
		c.Check(wb.err, check.Equals, nil)
		c.Check(buf.Bytes(), check.DeepEquals, t.want)
	}
}

func (s *S) TestCheckpointMalformed(c *check.C) {
	a := annotated(c)[1]
	b, err := a.MarshalBinary()
	c.Assert(err, check.Equals, nil)

	for _, t := range []struct {
		name string
		data []byte
		want error
	}{
		{name: "empty", data: nil, want: ErrMalformedCheckpoint},
		{name: "truncated", data: b[:len(b)-1], want: ErrMalformedCheckpoint},
		{name: "header only", data: b[:3], want: ErrMalformedCheckpoint},
		{name: "trailing", data: append(append([]byte(nil), b...), 0), want: ErrMalformedCheckpoint},
		{name: "version", data: append([]byte{CheckpointVersion + 1}, b[1:]...), want: ErrCheckpointVersion},
		{name: "huge count", data: []byte{CheckpointVersion, 0xff, 0xff, 0xff, 0x7f}, want: ErrMalformedCheckpoint},
		{name: "negative count", data: []byte{CheckpointVersion, 0xff, 0xff, 0xff, 0xff}, want: ErrMalformedCheckpoint},
	} {
		got := AnnotatedContig{info: BasicInfo{PrimaryChromosome: "sentinel"}}
		err := got.UnmarshalBinary(t.data)
		c.Check(errors.Is(err, t.want), check.Equals, true, check.Commentf("%s: %v", t.name, err))
		c.Check(got.info.PrimaryChromosome, check.Equals, "sentinel", check.Commentf("%s: receiver altered", t.name))
	}

	bad := *a
	bad.jumps = append([]Jump(nil), a.jumps...)
	bad.jumps[0].Switch = lastSwitch
	b, err = bad.MarshalBinary()
	c.Assert(err, check.Equals, nil)
	var got AnnotatedContig
	err = got.UnmarshalBinary(b)
	c.Check(errors.Is(err, ErrMalformedCheckpoint), check.Equals, true)
	c.Check(err, check.ErrorMatches, "cpx: malformed checkpoint: invalid strand switch code 3 .*")

	bad = *a
	bad.contig.Alignments = append([]align.Alignment(nil), a.contig.Alignments...)
	bad.contig.Alignments[0].Origin = align.ModType(200)
	b, err = bad.MarshalBinary()
	c.Assert(err, check.Equals, nil)
	err = got.UnmarshalBinary(b)
	c.Check(err, check.ErrorMatches, "cpx: malformed checkpoint: invalid alignment origin 200 .*")
}

func (s *S) TestParseCompression(c *check.C) {
	for _, t := range []struct {
		in   string
		want Compression
	}{
		{"", BGZF},
		{"bgzf", BGZF},
		{"xz", XZ},
	} {
		got, err := ParseCompression(t.in)
		c.Check(err, check.Equals, nil)
		c.Check(got, check.Equals, t.want)
		if t.in != "" {
			c.Check(got.String(), check.Equals, t.in)
		}
	}
	_, err := ParseCompression("zstd")
	c.Check(err, check.ErrorMatches, `cpx: unknown compression "zstd"`)
	c.Check(Compression(5).String(), check.Equals, "Compression(5)")
}

func readAll(c *check.C, r *Reader) []*AnnotatedContig {
	var got []*AnnotatedContig
	for {
		a, err := r.Read()
		if err == io.EOF {
			break
		}
		c.Assert(err, check.Equals, nil)
		got = append(got, a)
	}
	return got
}

func (s *S) TestStream(c *check.C) {
	want := annotated(c)
	for _, comp := range []Compression{BGZF, XZ} {
		var buf bytes.Buffer
		w, err := NewWriter(&buf, comp, 1)
		c.Assert(err, check.Equals, nil)
		for _, a := range want {
			c.Assert(w.Write(a), check.Equals, nil)
		}
		c.Assert(w.Close(), check.Equals, nil)

		r, err := NewReader(bytes.NewReader(buf.Bytes()), 1)
		c.Assert(err, check.Equals, nil, check.Commentf("%v", comp))
		c.Check(readAll(c, r), check.DeepEquals, want, check.Commentf("%v", comp))
		c.Check(r.Close(), check.Equals, nil)
	}
}

func (s *S) TestStreamTruncated(c *check.C) {
	for _, t := range []struct {
		name string
		data []byte
	}{
		{name: "short size", data: []byte{'C', 'P', 'X', 'C', 10, 0}},
		{name: "short record", data: []byte{'C', 'P', 'X', 'C', 100, 0, 0, 0, CheckpointVersion, 0, 0}},
		{name: "too large", data: []byte{'C', 'P', 'X', 'C', 0xff, 0xff, 0xff, 0xff}},
	} {
		var buf bytes.Buffer
		bg := bgzf.NewWriter(&buf, 1)
		_, err := bg.Write(t.data)
		c.Assert(err, check.Equals, nil)
		c.Assert(bg.Close(), check.Equals, nil)

		r, err := NewReader(&buf, 1)
		c.Assert(err, check.Equals, nil, check.Commentf("%s", t.name))
		_, err = r.Read()
		c.Check(errors.Is(err, ErrMalformedCheckpoint), check.Equals, true, check.Commentf("%s: %v", t.name, err))
		r.Close()
	}
}

func (s *S) TestStreamEmpty(c *check.C) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, BGZF, 1)
	c.Assert(err, check.Equals, nil)
	c.Assert(w.Close(), check.Equals, nil)

	r, err := NewReader(&buf, 1)
	c.Assert(err, check.Equals, nil)
	_, err = r.Read()
	c.Check(err, check.Equals, io.EOF)
}

func (s *S) TestStreamBadMagic(c *check.C) {
	_, err := NewReader(bytes.NewReader([]byte("not a checkpoint")), 1)
	c.Check(errors.Is(err, ErrMalformedCheckpoint), check.Equals, true)

	var buf bytes.Buffer
	w, err := NewWriter(&buf, XZ, 1)
	c.Assert(err, check.Equals, nil)
	c.Assert(w.Close(), check.Equals, nil)
	b := buf.Bytes()
	_, err = NewReader(bytes.NewReader(b[:len(xzMagic)]), 1)
	c.Check(err, check.NotNil)
}

func (s *S) TestOpenCheckpoint(c *check.C) {
	want := annotated(c)
	path := filepath.Join(c.MkDir(), "contigs.cpx")
	f, err := os.Create(path)
	c.Assert(err, check.Equals, nil)
	w, err := NewWriter(f, BGZF, 2)
	c.Assert(err, check.Equals, nil)
	for _, a := range want {
		c.Assert(w.Write(a), check.Equals, nil)
	}
	c.Assert(w.Close(), check.Equals, nil)
	c.Assert(f.Close(), check.Equals, nil)

	r, err := OpenCheckpoint(path, 1)
	c.Assert(err, check.Equals, nil)
	c.Check(readAll(c, r), check.DeepEquals, want)
	c.Check(r.Close(), check.Equals, nil)

	_, err = OpenCheckpoint(filepath.Join(c.MkDir(), "missing"), 1)
	c.Check(err, check.NotNil)
}
