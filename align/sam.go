// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package align

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/biogo/hts/sam"
)

// RecordReader is the record reading behaviour shared by
// sam.Reader and bam.Reader.
type RecordReader interface {
	Read() (*sam.Record, error)
}

var nmTag = sam.NewTag("NM")

// FromRecord returns the Alignment described by a mapped SAM record.
func FromRecord(r *sam.Record) (Alignment, error) {
	if r.Flags&sam.Unmapped != 0 || r.Ref == nil {
		return Alignment{}, fmt.Errorf("align: record %q is unmapped", r.Name)
	}
	if len(r.Cigar) == 0 {
		return Alignment{}, fmt.Errorf("align: record %q has no CIGAR", r.Name)
	}
	lead, core, trail := splitClips(r.Cigar)
	var lq, cq, tq int
	for _, co := range lead {
		lq += co.Len()
	}
	for _, co := range core {
		cq += co.Len() * co.Type().Consumes().Query
	}
	for _, co := range trail {
		tq += co.Len()
	}
	a := Alignment{
		Ref:     r.Ref.Name(),
		Start:   r.Pos + 1,
		End:     r.End(),
		Forward: r.Flags&sam.Reverse == 0,
		Cigar:   append(sam.Cigar(nil), r.Cigar...),
		MapQ:    int(r.MapQ),
		Origin:  Unmodified,
	}
	if a.Forward {
		a.ReadStart, a.ReadEnd = lq+1, lq+cq
	} else {
		a.ReadStart, a.ReadEnd = tq+1, tq+cq
	}
	if nm := r.AuxFields.Get(nmTag); nm != nil {
		a.Mismatches = auxInt(nm.Value())
	}
	return a, nil
}

func auxInt(v interface{}) int {
	switch v := v.(type) {
	case int8:
		return int(v)
	case uint8:
		return int(v)
	case int16:
		return int(v)
	case uint16:
		return int(v)
	case int32:
		return int(v)
	case uint32:
		return int(v)
	}
	return 0
}

// ContigFromRecords returns the Contig described by the primary and
// supplementary records of a single assembled contig. Secondary and
// unmapped records are ignored, although an unmapped primary record
// still provides the contig sequence.
func ContigFromRecords(recs []*sam.Record) (Contig, error) {
	if len(recs) == 0 {
		return Contig{}, errors.New("align: no records")
	}
	c := Contig{Name: recs[0].Name}
	for _, r := range recs {
		if r.Name != c.Name {
			return Contig{}, fmt.Errorf("align: mixed contig names %q and %q", c.Name, r.Name)
		}
		if r.Flags&sam.Secondary != 0 {
			continue
		}
		if r.Flags&sam.Supplementary == 0 && c.Seq == nil && r.Seq.Length != 0 {
			c.Seq = r.Seq.Expand()
			if r.Flags&sam.Reverse != 0 {
				c.Seq = reverseComplement(c.Seq)
			}
		}
		if r.Flags&sam.Unmapped != 0 {
			continue
		}
		a, err := FromRecord(r)
		if err != nil {
			return Contig{}, err
		}
		c.Alignments = append(c.Alignments, a)
	}
	sort.SliceStable(c.Alignments, func(i, j int) bool {
		return c.Alignments[i].ReadStart < c.Alignments[j].ReadStart
	})
	return c, nil
}

// ReadContigs reads all records from r and returns the contigs they
// describe in the order their names are first seen.
func ReadContigs(r RecordReader) ([]Contig, error) {
	var (
		groups [][]*sam.Record
		seen   = make(map[string]int)
	)
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		i, ok := seen[rec.Name]
		if !ok {
			i = len(groups)
			seen[rec.Name] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], rec)
	}
	contigs := make([]Contig, 0, len(groups))
	for _, g := range groups {
		c, err := ContigFromRecords(g)
		if err != nil {
			return nil, err
		}
		contigs = append(contigs, c)
	}
	return contigs, nil
}

// complement maps IUPAC nucleotide codes to their complements.
var complement [256]byte

func init() {
	for _, p := range []string{"AT", "CG", "RY", "KM", "BV", "DH", "SS", "WW", "NN"} {
		complement[p[0]], complement[p[1]] = p[1], p[0]
		lo, hi := p[0]|0x20, p[1]|0x20
		complement[lo], complement[hi] = hi, lo
	}
	complement['='] = '='
}

func reverseComplement(s []byte) []byte {
	rc := make([]byte, len(s))
	for i, b := range s {
		c := complement[b]
		if c == 0 {
			c = 'N'
		}
		rc[len(s)-1-i] = c
	}
	return rc
}
