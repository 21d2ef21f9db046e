// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package align

import (
	"errors"
	"fmt"
	"sort"

	"github.com/biogo/hts/fai"
	"github.com/biogo/hts/sam"
)

var errDupReference = errors.New("align: duplicate reference name")

// Dictionary is a total ordering of reference coordinates. Reference
// sequences are ordered by their position in the dictionary and positions
// within a reference numerically. A Dictionary is not altered after
// construction and is safe for concurrent use.
type Dictionary struct {
	names []string
	lens  []int
	index map[string]int
}

// NewDictionary returns a Dictionary ordering the named references in the
// order given. The lengths are optional and may be nil.
func NewDictionary(names []string, lengths []int) (*Dictionary, error) {
	if lengths != nil && len(lengths) != len(names) {
		return nil, errors.New("align: name/length count mismatch")
	}
	d := &Dictionary{
		names: append([]string(nil), names...),
		lens:  make([]int, len(names)),
		index: make(map[string]int, len(names)),
	}
	for i, n := range names {
		if n == "" {
			return nil, errors.New("align: empty reference name")
		}
		if _, dup := d.index[n]; dup {
			return nil, fmt.Errorf("%w: %q", errDupReference, n)
		}
		d.index[n] = i
		if lengths != nil {
			d.lens[i] = lengths[i]
		} else {
			d.lens[i] = -1
		}
	}
	return d, nil
}

// DictionaryFromHeader returns a Dictionary in the @SQ order of h.
func DictionaryFromHeader(h *sam.Header) (*Dictionary, error) {
	refs := h.Refs()
	names := make([]string, len(refs))
	lens := make([]int, len(refs))
	for i, r := range refs {
		names[i] = r.Name()
		lens[i] = r.Len()
	}
	return NewDictionary(names, lens)
}

// DictionaryFromIndex returns a Dictionary in the order the sequences
// of idx appear in the indexed FASTA file.
func DictionaryFromIndex(idx fai.Index) (*Dictionary, error) {
	recs := make([]fai.Record, 0, len(idx))
	for _, r := range idx {
		recs = append(recs, r)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Start < recs[j].Start })
	names := make([]string, len(recs))
	lens := make([]int, len(recs))
	for i, r := range recs {
		names[i] = r.Name
		lens[i] = r.Length
	}
	return NewDictionary(names, lens)
}

// Len returns the number of references in the dictionary.
func (d *Dictionary) Len() int { return len(d.names) }

// Names returns the reference names in dictionary order. The returned
// slice should not be altered.
func (d *Dictionary) Names() []string { return d.names }

// Index returns the rank of the named reference and whether it is known.
func (d *Dictionary) Index(name string) (int, bool) {
	i, ok := d.index[name]
	return i, ok
}

// RefLen returns the length of the named reference, or -1 if the
// reference is unknown or no length was given.
func (d *Dictionary) RefLen(name string) int {
	i, ok := d.index[name]
	if !ok {
		return -1
	}
	return d.lens[i]
}

// Compare returns a negative value if a sorts before b, zero if
// a and b are equal and a positive value otherwise. Intervals are
// compared by reference rank, then start and then end. Compare panics
// if either reference is not in the dictionary.
func (d *Dictionary) Compare(a, b Interval) int {
	if a.Ref != b.Ref {
		return d.mustIndex(a.Ref) - d.mustIndex(b.Ref)
	}
	if a.Start != b.Start {
		return a.Start - b.Start
	}
	return a.End - b.End
}

func (d *Dictionary) mustIndex(name string) int {
	i, ok := d.index[name]
	if !ok {
		panic(fmt.Sprintf("align: reference %q not in dictionary", name))
	}
	return i
}

// Sort sorts the intervals in place in dictionary order.
func (d *Dictionary) Sort(ivs []Interval) {
	sort.SliceStable(ivs, func(i, j int) bool { return d.Compare(ivs[i], ivs[j]) < 0 })
}
