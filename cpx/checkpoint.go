// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpx

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/biogo/hts/sam"

	"github.com/biogo/sv/align"
)

// CheckpointVersion is the version of the binary
// AnnotatedContig encoding written by MarshalBinary.
const CheckpointVersion = 1

var (
	// ErrMalformedCheckpoint is returned when checkpoint
	// data cannot be decoded.
	ErrMalformedCheckpoint = errors.New("cpx: malformed checkpoint")

	// ErrCheckpointVersion is returned when checkpoint data
	// was written with an unsupported format version.
	ErrCheckpointVersion = errors.New("cpx: unsupported checkpoint version")
)

// MarshalBinary implements encoding.BinaryMarshaler. The encoding holds,
// in order, the format version, the contig, the basic info, the jumps and
// the breakpoints. Slice lengths are written as -1 for nil slices so that
// nil and empty slices are distinguished on decoding.
func (a *AnnotatedContig) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	err := a.encode(&buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (a *AnnotatedContig) encode(buf *bytes.Buffer) error {
	wb := errWriter{w: buf}
	bin := binaryWriter{w: &wb}

	bin.writeUint8(CheckpointVersion)

	c := a.contig
	bin.writeString(c.Name)
	bin.writeBytes(c.Seq)
	bin.writeLen(len(c.Alignments), c.Alignments == nil)
	for _, aln := range c.Alignments {
		bin.writeAlignment(aln)
	}
	bin.writeBool(c.Ambiguous)

	bin.writeString(a.info.PrimaryChromosome)
	bin.writeBool(a.info.ForwardRep)
	bin.writeInterval(a.info.Alpha)
	bin.writeInterval(a.info.Omega)

	bin.writeLen(len(a.jumps), a.jumps == nil)
	for _, j := range a.jumps {
		bin.writeInterval(j.Start)
		bin.writeInterval(j.Landing)
		bin.writeInt32(int32(j.Switch))
	}

	bin.writeLen(len(a.breakpoints), a.breakpoints == nil)
	for _, bp := range a.breakpoints {
		bin.writeInterval(bp)
	}
	return wb.err
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. The receiver
// is only altered if the data is decoded without error.
func (a *AnnotatedContig) UnmarshalBinary(data []byte) error {
	b := &buffer{data: data}

	v := b.readUint8()
	if b.err != nil {
		return b.err
	}
	if v != CheckpointVersion {
		return fmt.Errorf("%w: %d", ErrCheckpointVersion, v)
	}

	var d AnnotatedContig
	d.contig.Name = b.readString()
	d.contig.Seq = b.readBytes()
	n := b.readLen(minAlignmentSize)
	if n >= 0 {
		d.contig.Alignments = make([]align.Alignment, n)
		for i := range d.contig.Alignments {
			d.contig.Alignments[i] = b.readAlignment()
		}
	}
	d.contig.Ambiguous = b.readBool()

	d.info.PrimaryChromosome = b.readString()
	d.info.ForwardRep = b.readBool()
	d.info.Alpha = b.readInterval()
	d.info.Omega = b.readInterval()

	n = b.readLen(2*minIntervalSize + 4)
	if n >= 0 {
		d.jumps = make([]Jump, n)
		for i := range d.jumps {
			d.jumps[i].Start = b.readInterval()
			d.jumps[i].Landing = b.readInterval()
			s := b.readInt32()
			if b.err == nil && (s < 0 || StrandSwitch(s) >= lastSwitch) {
				b.fail("invalid strand switch code %d", s)
			}
			d.jumps[i].Switch = StrandSwitch(s)
		}
	}

	n = b.readLen(minIntervalSize)
	if n >= 0 {
		d.breakpoints = make([]align.Interval, n)
		for i := range d.breakpoints {
			d.breakpoints[i] = b.readInterval()
		}
	}

	if b.err == nil && b.len() != 0 {
		b.fail("%d trailing bytes", b.len())
	}
	if b.err != nil {
		return b.err
	}
	*a = d
	return nil
}

const (
	minIntervalSize  = 4 + 4 + 4
	minAlignmentSize = minIntervalSize + 1 + 4 + 4 + 4 + 4 + 4 + 1
)

type errWriter struct {
	w   *bytes.Buffer
	err error
}

func (w *errWriter) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	var n int
	n, w.err = w.w.Write(p)
	return n, w.err
}

type binaryWriter struct {
	w   *errWriter
	buf [4]byte
}

func (w *binaryWriter) writeUint8(v uint8) {
	w.buf[0] = v
	w.w.Write(w.buf[:1])
}

func (w *binaryWriter) writeBool(v bool) {
	if v {
		w.writeUint8(1)
	} else {
		w.writeUint8(0)
	}
}

func (w *binaryWriter) writeInt32(v int32) {
	binary.LittleEndian.PutUint32(w.buf[:4], uint32(v))
	w.w.Write(w.buf[:4])
}

func (w *binaryWriter) writeUint32(v uint32) {
	binary.LittleEndian.PutUint32(w.buf[:4], v)
	w.w.Write(w.buf[:4])
}

func (w *binaryWriter) writeInt(v int) {
	if v < math.MinInt32 || math.MaxInt32 < v {
		if w.w.err == nil {
			w.w.err = fmt.Errorf("cpx: value out of range: %d", v)
		}
		return
	}
	w.writeInt32(int32(v))
}

// writeLen writes the length of a slice, or -1 if the slice is nil.
func (w *binaryWriter) writeLen(n int, isNil bool) {
	if isNil {
		w.writeInt32(-1)
		return
	}
	w.writeInt(n)
}

func (w *binaryWriter) writeBytes(b []byte) {
	w.writeLen(len(b), b == nil)
	w.w.Write(b)
}

func (w *binaryWriter) writeString(s string) {
	w.writeInt(len(s))
	w.w.Write([]byte(s))
}

func (w *binaryWriter) writeInterval(iv align.Interval) {
	w.writeString(iv.Ref)
	w.writeInt(iv.Start)
	w.writeInt(iv.End)
}

func (w *binaryWriter) writeAlignment(a align.Alignment) {
	w.writeInterval(a.Span())
	w.writeBool(a.Forward)
	w.writeInt(a.ReadStart)
	w.writeInt(a.ReadEnd)
	w.writeInt(a.MapQ)
	w.writeInt(a.Mismatches)
	w.writeLen(len(a.Cigar), a.Cigar == nil)
	for _, co := range a.Cigar {
		w.writeUint32(uint32(co))
	}
	w.writeUint8(uint8(a.Origin))
}

// buffer is a bounds checked read buffer. After the first failure
// all reads return zero values and err holds the failure.
type buffer struct {
	off  int
	data []byte
	err  error
}

func (b *buffer) fail(format string, args ...interface{}) {
	if b.err == nil {
		b.err = fmt.Errorf("%w: %s at offset %d", ErrMalformedCheckpoint, fmt.Sprintf(format, args...), b.off)
	}
}

func (b *buffer) len() int {
	return len(b.data) - b.off
}

func (b *buffer) bytes(n int) []byte {
	if b.err != nil {
		return nil
	}
	if n < 0 || b.len() < n {
		b.fail("short data: need %d bytes, have %d", n, b.len())
		return nil
	}
	s := b.off
	b.off += n
	return b.data[s:b.off]
}

func (b *buffer) readUint8() uint8 {
	p := b.bytes(1)
	if p == nil {
		return 0
	}
	return p[0]
}

func (b *buffer) readBool() bool {
	switch v := b.readUint8(); v {
	case 0:
		return false
	case 1:
		return true
	default:
		b.fail("invalid bool %d", v)
		return false
	}
}

func (b *buffer) readInt32() int32 {
	p := b.bytes(4)
	if p == nil {
		return 0
	}
	return int32(binary.LittleEndian.Uint32(p))
}

func (b *buffer) readUint32() uint32 {
	p := b.bytes(4)
	if p == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(p)
}

// readLen returns a slice length written by writeLen, checking
// that the remaining data could hold that many elements of at
// least size bytes. A nil slice is indicated by -1.
func (b *buffer) readLen(size int) int {
	n := int(b.readInt32())
	if b.err != nil {
		return 0
	}
	if n == -1 {
		return -1
	}
	if n < 0 || n > b.len()/size {
		b.fail("invalid count %d", n)
		return 0
	}
	return n
}

// readCount is readLen without the nil marker.
func (b *buffer) readCount(size int) int {
	n := b.readLen(size)
	if n < 0 {
		b.fail("invalid count %d", n)
		return 0
	}
	return n
}

func (b *buffer) readBytes() []byte {
	n := b.readLen(1)
	if n < 0 {
		return nil
	}
	p := make([]byte, n)
	copy(p, b.bytes(n))
	return p
}

func (b *buffer) readString() string {
	n := b.readCount(1)
	return string(b.bytes(n))
}

func (b *buffer) readInterval() align.Interval {
	return align.Interval{
		Ref:   b.readString(),
		Start: int(b.readInt32()),
		End:   int(b.readInt32()),
	}
}

func (b *buffer) readAlignment() align.Alignment {
	span := b.readInterval()
	a := align.Alignment{
		Ref:        span.Ref,
		Start:      span.Start,
		End:        span.End,
		Forward:    b.readBool(),
		ReadStart:  int(b.readInt32()),
		ReadEnd:    int(b.readInt32()),
		MapQ:       int(b.readInt32()),
		Mismatches: int(b.readInt32()),
	}
	n := b.readLen(4)
	if n >= 0 {
		a.Cigar = make(sam.Cigar, n)
		for i := range a.Cigar {
			a.Cigar[i] = sam.CigarOp(b.readUint32())
		}
	}
	a.Origin = align.ModType(b.readUint8())
	if b.err == nil && !a.Origin.Valid() {
		b.fail("invalid alignment origin %d", a.Origin)
	}
	return a
}
