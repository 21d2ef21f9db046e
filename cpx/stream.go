// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpx

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/biogo/hts/bgzf"
	"github.com/ulikunitz/xz"
	"golang.org/x/exp/mmap"

	"github.com/biogo/sv/internal/pool"
)

// Compression specifies the compression of a checkpoint stream.
type Compression int

const (
	BGZF Compression = iota // Blocked gzip, as used by BAM.
	XZ                      // xz/LZMA2.
)

// ParseCompression returns the Compression named by s.
func ParseCompression(s string) (Compression, error) {
	switch s {
	case "bgzf", "":
		return BGZF, nil
	case "xz":
		return XZ, nil
	}
	return 0, fmt.Errorf("cpx: unknown compression %q", s)
}

// String returns the name of the compression.
func (c Compression) String() string {
	switch c {
	case BGZF:
		return "bgzf"
	case XZ:
		return "xz"
	}
	return fmt.Sprintf("Compression(%d)", int(c))
}

var magic = [4]byte{'C', 'P', 'X', 'C'}

// maxRecordSize is the largest encoded AnnotatedContig accepted by a Reader.
const maxRecordSize = 1 << 30

var errTooLarge = errors.New("cpx: record too large")

// Writer writes a stream of AnnotatedContig checkpoint records.
type Writer struct {
	w   io.WriteCloser
	buf bytes.Buffer
	n   [4]byte
}

// NewWriter returns a Writer writing compressed records to w. For BGZF
// compression write concurrency is set to wc.
func NewWriter(w io.Writer, c Compression, wc int) (*Writer, error) {
	var (
		cw  io.WriteCloser
		err error
	)
	switch c {
	case BGZF:
		cw = bgzf.NewWriter(w, wc)
	case XZ:
		cw, err = xz.NewWriter(w)
	default:
		err = fmt.Errorf("cpx: unknown compression %v", c)
	}
	if err != nil {
		return nil, err
	}
	_, err = cw.Write(magic[:])
	if err != nil {
		return nil, err
	}
	return &Writer{w: cw}, nil
}

// Write writes a to the stream.
func (w *Writer) Write(a *AnnotatedContig) error {
	w.buf.Reset()
	err := a.encode(&w.buf)
	if err != nil {
		return err
	}
	if w.buf.Len() > maxRecordSize {
		return fmt.Errorf("%w: %s", errTooLarge, a.Name())
	}
	binary.LittleEndian.PutUint32(w.n[:], uint32(w.buf.Len()))
	_, err = w.w.Write(w.n[:])
	if err != nil {
		return err
	}
	_, err = w.w.Write(w.buf.Bytes())
	return err
}

// Close flushes and closes the compressor. It does
// not close the underlying io.Writer.
func (w *Writer) Close() error {
	return w.w.Close()
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	xzMagic   = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
)

// Reader reads a stream of AnnotatedContig checkpoint records.
type Reader struct {
	r      io.Reader
	closer []io.Closer
	n      [4]byte
}

// NewReader returns a Reader reading from r, detecting the stream's
// compression. For BGZF streams read concurrency is set to rd.
func NewReader(r io.Reader, rd int) (*Reader, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(xzMagic))
	if err != nil && err != io.EOF {
		return nil, err
	}
	var cr Reader
	switch {
	case bytes.HasPrefix(head, xzMagic):
		xr, err := xz.NewReader(br)
		if err != nil {
			return nil, err
		}
		cr.r = xr
	case bytes.HasPrefix(head, gzipMagic):
		bg, err := bgzf.NewReader(br, rd)
		if err != nil {
			return nil, err
		}
		cr.r = bg
		cr.closer = append(cr.closer, bg)
	default:
		return nil, fmt.Errorf("%w: unknown stream compression", ErrMalformedCheckpoint)
	}

	var m [4]byte
	_, err = io.ReadFull(cr.r, m[:])
	if err != nil {
		return nil, fmt.Errorf("%w: missing stream magic: %v", ErrMalformedCheckpoint, err)
	}
	if m != magic {
		return nil, fmt.Errorf("%w: bad stream magic %q", ErrMalformedCheckpoint, m[:])
	}
	return &cr, nil
}

// OpenCheckpoint returns a Reader for the memory mapped checkpoint
// file at path. The returned Reader must be closed after use.
func OpenCheckpoint(path string, rd int) (*Reader, error) {
	f, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := NewReader(io.NewSectionReader(f, 0, int64(f.Len())), rd)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = append(r.closer, f)
	return r, nil
}

// Read returns the next AnnotatedContig in the stream. At the end of
// the stream Read returns io.EOF.
func (r *Reader) Read() (*AnnotatedContig, error) {
	n, err := io.ReadFull(r.r, r.n[:])
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("%w: short record size after %d bytes: %v", ErrMalformedCheckpoint, n, err)
	}
	size := binary.LittleEndian.Uint32(r.n[:])
	if size > maxRecordSize {
		return nil, fmt.Errorf("%w: %v: %d bytes", ErrMalformedCheckpoint, errTooLarge, size)
	}
	buf := pool.Get(int(size))
	defer pool.Put(buf)
	_, err = io.ReadFull(r.r, buf)
	if err != nil {
		return nil, fmt.Errorf("%w: truncated record: %v", ErrMalformedCheckpoint, err)
	}
	var a AnnotatedContig
	err = a.UnmarshalBinary(buf)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Close releases the resources held by the Reader.
func (r *Reader) Close() error {
	var err error
	for _, c := range r.closer {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
