// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pool provides reusable byte buffers for checkpoint record
// decoding. Buffers are held in power of two size classes so a record
// buffer can be reused for any record of up to twice its size.
package pool

import (
	"math/bits"
	"sync"
)

// maxClass is the largest size class held. Larger
// buffers are allocated directly and dropped on Put.
const maxClass = 30

var classes [maxClass + 1]sync.Pool

// Get returns a []byte with length size. The capacity of
// the returned slice is less than 2*size.
func Get(size int) []byte {
	if size <= 0 {
		return nil
	}
	c := class(size)
	if c > maxClass {
		return make([]byte, size)
	}
	if b, ok := classes[c].Get().(*[]byte); ok {
		return (*b)[:size]
	}
	return make([]byte, size, 1<<uint(c))
}

// Put returns b to the pool for reuse. b must not be
// used after it has been put.
func Put(b []byte) {
	if cap(b) == 0 {
		return
	}
	c := class(cap(b))
	// Only exact power of two capacities came from Get.
	if c > maxClass || cap(b) != 1<<uint(c) {
		return
	}
	b = b[:0]
	classes[c].Put(&b)
}

// class returns the ceiling of the base 2 log of size.
func class(size int) int {
	return bits.Len(uint(size - 1))
}
