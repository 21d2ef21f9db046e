// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// cpxsv interprets assembled contigs whose alignments jump between more
// than two locations on one chromosome, segmenting the affected reference
// region into the ordered, oriented pieces of a complex variant.
//
// Usage:
//
//	cpxsv annotate [flags] contigs.bam
//	cpxsv segment --checkpoint annotated.cpx [flags]
//	cpxsv dump --checkpoint annotated.cpx [--utter]
package main

func main() {
	execute()
}
