// {{{ Copyright (c) Paul R. Tagliamonte <paul@k3xec.com>, 2020
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE. }}}

package rav

import (
	"sync/atomic"
)

// Segment is a shared, immutable byte buffer. The backing array has a fixed
// capacity, and some prefix of it (Len bytes) holds valid content. Once a
// Segment has been handed to a Stream its content must not be touched until
// the Stream recycles it back through the Supplier.
//
// Sharing is tracked with an explicit pin count rather than a GC hook: every
// borrowed SegRef pins the Segment on creation and unpins it on Release,
// and the Stream refuses to recycle a pinned Segment.
type Segment struct {
	data   []byte
	length int
	pins   atomic.Int32
}

// NewSegment will allocate an empty Segment with the given backing capacity.
// The returned Segment has no content; a producer fills Buffer and then
// calls SetLen before admitting it to a Stream.
func NewSegment(capacity int) *Segment {
	return &Segment{data: make([]byte, capacity)}
}

// SegmentFromBytes will wrap b as a fully populated Segment. The Segment
// takes ownership of b; the caller must not write to it afterwards.
func SegmentFromBytes(b []byte) *Segment {
	return &Segment{data: b, length: len(b)}
}

// Bytes will return the valid content of the Segment, Len bytes long.
func (seg *Segment) Bytes() []byte {
	return seg.data[:seg.length]
}

// Buffer will return the entire backing array, up to Cap bytes. This is the
// producer-facing view, used to refill a recycled Segment.
func (seg *Segment) Buffer() []byte {
	return seg.data
}

// Len will return the number of valid content bytes at the start of the
// backing array.
func (seg *Segment) Len() int {
	return seg.length
}

// Cap will return the capacity of the backing array.
func (seg *Segment) Cap() int {
	return len(seg.data)
}

// SetLen will declare the first n bytes of the backing array to be valid
// content. It will return ErrInvalidInput if n is out of range, or if the
// Segment is still pinned by a live SegRef.
func (seg *Segment) SetLen(n int) error {
	if n <= 0 || n > len(seg.data) {
		return ErrInvalidInput
	}
	if seg.Pinned() {
		return ErrInvalidInput
	}
	seg.length = n
	return nil
}

// Pinned will report whether any live SegRef still borrows this Segment.
func (seg *Segment) Pinned() bool {
	return seg.pins.Load() != 0
}

func (seg *Segment) pin() {
	seg.pins.Add(1)
}

func (seg *Segment) unpin() {
	seg.pins.Add(-1)
}

// vim: foldmethod=marker
