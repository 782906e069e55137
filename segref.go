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

// SegRef is a reference to a run of bytes produced by Stream.ReadRange. It
// comes in two flavors, observable through Shared:
//
// A shared SegRef borrows memory straight out of a live Segment (an offset
// and a length, no copy), and pins that Segment in the ring until the
// SegRef is released. Demuxers that want to stay on this zero-copy path can
// size their range reads to the remainder of the current Segment.
//
// An owned SegRef carries a freshly allocated slab holding bytes stitched
// together from more than one Segment. It pins nothing.
//
// The zero value is an empty, released SegRef. Callers that are done with
// a SegRef must call Release exactly once per successful ReadRange; a
// Packet takes over that duty for refs pushed into it.
type SegRef struct {
	seg    *Segment
	owned  []byte
	offset int
	length int
}

// Shared will report whether this SegRef borrows a Segment (true) or owns
// a stitched slab (false).
func (ref *SegRef) Shared() bool {
	return ref.seg != nil
}

// Len will return the number of bytes referenced. A released or zero
// SegRef has length 0.
func (ref *SegRef) Len() int {
	return ref.length
}

// Bytes will return the referenced bytes. For a shared SegRef this is a
// window into the Segment's memory and must be treated as read-only; it
// stays valid until Release.
func (ref *SegRef) Bytes() []byte {
	if ref.seg != nil {
		return ref.seg.data[ref.offset : ref.offset+ref.length]
	}
	return ref.owned
}

// Release will drop the reference, unpinning the underlying Segment if the
// SegRef was shared. The SegRef is reset to its zero value, so a double
// Release is harmless.
func (ref *SegRef) Release() {
	if ref.seg != nil {
		ref.seg.unpin()
	}
	*ref = SegRef{}
}

// vim: foldmethod=marker
