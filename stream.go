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

const (
	// RingSize is the fixed number of Segment slots in a Stream's ring.
	// One slot is always left unoccupied to tell a full ring from an empty
	// one, so at most RingSize-1 Segments are in flight at a time.
	RingSize = 4

	ringMask = RingSize - 1
)

// Stream is a bounded source of bytes for a demuxer: a cyclic array of
// RingSize Segment slots, three indices walking it, and an absolute read
// position.
//
// Slots between removeIdx and curIdx hold Segments that have been fully
// read and are waiting to be recycled back to the Supplier. Slots between
// curIdx and addIdx hold unread content. The cursor (curIdx, curPos) is the
// next byte any read will consume.
//
// A Stream must only be driven from one goroutine at a time. Producers
// running elsewhere hand Segments over through whatever channel or mutex
// the deployment uses; the Stream itself does no locking.
type Stream struct {
	ring      [RingSize]*Segment
	removeIdx int
	addIdx    int
	curIdx    int
	curPos    int

	pos      uint64
	length   uint64
	supplier Supplier
}

// NewStream will create a Stream fed by the given Supplier. A nil Supplier
// is allowed; such a Stream can only be fed by hand through AddSegment.
func NewStream(supplier Supplier) *Stream {
	return &Stream{supplier: supplier}
}

// Open will open the named source through the Supplier. If the Supplier
// knows the total stream length it is recorded as a hint, readable through
// Size.
func (s *Stream) Open(uri string) error {
	if s.supplier == nil {
		return ErrInvalidInput
	}
	if err := s.supplier.Open(uri); err != nil {
		return err
	}
	if sized, ok := s.supplier.(Sized); ok {
		s.length = sized.Size()
	}
	return nil
}

// Pos will return the absolute number of bytes consumed from the stream
// so far.
func (s *Stream) Pos() uint64 {
	return s.pos
}

// Size will return the total length of the stream if the Supplier reported
// one, and 0 when unknown.
func (s *Stream) Size() uint64 {
	return s.length
}

// occupied is the number of slots currently holding a Segment.
func (s *Stream) occupied() int {
	return (s.addIdx - s.removeIdx) & ringMask
}

// AddSegment will install a populated Segment into the ring at the add
// index. It will return ErrInvalidInput if the Segment is nil, empty, or
// claims more content than its capacity, and ErrRetryLater if the ring is
// full. It never blocks and never touches the Supplier.
func (s *Stream) AddSegment(seg *Segment) error {
	if seg == nil || seg.length == 0 || seg.length > len(seg.data) {
		return ErrInvalidInput
	}

	next := (s.addIdx + 1) & ringMask
	if next == s.removeIdx {
		return ErrRetryLater
	}

	s.ring[s.addIdx] = seg
	s.addIdx = next
	return nil
}

// RemoveSegment will take the Segment at the remove index out of the ring
// and hand it back for reuse. Reclamation is strictly FIFO: only the head
// slot is ever considered. It will return ErrRetryLater when the ring is
// empty, when the head Segment has not been fully read past yet, or when a
// live SegRef still pins it. Dropping the pinning refs makes the Segment
// recyclable again.
func (s *Stream) RemoveSegment() (*Segment, error) {
	if s.removeIdx == s.addIdx {
		return nil, ErrRetryLater
	}
	// The cursor still sits inside this slot, so it has unread bytes.
	if s.removeIdx == s.curIdx {
		return nil, ErrRetryLater
	}

	seg := s.ring[s.removeIdx]
	if seg.Pinned() {
		return nil, ErrRetryLater
	}

	s.ring[s.removeIdx] = nil
	s.removeIdx = (s.removeIdx + 1) & ringMask
	return seg, nil
}

// vim: foldmethod=marker
