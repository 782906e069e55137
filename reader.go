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

// Reader is the byte-level interface a demuxer consumes. Stream implements
// it; test doubles can too.
type Reader interface {
	// ReadByte will consume and return the next byte of the stream.
	ReadByte() (byte, error)

	// ReadRange will consume the next length bytes of the stream into out.
	ReadRange(out *SegRef, length int) error
}

// advance moves the cursor n bytes forward inside the current Segment,
// hopping to the next slot when the Segment's content is exhausted.
// n must not exceed the bytes remaining in the current Segment.
func (s *Stream) advance(n int) {
	s.curPos += n
	s.pos += uint64(n)
	if s.curPos == s.ring[s.curIdx].length {
		s.curIdx = (s.curIdx + 1) & ringMask
		s.curPos = 0
	}
}

// Buffered will return the total number of unread bytes currently sitting
// in the ring.
func (s *Stream) Buffered() int {
	if s.curIdx == s.addIdx {
		return 0
	}
	total := s.ring[s.curIdx].length - s.curPos
	for idx := (s.curIdx + 1) & ringMask; idx != s.addIdx; idx = (idx + 1) & ringMask {
		total += s.ring[idx].length
	}
	return total
}

// Contiguous will return the number of unread bytes left in the current
// Segment. A ReadRange of at most this many bytes is guaranteed to take
// the zero-copy path, so a demuxer can use it to slice its reads along
// Segment boundaries instead of paying for a stitch.
func (s *Stream) Contiguous() int {
	if s.curIdx == s.addIdx {
		return 0
	}
	return s.ring[s.curIdx].length - s.curPos
}

// ReadByte will consume and return the next byte of the stream. When the
// cursor has caught up with the add index it will ask the Supplier for at
// least one more byte first, and propagate ErrRetryLater (or the
// Supplier's own error) if that does not pan out. ReadByte never allocates.
func (s *Stream) ReadByte() (byte, error) {
	if s.curIdx == s.addIdx {
		if err := s.Refill(1); err != nil {
			return 0, err
		}
	}

	b := s.ring[s.curIdx].data[s.curPos]
	s.advance(1)
	return b, nil
}

// ReadRange will consume the next length bytes of the stream into out,
// releasing whatever out previously referenced.
//
// When the whole range fits inside the current Segment, out becomes a
// shared SegRef borrowing that Segment's memory -- no bytes are copied,
// and the Segment is pinned until out is released. When the range crosses
// Segment boundaries, the bytes are stitched into a freshly owned slab and
// nothing is pinned.
//
// ReadRange is atomic with respect to the stream: it either succeeds and
// moves the cursor by exactly length bytes, or it fails (ErrInvalidInput
// for a non-positive length, ErrRetryLater when not enough bytes are
// buffered) and leaves the stream, and out, exactly as they were. It does
// not ask the Supplier for more data; on ErrRetryLater the caller should
// Refill and retry.
func (s *Stream) ReadRange(out *SegRef, length int) error {
	if length <= 0 {
		return ErrInvalidInput
	}
	if s.curIdx == s.addIdx {
		return ErrRetryLater
	}

	seg := s.ring[s.curIdx]
	remaining := seg.length - s.curPos

	if remaining >= length {
		// Fast path: the range lives inside the current Segment.
		out.Release()
		seg.pin()
		*out = SegRef{seg: seg, offset: s.curPos, length: length}
		s.advance(length)
		return nil
	}

	// Count what the slots after the cursor hold before committing to a
	// stitch.
	total := remaining
	for idx := (s.curIdx + 1) & ringMask; idx != s.addIdx && total < length; idx = (idx + 1) & ringMask {
		total += s.ring[idx].length
	}
	if total < length {
		return ErrRetryLater
	}

	// Slow path: stitch the range into an owned slab, walking consecutive
	// Segments with a local cursor, then commit.
	slab := make([]byte, length)
	var (
		n   int
		idx = s.curIdx
		off = s.curPos
	)
	for n < length {
		seg := s.ring[idx]
		c := copy(slab[n:], seg.data[off:seg.length])
		n += c
		off += c
		if off == seg.length {
			idx = (idx + 1) & ringMask
			off = 0
		}
	}

	s.curIdx = idx
	s.curPos = off
	s.pos += uint64(length)

	out.Release()
	*out = SegRef{owned: slab, length: length}
	return nil
}

// vim: foldmethod=marker
