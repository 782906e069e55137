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

// Supplier is the producer side of the stream: the thing that performs
// actual I/O and hands filled Segments to the ring. Implementations live
// outside this package -- see the file subpackage, or bring your own
// against a network socket or a kernel submission queue.
//
// The exchange is deliberately batched and two-way. Every Supply call
// hands back the Segments the stream is done with, so a producer built on
// completion-queue I/O can reissue reads on reclaimed buffers in the same
// breath.
type Supplier interface {
	// Open will prepare the named source for reading.
	Open(uri string) error

	// Supply will be called with the number of bytes the stream needs,
	// the Segments it has reclaimed (now owned by the Supplier again, free
	// to refill or pool), and the most Segments the ring can accept right
	// now. It returns up to max freshly populated Segments, in stream
	// order. Returning fewer bytes than requested is not an error; the
	// stream will simply report ErrRetryLater to its caller and keep what
	// it got.
	Supply(requested int, parsed []*Segment, max int) ([]*Segment, error)
}

// Sized is implemented by Suppliers that know the total length of their
// source up front. Stream.Open picks it up as a hint.
type Sized interface {
	Size() uint64
}

// Refill will run one round of the supply handshake: drain every Segment
// the ring can currently recycle, pass them to the Supplier together with
// the number of bytes needed, and admit whatever Segments come back.
//
// It will return ErrRetryLater if the stream has no Supplier, if the ring
// has no free slot even after draining (every buffer pinned by live
// SegRefs), or if the admitted Segments carry fewer than requested bytes.
// In the short-supply case the admitted Segments stay in the ring, so the
// next attempt picks up where this one left off. A Supplier error is
// returned as is; io.EOF is the usual way a finite source announces
// exhaustion.
func (s *Stream) Refill(requested int) error {
	if s.supplier == nil {
		return ErrRetryLater
	}

	var parsed []*Segment
	for {
		seg, err := s.RemoveSegment()
		if err != nil {
			break
		}
		parsed = append(parsed, seg)
	}

	free := RingSize - 1 - s.occupied()
	if free == 0 {
		return ErrRetryLater
	}

	segs, err := s.supplier.Supply(requested, parsed, free)
	if err != nil {
		return err
	}

	admitted := 0
	for _, seg := range segs {
		if err := s.AddSegment(seg); err != nil {
			return err
		}
		admitted += seg.Len()
	}
	if admitted < requested {
		return ErrRetryLater
	}
	return nil
}

// vim: foldmethod=marker
