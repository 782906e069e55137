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

// Package file implements a rav.Supplier over a plain file on disk.
//
// Segments handed back by the stream are pooled and refilled, so a
// demuxer that releases its refs promptly reads the whole file through a
// handful of fixed buffers.
package file

import (
	"errors"
	"io"
	"os"
	"strings"

	"hz.tools/rav"
)

// DefaultSegmentSize is the Segment capacity used when New is given a
// non-positive size.
const DefaultSegmentSize = 64 * 1024

// Supplier reads a file sequentially, one Segment per read. It satisfies
// rav.Supplier and rav.Sized.
type Supplier struct {
	f           *os.File
	size        uint64
	offset      int64
	segmentSize int
	pool        *rav.SegmentPool
}

// New will create a file Supplier producing Segments of the given
// capacity.
func New(segmentSize int) *Supplier {
	if segmentSize <= 0 {
		segmentSize = DefaultSegmentSize
	}
	pool, err := rav.NewSegmentPool(segmentSize)
	if err != nil {
		// Unreachable: the size was just forced positive.
		panic(err)
	}
	return &Supplier{segmentSize: segmentSize, pool: pool}
}

// Open implements the rav.Supplier interface. Both bare paths and
// file:// uris are accepted.
func (s *Supplier) Open(uri string) error {
	path := strings.TrimPrefix(uri, "file://")

	f, err := os.Open(path)
	if err != nil {
		return err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}

	s.f = f
	s.size = uint64(info.Size())
	s.offset = 0
	return nil
}

// Close will close the underlying file.
func (s *Supplier) Close() error {
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	return err
}

// Size implements the rav.Sized interface.
func (s *Supplier) Size() uint64 {
	return s.size
}

// Supply implements the rav.Supplier interface. Reclaimed Segments go
// back to the pool first, then fresh reads are issued until the request
// is covered or the ring's slot budget is spent. Exhaustion is reported
// as io.EOF, but only once every buffered byte has been handed over.
func (s *Supplier) Supply(requested int, parsed []*rav.Segment, max int) ([]*rav.Segment, error) {
	for _, seg := range parsed {
		s.pool.Put(seg)
	}

	if s.f == nil {
		return nil, rav.ErrInvalidInput
	}

	var out []*rav.Segment
	filled := 0
	for len(out) < max && (filled < requested || len(out) == 0) {
		seg := s.pool.Get()
		n, err := s.f.ReadAt(seg.Buffer(), s.offset)
		if n > 0 {
			if serr := seg.SetLen(n); serr != nil {
				return out, serr
			}
			s.offset += int64(n)
			filled += n
			out = append(out, seg)
		} else {
			s.pool.Put(seg)
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				if len(out) == 0 {
					return nil, io.EOF
				}
				return out, nil
			}
			if len(out) == 0 {
				return nil, err
			}
			// Hand over what was read; the failure repeats on the next
			// call if it is persistent.
			return out, nil
		}
	}
	return out, nil
}

// vim: foldmethod=marker
