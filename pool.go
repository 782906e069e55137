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
	"sync"
)

// SegmentPool creates a dynamically sized pool of Segments of one fixed
// capacity. Suppliers use it to recirculate the buffers the stream hands
// back, so steady-state demuxing does not allocate at all.
//
// Under the hood this is a sync.Pool with a couple of guard rails: a
// Segment of the wrong capacity, or one still pinned by a live SegRef,
// is silently dropped instead of pooled.
type SegmentPool struct {
	pool     *sync.Pool
	capacity int
}

// NewSegmentPool will create a SegmentPool that hands out Segments with
// the provided backing capacity.
func NewSegmentPool(capacity int) (*SegmentPool, error) {
	if capacity <= 0 {
		return nil, ErrInvalidInput
	}
	return &SegmentPool{
		pool: &sync.Pool{
			New: func() interface{} {
				return NewSegment(capacity)
			},
		},
		capacity: capacity,
	}, nil
}

// Get will either return a recycled Segment, or allocate a new one. The
// returned Segment has stale content; fill Buffer and SetLen before use.
func (sp *SegmentPool) Get() *Segment {
	return sp.pool.Get().(*Segment)
}

// Put will return a Segment to the pool for reuse.
func (sp *SegmentPool) Put(seg *Segment) {
	if seg == nil || seg.Cap() != sp.capacity || seg.Pinned() {
		return
	}
	sp.pool.Put(seg)
}

// vim: foldmethod=marker
