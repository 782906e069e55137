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

// Package mock contains configurable stand-ins for the collaborators of a
// rav.Stream, for use in tests.
package mock

import (
	"io"

	"hz.tools/rav"
)

// Config is the set of behaviors of the mock Supplier. Any function left
// nil falls back to a harmless default.
type Config struct {
	// Open, if not nil, will be called by Supplier.Open.
	Open func(uri string) error

	// Supply, if not nil, will be called by Supplier.Supply.
	Supply func(requested int, parsed []*rav.Segment, max int) ([]*rav.Segment, error)

	// Size, if not nil, reports the total stream length.
	Size func() uint64
}

// New will create a mock rav.Supplier out of the provided Config.
func New(cfg Config) rav.Supplier {
	return &supplier{config: &cfg}
}

type supplier struct {
	config *Config
}

// Open implements the rav.Supplier interface.
func (s *supplier) Open(uri string) error {
	if s.config.Open == nil {
		return nil
	}
	return s.config.Open(uri)
}

// Supply implements the rav.Supplier interface.
func (s *supplier) Supply(requested int, parsed []*rav.Segment, max int) ([]*rav.Segment, error) {
	if s.config.Supply == nil {
		return nil, nil
	}
	return s.config.Supply(requested, parsed, max)
}

// Size implements the rav.Sized interface.
func (s *supplier) Size() uint64 {
	if s.config.Size == nil {
		return 0
	}
	return s.config.Size()
}

// Chunks will create a Supplier that feeds the provided byte chunks to the
// stream one Segment per chunk, in order, and io.EOF once they run out.
// The total length of all chunks is reported as the stream size.
func Chunks(chunks ...[]byte) rav.Supplier {
	var total uint64
	for _, chunk := range chunks {
		total += uint64(len(chunk))
	}

	next := 0
	return New(Config{
		Supply: func(requested int, parsed []*rav.Segment, max int) ([]*rav.Segment, error) {
			if next == len(chunks) {
				return nil, io.EOF
			}
			var out []*rav.Segment
			filled := 0
			for len(out) < max && next < len(chunks) && (filled < requested || len(out) == 0) {
				out = append(out, rav.SegmentFromBytes(chunks[next]))
				filled += len(chunks[next])
				next++
			}
			return out, nil
		},
		Size: func() uint64 { return total },
	})
}

// vim: foldmethod=marker
