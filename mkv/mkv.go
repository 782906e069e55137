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

// Package mkv demuxes Matroska and WebM containers. Importing the package
// registers the format; streams opened through rav.OpenInput that start
// with the EBML magic are routed here.
//
// The demuxer walks the EBML element tree strictly forward: structural
// elements (Segment, Cluster, BlockGroup) are descended into, blocks
// become packets, and everything else is discarded without being
// buffered. Lacing is not interpreted; a laced block comes back as one
// packet carrying the whole block payload.
package mkv

import (
	"errors"

	"hz.tools/rav"
)

// Element IDs, as they appear in the Matroska specification.
const (
	idEBML        = 0x1A45DFA3
	idSegment     = 0x18538067
	idCluster     = 0x1F43B675
	idTimestamp   = 0xE7
	idSimpleBlock = 0xA3
	idBlockGroup  = 0xA0
	idBlock       = 0xA1
)

func init() {
	rav.RegisterFormat("matroska", Probe, Open)
}

// Probe will report whether the leading bytes of a stream carry the EBML
// magic number.
func Probe(header []byte) bool {
	return len(header) >= 4 &&
		header[0] == 0x1A && header[1] == 0x45 &&
		header[2] == 0xDF && header[3] == 0xA3
}

// Open will construct the Matroska demuxer. The probe already consumed
// the 4 byte EBML magic, so what is left on the stream is the EBML head
// element's size; its payload (doctype, versions) is read and discarded
// here, leaving the cursor on the Segment element.
func Open(s *rav.Stream, header *rav.SegRef) (rav.Demuxer, error) {
	header.Release()

	size, _, err := readVInt(s)
	if err != nil {
		return nil, err
	}
	if size == sizeUnknown {
		return nil, rav.DecodeError("EBML head with unknown size")
	}
	if err := discard(s, int(size)); err != nil {
		return nil, err
	}

	return &demuxer{stream: s}, nil
}

type demuxer struct {
	stream *rav.Stream

	// clusterTime is the timestamp of the enclosing Cluster; block
	// timestamps are signed offsets from it.
	clusterTime uint64
}

// ReadPacket will walk elements forward until the next block and return
// its payload. io.EOF from the Supplier surfaces here when the container
// is exhausted.
func (d *demuxer) ReadPacket(p *rav.Packet) error {
	p.Clear()

	for {
		id, err := readElementID(d.stream)
		if err != nil {
			return err
		}
		size, _, err := readVInt(d.stream)
		if err != nil {
			return err
		}

		switch id {
		case idSegment, idCluster, idBlockGroup:
			// Structural elements: walk straight into their children.
			continue

		case idTimestamp:
			if size == sizeUnknown {
				return rav.DecodeError("cluster timestamp with unknown size")
			}
			ts, err := readUint(d.stream, int(size))
			if err != nil {
				return err
			}
			d.clusterTime = ts

		case idSimpleBlock, idBlock:
			if size == sizeUnknown {
				return rav.DecodeError("block with unknown size")
			}
			return d.readBlock(p, int(size))

		default:
			if size == sizeUnknown {
				return rav.DecodeError("non-structural element with unknown size")
			}
			if err := discard(d.stream, int(size)); err != nil {
				return err
			}
		}
	}
}

// readBlock parses a (Simple)Block body of the given size into p: track
// number vint, 2 byte signed timestamp offset, flags, then the payload.
func (d *demuxer) readBlock(p *rav.Packet, size int) error {
	track, n, err := readVInt(d.stream)
	if err != nil {
		return err
	}

	var head rav.SegRef
	if err := readRange(d.stream, &head, 3); err != nil {
		return err
	}
	b := head.Bytes()
	offset := int16(uint16(b[0])<<8 | uint16(b[1]))
	head.Release()

	payload := size - n - 3
	if payload <= 0 {
		return rav.DecodeError("block too short for its headers")
	}

	p.Track = int(track)
	p.Timestamp = int64(d.clusterTime) + int64(offset)

	var ref rav.SegRef
	if err := readRange(d.stream, &ref, payload); err != nil {
		return err
	}
	return p.Push(&ref)
}

// readRange services the supply handshake around Stream.ReadRange: on
// ErrRetryLater it asks the Supplier for the shortfall and tries again,
// and anything else (including the Supplier's io.EOF) comes back as is.
func readRange(s *rav.Stream, out *rav.SegRef, n int) error {
	for {
		err := s.ReadRange(out, n)
		if !errors.Is(err, rav.ErrRetryLater) {
			return err
		}
		if err := s.Refill(n - s.Buffered()); err != nil {
			return err
		}
	}
}

// discard consumes and drops n bytes, refilling as needed. Reads are cut
// along what is buffered so no discard ever allocates a stitch bigger
// than the ring.
func discard(s *rav.Stream, n int) error {
	var ref rav.SegRef
	for n > 0 {
		avail := s.Buffered()
		if avail == 0 {
			if err := s.Refill(1); err != nil {
				return err
			}
			continue
		}
		chunk := n
		if chunk > avail {
			chunk = avail
		}
		if err := s.ReadRange(&ref, chunk); err != nil {
			return err
		}
		ref.Release()
		n -= chunk
	}
	return nil
}

// vim: foldmethod=marker
