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

// PacketMaxRefs is the most SegRefs one Packet can carry. A compressed
// packet whose payload would span more segments than this must be read
// with a single stitching ReadRange instead.
const PacketMaxRefs = 4

// Packet is one compressed media packet, assembled by a demuxer out of up
// to PacketMaxRefs segment references. Keeping the payload as refs means a
// packet that fell inside one Segment costs nothing to hand to a decoder.
//
// A Packet owns the refs pushed into it: Clear releases them all, and the
// merged cache along with them. The zero value is an empty Packet ready
// for use.
type Packet struct {
	// Track identifies the elementary stream this packet belongs to: the
	// track number for Matroska, the PID for MPEG-TS.
	Track int

	// Timestamp is the presentation time of the packet in container time
	// base units, when the container carries one.
	Timestamp int64

	refs   [PacketMaxRefs]SegRef
	n      int
	merged []byte
}

// Push will transfer ref into the Packet. On success the caller's ref is
// reset to its zero value and the Packet takes over releasing it. A full
// Packet returns ErrLimit and leaves ref with the caller.
func (p *Packet) Push(ref *SegRef) error {
	if ref.Len() == 0 {
		return ErrInvalidInput
	}
	if p.n == PacketMaxRefs {
		return LimitError("packet spans too many segments")
	}
	p.refs[p.n] = *ref
	p.n++
	p.merged = nil
	*ref = SegRef{}
	return nil
}

// Clear will release every ref held by the Packet and reset it to empty.
func (p *Packet) Clear() {
	for i := 0; i < p.n; i++ {
		p.refs[i].Release()
	}
	p.n = 0
	p.merged = nil
	p.Track = 0
	p.Timestamp = 0
}

// Len will return the total payload length in bytes.
func (p *Packet) Len() int {
	total := 0
	for i := 0; i < p.n; i++ {
		total += p.refs[i].Len()
	}
	return total
}

// Refs will return the number of segment references in the Packet.
func (p *Packet) Refs() int {
	return p.n
}

// Data will return the packet payload as one contiguous slice. A packet
// held in a single ref comes back as that ref's bytes; a multi-ref packet
// is merged into a slab once and the merge cached until the next Push or
// Clear.
func (p *Packet) Data() []byte {
	switch p.n {
	case 0:
		return nil
	case 1:
		return p.refs[0].Bytes()
	}
	if p.merged == nil {
		p.merged = make([]byte, 0, p.Len())
		for i := 0; i < p.n; i++ {
			p.merged = append(p.merged, p.refs[i].Bytes()...)
		}
	}
	return p.merged
}

// vim: foldmethod=marker
