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

// Package mpegts demuxes MPEG transport streams. Importing the package
// registers the format; streams opened through rav.OpenInput whose first
// byte is the TS sync byte are routed here.
//
// Every 188 byte transport packet becomes one rav.Packet carrying the
// whole packet including its 4 byte header, with Track set to the PID.
// PES reassembly is left to the consumer.
package mpegts

import (
	"errors"

	"hz.tools/rav"
)

const (
	// PacketSize is the fixed size of a transport packet on the wire.
	PacketSize = 188

	// SyncByte opens every transport packet.
	SyncByte = 0x47
)

func init() {
	rav.RegisterFormat("mpegts", Probe, Open)
}

// Probe will report whether the stream starts on a transport packet
// boundary.
func Probe(header []byte) bool {
	return len(header) > 0 && header[0] == SyncByte
}

// Open will construct the transport stream demuxer. The probe bytes are
// the first bytes of the first transport packet, so they are kept and
// stitched back onto that packet's first read.
func Open(s *rav.Stream, header *rav.SegRef) (rav.Demuxer, error) {
	d := &demuxer{stream: s}
	d.header = *header
	*header = rav.SegRef{}
	return d, nil
}

// PID will extract the packet identifier out of a raw transport packet.
func PID(packet []byte) uint16 {
	return uint16(packet[1]&0x1F)<<8 | uint16(packet[2])
}

type demuxer struct {
	stream *rav.Stream

	// header holds the probe bytes until the first ReadPacket claims them.
	header rav.SegRef
}

// ReadPacket will return the next 188 byte transport packet. io.EOF from
// the Supplier surfaces here when the stream is exhausted.
func (d *demuxer) ReadPacket(p *rav.Packet) error {
	p.Clear()

	if d.header.Len() > 0 {
		rest := PacketSize - d.header.Len()
		if err := p.Push(&d.header); err != nil {
			return err
		}
		var ref rav.SegRef
		if err := readRange(d.stream, &ref, rest); err != nil {
			return err
		}
		if err := p.Push(&ref); err != nil {
			ref.Release()
			return err
		}
	} else {
		var ref rav.SegRef
		if err := readRange(d.stream, &ref, PacketSize); err != nil {
			return err
		}
		if err := p.Push(&ref); err != nil {
			ref.Release()
			return err
		}
		if p.Data()[0] != SyncByte {
			return rav.DecodeError("transport packet sync byte lost")
		}
	}

	p.Track = int(PID(p.Data()))
	return nil
}

// readRange services the supply handshake around Stream.ReadRange,
// asking the Supplier for the shortfall on ErrRetryLater and passing
// everything else through.
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

// vim: foldmethod=marker
