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

// Demuxer is a container-specific parser bound to a Stream. It only ever
// talks to the stream through the Reader operations.
type Demuxer interface {
	// ReadPacket will parse the next compressed packet out of the stream
	// into p, clearing whatever p held before.
	ReadPacket(p *Packet) error
}

// probeLen is how many leading bytes of the stream are consumed to decide
// the container format before any demuxer is constructed.
const probeLen = 4

// A format is one registered container: a sniffer over the probe bytes
// and a constructor. The constructor receives the probe bytes as a SegRef
// (they are already consumed from the stream) and owns releasing it.
type format struct {
	name  string
	probe func(header []byte) bool
	open  func(s *Stream, header *SegRef) (Demuxer, error)
}

var formats []format

// RegisterFormat registers a container format for use by OpenInput. It is
// typically called from the init function of a demuxer subpackage, so
// importing the subpackage is all it takes to make the format known.
func RegisterFormat(name string, probe func(header []byte) bool, open func(s *Stream, header *SegRef) (Demuxer, error)) {
	formats = append(formats, format{name: name, probe: probe, open: open})
}

// Format binds a probed Demuxer to the Stream it was probed from. It is
// plain glue: ReadPacket goes straight to the bound demuxer and its result
// comes straight back.
type Format struct {
	stream  *Stream
	demuxer Demuxer
	name    string
}

// OpenInput will open uri through the Supplier, pull the first bytes of
// the stream, and try each registered format in registration order. The
// winning format's demuxer is constructed and bound; if nothing matches,
// ErrUnsupported is returned.
func OpenInput(uri string, supplier Supplier) (*Format, error) {
	s := NewStream(supplier)
	if err := s.Open(uri); err != nil {
		return nil, err
	}
	if err := s.Refill(probeLen); err != nil {
		return nil, err
	}

	var header SegRef
	if err := s.ReadRange(&header, probeLen); err != nil {
		return nil, err
	}

	for _, f := range formats {
		if !f.probe(header.Bytes()) {
			continue
		}
		demuxer, err := f.open(s, &header)
		if err != nil {
			return nil, err
		}
		return &Format{stream: s, demuxer: demuxer, name: f.name}, nil
	}

	header.Release()
	return nil, UnsupportedError("unknown container format")
}

// Name will return the name the matched format was registered under.
func (f *Format) Name() string {
	return f.name
}

// Stream will return the underlying source stream, mostly so callers can
// inspect Pos and Size.
func (f *Format) Stream() *Stream {
	return f.stream
}

// ReadPacket will route the call to the bound demuxer, unchanged in both
// directions.
func (f *Format) ReadPacket(p *Packet) error {
	return f.demuxer.ReadPacket(p)
}

// vim: foldmethod=marker
