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

package rav_test

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hz.tools/rav"
	"hz.tools/rav/mock"
)

// fakeDemuxer turns every remaining chunk of the stream into one packet of
// fixed size.
type fakeDemuxer struct {
	stream *rav.Stream
	size   int
}

func (d *fakeDemuxer) ReadPacket(p *rav.Packet) error {
	p.Clear()
	var ref rav.SegRef
	for {
		err := d.stream.ReadRange(&ref, d.size)
		if errors.Is(err, rav.ErrRetryLater) {
			if err := d.stream.Refill(d.size); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
		return p.Push(&ref)
	}
}

var registerFake sync.Once

func registerFakeFormat() {
	registerFake.Do(func() {
		rav.RegisterFormat("fake",
			func(header []byte) bool {
				return bytes.Equal(header, []byte("FAKE"))
			},
			func(s *rav.Stream, header *rav.SegRef) (rav.Demuxer, error) {
				header.Release()
				return &fakeDemuxer{stream: s, size: 4}, nil
			})
	})
}

func TestOpenInputProbesFormat(t *testing.T) {
	registerFakeFormat()

	f, err := rav.OpenInput("fake://", mock.Chunks([]byte("FAKEabcd"), []byte("efgh")))
	require.NoError(t, err)
	assert.Equal(t, "fake", f.Name())
	assert.Equal(t, uint64(12), f.Stream().Size())

	var p rav.Packet
	require.NoError(t, f.ReadPacket(&p))
	assert.Equal(t, []byte("abcd"), p.Data())
	require.NoError(t, f.ReadPacket(&p))
	assert.Equal(t, []byte("efgh"), p.Data())
	p.Clear()
}

func TestOpenInputUnknownFormat(t *testing.T) {
	registerFakeFormat()

	_, err := rav.OpenInput("fake://", mock.Chunks([]byte("NOPEnope")))
	assert.ErrorIs(t, err, rav.ErrUnsupported)
}

func TestOpenInputOpenError(t *testing.T) {
	boom := assert.AnError
	sup := mock.New(mock.Config{
		Open: func(uri string) error { return boom },
	})
	_, err := rav.OpenInput("nope://", sup)
	assert.ErrorIs(t, err, boom)
}

// vim: foldmethod=marker
