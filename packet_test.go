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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hz.tools/rav"
)

func TestPacketPushTransfersOwnership(t *testing.T) {
	s := rav.NewStream(nil)
	seg := rav.SegmentFromBytes([]byte("abcdef"))
	require.NoError(t, s.AddSegment(seg))

	var p rav.Packet
	var ref rav.SegRef
	require.NoError(t, s.ReadRange(&ref, 3))
	require.NoError(t, p.Push(&ref))

	// The caller's ref was stolen; the packet holds the pin now.
	assert.Equal(t, 0, ref.Len())
	assert.True(t, seg.Pinned())
	assert.Equal(t, 1, p.Refs())
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, []byte("abc"), p.Data())

	p.Clear()
	assert.False(t, seg.Pinned())
	assert.Equal(t, 0, p.Refs())
	assert.Equal(t, 0, p.Len())
	assert.Nil(t, p.Data())
}

func TestPacketPushEmptyRef(t *testing.T) {
	var p rav.Packet
	var ref rav.SegRef
	assert.ErrorIs(t, p.Push(&ref), rav.ErrInvalidInput)
}

func TestPacketDataMergesRefs(t *testing.T) {
	s := rav.NewStream(nil)
	require.NoError(t, s.AddSegment(rav.SegmentFromBytes([]byte("abc"))))
	require.NoError(t, s.AddSegment(rav.SegmentFromBytes([]byte("def"))))

	var p rav.Packet
	var ref rav.SegRef
	require.NoError(t, s.ReadRange(&ref, 3))
	require.NoError(t, p.Push(&ref))
	require.NoError(t, s.ReadRange(&ref, 3))
	require.NoError(t, p.Push(&ref))

	assert.Equal(t, 2, p.Refs())
	assert.Equal(t, 6, p.Len())
	assert.Equal(t, []byte("abcdef"), p.Data())

	// The merge is cached, not rebuilt.
	first := p.Data()
	assert.Equal(t, &first[0], &p.Data()[0])

	p.Clear()
}

func TestPacketRefLimit(t *testing.T) {
	s := rav.NewStream(nil)
	require.NoError(t, s.AddSegment(rav.SegmentFromBytes([]byte("abcdefgh"))))

	var p rav.Packet
	var ref rav.SegRef
	for i := 0; i < rav.PacketMaxRefs; i++ {
		require.NoError(t, s.ReadRange(&ref, 1))
		require.NoError(t, p.Push(&ref))
	}

	require.NoError(t, s.ReadRange(&ref, 1))
	err := p.Push(&ref)
	assert.ErrorIs(t, err, rav.ErrLimit)

	// The rejected ref stays with the caller.
	assert.Equal(t, 1, ref.Len())
	ref.Release()
	p.Clear()
}

// vim: foldmethod=marker
