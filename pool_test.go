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

func TestSegmentPool(t *testing.T) {
	pool, err := rav.NewSegmentPool(1024)
	require.NoError(t, err)
	require.NotNil(t, pool)

	seg := pool.Get()
	require.NotNil(t, seg)
	assert.Equal(t, 1024, seg.Cap())
	assert.Equal(t, 0, seg.Len())

	copy(seg.Buffer(), "hello")
	require.NoError(t, seg.SetLen(5))
	assert.Equal(t, []byte("hello"), seg.Bytes())

	pool.Put(seg)
	seg = pool.Get()
	require.NotNil(t, seg)
	assert.Equal(t, 1024, seg.Cap())
}

func TestSegmentPoolGuards(t *testing.T) {
	_, err := rav.NewSegmentPool(0)
	assert.ErrorIs(t, err, rav.ErrInvalidInput)
	_, err = rav.NewSegmentPool(-1)
	assert.ErrorIs(t, err, rav.ErrInvalidInput)

	pool, err := rav.NewSegmentPool(16)
	require.NoError(t, err)

	// Neither of these may enter the pool, and neither may panic.
	pool.Put(nil)
	pool.Put(rav.NewSegment(8))

	assert.Equal(t, 16, pool.Get().Cap())
}

// vim: foldmethod=marker
