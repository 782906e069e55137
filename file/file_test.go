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

package file_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hz.tools/rav"
	"hz.tools/rav/file"
)

func tempFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stream.bin")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestSupplierOpen(t *testing.T) {
	path := tempFile(t, []byte("hello world"))

	sup := file.New(16)
	require.NoError(t, sup.Open(path))
	defer sup.Close()
	assert.Equal(t, uint64(11), sup.Size())

	// file:// uris work too.
	sup2 := file.New(16)
	require.NoError(t, sup2.Open("file://"+path))
	defer sup2.Close()
	assert.Equal(t, uint64(11), sup2.Size())

	sup3 := file.New(16)
	assert.Error(t, sup3.Open(filepath.Join(t.TempDir(), "missing")))
}

func TestSupplierNotOpen(t *testing.T) {
	sup := file.New(16)
	_, err := sup.Supply(1, nil, 3)
	assert.ErrorIs(t, err, rav.ErrInvalidInput)
}

func TestStreamReadsWholeFile(t *testing.T) {
	content := bytes.Repeat([]byte("0123456789abcdef"), 37)
	path := tempFile(t, content)

	// Tiny segments force the stream through many supply rounds and
	// plenty of recycling.
	sup := file.New(32)
	s := rav.NewStream(sup)
	require.NoError(t, s.Open(path))
	defer sup.Close()
	assert.Equal(t, uint64(len(content)), s.Size())

	var got []byte
	for {
		b, err := s.ReadByte()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, b)
	}
	assert.Equal(t, content, got)
	assert.Equal(t, uint64(len(content)), s.Pos())
}

func TestStreamRangeReadsFromFile(t *testing.T) {
	content := bytes.Repeat([]byte("x"), 100)
	copy(content, "prefix")
	path := tempFile(t, content)

	sup := file.New(64)
	s := rav.NewStream(sup)
	require.NoError(t, s.Open(path))
	defer sup.Close()

	require.NoError(t, s.Refill(6))

	var ref rav.SegRef
	require.NoError(t, s.ReadRange(&ref, 6))
	assert.True(t, ref.Shared())
	assert.Equal(t, []byte("prefix"), ref.Bytes())
	ref.Release()
}

func TestSupplyObservesSlotBudget(t *testing.T) {
	path := tempFile(t, bytes.Repeat([]byte("y"), 1024))

	sup := file.New(8)
	require.NoError(t, sup.Open(path))
	defer sup.Close()

	segs, err := sup.Supply(1024, nil, 2)
	require.NoError(t, err)
	assert.Len(t, segs, 2)
	for _, seg := range segs {
		assert.Equal(t, 8, seg.Len())
	}
}

func TestSupplyEOF(t *testing.T) {
	path := tempFile(t, []byte("abc"))

	sup := file.New(8)
	require.NoError(t, sup.Open(path))
	defer sup.Close()

	segs, err := sup.Supply(16, nil, 3)
	require.NoError(t, err)
	require.Len(t, segs, 1)
	assert.Equal(t, []byte("abc"), segs[0].Bytes())

	_, err = sup.Supply(1, segs, 3)
	assert.ErrorIs(t, err, io.EOF)
}

// vim: foldmethod=marker
