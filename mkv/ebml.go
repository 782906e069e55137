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

package mkv

import (
	"math/bits"

	"hz.tools/rav"
)

// sizeUnknown is returned by readVInt for the all-ones encoding EBML uses
// to mark an element whose size is not known up front.
const sizeUnknown = ^uint64(0)

// readVInt reads an EBML variable-length integer with the width marker bit
// cleared, the encoding element sizes use. The first byte's leading zeros
// give the total width; the remaining bytes follow big-endian.
func readVInt(r rav.Reader) (uint64, int, error) {
	first, err := r.ReadByte()
	if err != nil {
		return 0, 0, err
	}

	width := bits.LeadingZeros8(first)
	if width >= 8 {
		return 0, 0, rav.DecodeError("vint width marker is 8 or more")
	}

	value := uint64(first & (0xFF >> (width + 1)))
	for i := 0; i < width; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, 0, err
		}
		value = value<<8 | uint64(b)
	}

	// All value bits set means "size unknown".
	if value == uint64(1)<<(7*(width+1))-1 {
		return sizeUnknown, width + 1, nil
	}
	return value, width + 1, nil
}

// readElementID reads an EBML element ID: the same leading-zeros width
// scheme, but the marker bit is kept, so the ID compares against the
// values as they appear in the Matroska specification.
func readElementID(r rav.Reader) (uint32, error) {
	first, err := r.ReadByte()
	if err != nil {
		return 0, err
	}

	width := bits.LeadingZeros8(first)
	if width >= 4 {
		return 0, rav.DecodeError("element id wider than 4 bytes")
	}

	id := uint32(first)
	for i := 0; i < width; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		id = id<<8 | uint32(b)
	}
	return id, nil
}

// readUint reads an n byte big-endian unsigned integer, the encoding EBML
// uses for integer element payloads.
func readUint(r rav.Reader, n int) (uint64, error) {
	if n < 1 || n > 8 {
		return 0, rav.DecodeError("integer element wider than 8 bytes")
	}
	var value uint64
	for i := 0; i < n; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		value = value<<8 | uint64(b)
	}
	return value, nil
}

// vim: foldmethod=marker
