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

import (
	"fmt"
)

var (
	// ErrRetryLater will be returned when an operation can not make progress
	// right now -- the ring is out of data, out of free slots, or every
	// recyclable Segment is still pinned. The caller should service the
	// Supplier and try again. A read that fails this way has not moved the
	// cursor; a short Refill keeps whatever Segments it did admit.
	ErrRetryLater error = fmt.Errorf("rav: no data, retry later")

	// ErrInvalidInput will be returned when the caller broke a precondition,
	// such as a zero-length range read or admitting a Segment with no
	// content. The stream is left untouched.
	ErrInvalidInput error = fmt.Errorf("rav: invalid input parameters")

	// ErrUnsupported will be returned when the stream contains a container
	// or codec feature this library does not implement. The core never
	// returns this; it is raised by demuxers and the probe logic.
	ErrUnsupported error = fmt.Errorf("rav: unsupported feature")

	// ErrDecode will be returned when the stream content itself is
	// malformed. The core never returns this; it is raised by demuxers.
	ErrDecode error = fmt.Errorf("rav: malformed stream")

	// ErrLimit will be returned when a safety bound was exceeded while
	// demuxing, such as a packet spanning more segments than a Packet can
	// hold. The core never returns this.
	ErrLimit error = fmt.Errorf("rav: limit reached")

	// ErrResetRequired will be returned when the demuxer must be
	// reinitialized before it can continue. The core never returns this.
	ErrResetRequired error = fmt.Errorf("rav: demuxer needs to be reset")
)

// DecodeError will wrap ErrDecode with a description of what exactly was
// malformed, so that errors.Is(err, ErrDecode) still matches.
func DecodeError(desc string) error {
	return fmt.Errorf("%w: %s", ErrDecode, desc)
}

// UnsupportedError will wrap ErrUnsupported with the name of the feature
// that is not implemented.
func UnsupportedError(feature string) error {
	return fmt.Errorf("%w: %s", ErrUnsupported, feature)
}

// LimitError will wrap ErrLimit with the constraint that was hit.
func LimitError(constraint string) error {
	return fmt.Errorf("%w: %s", ErrLimit, constraint)
}

// vim: foldmethod=marker
