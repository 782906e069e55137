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

// Package rav contains the fundamental types to demux media containers from
// a stream of shared byte segments without copying the payload.
//
// The heart of the package is the Stream, a fixed-size ring of immutable,
// reference-counted Segments. An external producer (a Supplier) pushes
// filled Segments into the ring, and a demuxer pulls single bytes or byte
// ranges back out. Range reads that fit inside one Segment hand back a
// SegRef that borrows the Segment's memory directly; ranges that cross a
// Segment boundary are stitched into a freshly owned slab. A borrowed
// SegRef pins its Segment in the ring until released, which is how the
// ring knows when a buffer may be recycled back to the producer.
//
// Nothing in this package blocks or performs I/O. When the ring cannot
// make progress it returns ErrRetryLater, and the caller decides whether
// to service the Supplier, wait, or go do other work. This keeps the core
// usable from a plain loop, a goroutine per stage, or a completion-queue
// driven producer alike.
//
// Container specific demuxers live in subpackages (mkv, mpegts) and
// register themselves the same way the image package's decoders do; a
// blank import is enough to make a format probeable through OpenInput.
package rav

// vim: foldmethod=marker
