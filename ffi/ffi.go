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

// The ffi command builds as a C shared library (go build
// -buildmode=c-shared) exposing the demuxer to other languages.
//
// Handles returned through the out parameters are opaque pointers whose
// lifetime belongs to the caller: every rav_open_input pairs with a
// rav_close_input, every rav_packet_new with a rav_packet_free. All entry
// points return 0 on success, -1 on invalid arguments and -2 when the
// operation itself failed.
package main

// #include <stdlib.h>
import "C"

import (
	"log"
	"unsafe"

	"github.com/mattn/go-pointer"

	"hz.tools/rav"
	"hz.tools/rav/file"

	_ "hz.tools/rav/mkv"
	_ "hz.tools/rav/mpegts"
)

//export rav_open_input
func rav_open_input(formatCtx *unsafe.Pointer, path *C.char) C.int {
	if formatCtx == nil || path == nil {
		return -1
	}

	format, err := rav.OpenInput(C.GoString(path), file.New(0))
	if err != nil {
		log.Printf("rav: open input: %v", err)
		return -2
	}

	*formatCtx = pointer.Save(format)
	return 0
}

//export rav_close_input
func rav_close_input(formatCtx unsafe.Pointer) C.int {
	if formatCtx == nil {
		return -1
	}
	pointer.Unref(formatCtx)
	return 0
}

//export rav_packet_new
func rav_packet_new(packet *unsafe.Pointer) C.int {
	if packet == nil {
		return -1
	}
	*packet = pointer.Save(&rav.Packet{})
	return 0
}

//export rav_packet_free
func rav_packet_free(packet unsafe.Pointer) C.int {
	if packet == nil {
		return -1
	}
	p, ok := pointer.Restore(packet).(*rav.Packet)
	if !ok {
		return -1
	}
	p.Clear()
	pointer.Unref(packet)
	return 0
}

//export rav_read_packet
func rav_read_packet(formatCtx unsafe.Pointer, packet unsafe.Pointer) C.int {
	if formatCtx == nil || packet == nil {
		return -1
	}

	format, ok := pointer.Restore(formatCtx).(*rav.Format)
	if !ok {
		return -1
	}
	p, ok := pointer.Restore(packet).(*rav.Packet)
	if !ok {
		return -1
	}

	if err := format.ReadPacket(p); err != nil {
		return -2
	}
	return 0
}

func main() {}

// vim: foldmethod=marker
