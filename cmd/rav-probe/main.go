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

// The rav-probe command opens a media file, reports which container it
// carries, and dumps the packets it demuxes.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/c2h5oh/datasize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hz.tools/rav"
	"hz.tools/rav/file"

	_ "hz.tools/rav/mkv"
	_ "hz.tools/rav/mpegts"
)

var cmd Cmd

// Cmd is the command line arguments.
type Cmd struct {
	// SegmentSize is the I/O buffer segment size, as a human readable
	// size string.
	SegmentSize string

	// MaxPackets stops the dump after this many packets; 0 dumps them
	// all.
	MaxPackets int
}

var rootCmd = &cobra.Command{
	Use:          "rav-probe <media-file>",
	Short:        "Probe a media file and dump its packets",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(rawCmd *cobra.Command, args []string) error {
		return run(cmd, args[0])
	},
}

func init() {
	rootCmd.Flags().StringVarP(&cmd.SegmentSize, "segment-size", "s", "64KB", "I/O buffer segment size")
	rootCmd.Flags().IntVarP(&cmd.MaxPackets, "max-packets", "n", 0, "stop after this many packets (0 = all)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Printf("ERROR: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd Cmd, path string) error {
	config := zap.NewDevelopmentConfig()
	config.Development = false

	logger, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	var segmentSize datasize.ByteSize
	if err := segmentSize.UnmarshalText([]byte(cmd.SegmentSize)); err != nil {
		return fmt.Errorf("bad segment size %q: %w", cmd.SegmentSize, err)
	}

	supplier := file.New(int(segmentSize.Bytes()))
	format, err := rav.OpenInput(path, supplier)
	if err != nil {
		return err
	}
	defer supplier.Close()

	log.Infow("opened input",
		"path", path,
		"format", format.Name(),
		"size", format.Stream().Size(),
		"segment_size", segmentSize.HR(),
	)

	var packet rav.Packet
	defer packet.Clear()

	count := 0
	for {
		if err := format.ReadPacket(&packet); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		count++

		log.Infow("packet",
			"n", count,
			"track", packet.Track,
			"timestamp", packet.Timestamp,
			"bytes", packet.Len(),
			"refs", packet.Refs(),
		)

		if cmd.MaxPackets > 0 && count >= cmd.MaxPackets {
			break
		}
	}

	log.Infow("done", "packets", count, "bytes", format.Stream().Pos())
	return nil
}

// vim: foldmethod=marker
