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

// The rav-play command is the playback pipeline skeleton: one goroutine
// demuxes packets off the source stream and fans them out over channels
// to an audio and a video consumer, which stand in for decoders. It is
// the intended deployment shape of the core -- the stream stays on the
// demux goroutine, consumers only ever touch packets, and releasing a
// packet is what lets the ring recycle its buffers.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

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
}

var rootCmd = &cobra.Command{
	Use:          "rav-play <media-file>",
	Short:        "Demux a media file through the playback pipeline",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(rawCmd *cobra.Command, args []string) error {
		return run(cmd, args[0])
	},
}

func init() {
	rootCmd.Flags().StringVarP(&cmd.SegmentSize, "segment-size", "s", "64KB", "I/O buffer segment size")
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

	log.Infow("opened input", "path", path, "format", format.Name())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	videoCh := make(chan *rav.Packet, 4)
	audioCh := make(chan *rav.Packet, 4)

	wg, ctx := errgroup.WithContext(ctx)

	wg.Go(func() error {
		defer close(videoCh)
		defer close(audioCh)
		return demux(ctx, log, format, videoCh, audioCh)
	})
	wg.Go(func() error {
		return consume(log, "video", videoCh, 10*time.Millisecond)
	})
	wg.Go(func() error {
		return consume(log, "audio", audioCh, 3*time.Millisecond)
	})

	if err := wg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// demux pulls packets off the stream and routes them to the consumers.
// Until codec parameters are wired up, even track numbers play as video
// and odd ones as audio.
func demux(ctx context.Context, log *zap.SugaredLogger, format *rav.Format, videoCh, audioCh chan<- *rav.Packet) error {
	retry := backoff.ExponentialBackOff{
		InitialInterval:     backoff.DefaultInitialInterval,
		RandomizationFactor: backoff.DefaultRandomizationFactor,
		Multiplier:          backoff.DefaultMultiplier,
		MaxInterval:         time.Second,
		Clock:               backoff.SystemClock,
	}
	retry.Reset()

	for {
		packet := new(rav.Packet)

		err := format.ReadPacket(packet)
		switch {
		case errors.Is(err, io.EOF):
			log.Info("stream exhausted")
			return nil
		case errors.Is(err, rav.ErrRetryLater):
			wait := retry.NextBackOff()
			log.Debugw("stream starved, backing off", "wait", wait)
			select {
			case <-time.After(wait):
				continue
			case <-ctx.Done():
				return ctx.Err()
			}
		case err != nil:
			return err
		}
		retry.Reset()

		ch := videoCh
		if packet.Track%2 == 1 {
			ch = audioCh
		}
		select {
		case ch <- packet:
		case <-ctx.Done():
			packet.Clear()
			return ctx.Err()
		}
	}
}

// consume drains one elementary stream, standing in for a decoder.
// Clearing the packet is what hands its buffers back to the ring.
func consume(log *zap.SugaredLogger, name string, packets <-chan *rav.Packet, perPacket time.Duration) error {
	for packet := range packets {
		time.Sleep(perPacket)
		log.Infow("packet decoded",
			"stream", name,
			"track", packet.Track,
			"timestamp", packet.Timestamp,
			"bytes", packet.Len(),
		)
		packet.Clear()
	}
	return nil
}

// vim: foldmethod=marker
