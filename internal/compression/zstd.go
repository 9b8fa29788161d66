// Package compression wraps zstd for blob storage.
package compression

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// minSize is the smallest input worth compressing.
const minSize = 128

// Every encoded blob starts with one of these bytes.
const (
	kindRaw  byte = 0
	kindZstd byte = 1
)

var ErrCorrupt = errors.New("compression: corrupt blob")

type Compressor struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
	enabled bool
}

// NewCompressor returns a compressor for level 1 (fastest) to 3 (best).
// Level 0 disables compression; other values use the default level.
func NewCompressor(level int) (*Compressor, error) {
	if level == 0 {
		return &Compressor{enabled: false}, nil
	}

	var encoderLevel zstd.EncoderLevel
	switch level {
	case 1:
		encoderLevel = zstd.SpeedFastest
	case 2:
		encoderLevel = zstd.SpeedDefault
	case 3:
		encoderLevel = zstd.SpeedBetterCompression
	default:
		encoderLevel = zstd.SpeedDefault
	}

	encoder, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(encoderLevel),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return nil, err
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}

	return &Compressor{
		encoder: encoder,
		decoder: decoder,
		enabled: true,
	}, nil
}

// Compress encodes data, zstd-compressed unless it is small or does not
// shrink.
func (c *Compressor) Compress(data []byte) []byte {
	if c.enabled && len(data) >= minSize {
		out := c.encoder.EncodeAll(data, []byte{kindZstd})
		if len(out) < len(data)+1 {
			return out
		}
	}

	out := make([]byte, 0, len(data)+1)
	out = append(out, kindRaw)
	return append(out, data...)
}

// Decompress reverses Compress. It works whether or not compression is
// enabled on c.
func (c *Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrCorrupt
	}

	switch data[0] {
	case kindRaw:
		return data[1:], nil
	case kindZstd:
		dec := c.decoder
		if dec == nil {
			d, err := zstd.NewReader(nil)
			if err != nil {
				return nil, err
			}
			defer d.Close()
			dec = d
		}
		out, err := dec.DecodeAll(data[1:], nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %d", ErrCorrupt, data[0])
	}
}

func (c *Compressor) Close() error {
	if c.encoder != nil {
		c.encoder.Close()
	}
	if c.decoder != nil {
		c.decoder.Close()
	}
	return nil
}
