package hgt

import (
	"encoding/binary"
	"fmt"
	"io"
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// Decode reads extent*extent big-endian samples from r in row-major
// order, top row first. Bytes after the last sample are left unread.
func Decode(r io.Reader, res Resolution) ([]int16, error) {
	extent := int(res.Extent())
	samples := make([]int16, res.SampleCount())

	row := make([]byte, extent*sampleBytes)
	for y := 0; y < extent; y++ {
		if err := readFull(r, row); err != nil {
			return nil, fmt.Errorf("row %d: %w", y, err)
		}
		off := y * extent
		for x := 0; x < extent; x++ {
			samples[off+x] = int16(binary.BigEndian.Uint16(row[x*sampleBytes:]))
		}
	}

	return samples, nil
}
