package hgt

import (
	"encoding/binary"
	"io"
)

type encoder struct {
	w io.Writer
	n int64
}

func (e *encoder) encode(extent int, samples []int16) error {
	row := make([]byte, extent*sampleBytes)
	for y := 0; y < extent; y++ {
		for x, v := range samples[y*extent : (y+1)*extent] {
			binary.BigEndian.PutUint16(row[x*sampleBytes:], uint16(v))
		}
		n, err := e.w.Write(row)
		e.n += int64(n)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteTo writes the tile in .hgt layout: big-endian samples, row-major,
// top row first.
func (t *Tile) WriteTo(w io.Writer) (int64, error) {
	e := encoder{w: w}
	err := e.encode(int(t.Extent()), t.samples)
	return e.n, err
}
