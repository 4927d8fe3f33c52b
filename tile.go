package hgt

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"
)

// Void marks a sample with no elevation data.
const Void int16 = math.MinInt16

// Tile is one decoded 1°x1° cell. It is immutable once built and safe
// for concurrent readers.
type Tile struct {
	Latitude   int
	Longitude  int
	Resolution Resolution

	samples []int16
}

// NewTile builds a tile from an in-memory grid in row-major order. The
// grid is copied and must hold exactly Extent squared samples.
func NewTile(lat, lon int, res Resolution, samples []int16) (*Tile, error) {
	if len(samples) != res.SampleCount() {
		return nil, newError(ErrFilesize, "", fmt.Errorf("%d samples for %s, want %d", len(samples), res, res.SampleCount()))
	}
	data := make([]int16, len(samples))
	copy(data, samples)
	return &Tile{
		Latitude:   lat,
		Longitude:  lon,
		Resolution: res,
		samples:    data,
	}, nil
}

// Open decodes the .hgt file at path. The origin is taken from the file
// name and the resolution from the file size; content is only read
// once both are known.
func Open(path string, opts ...Option) (*Tile, error) {
	o := newOptions(opts)
	log := o.logger.WithField("path", path)

	lat, lon, err := o.parseCoordinates(stem(path))
	if err != nil {
		return nil, newError(ErrParseLatLong, path, err)
	}

	fi, err := os.Stat(path)
	if err != nil {
		return nil, newError(ErrFilesize, path, err)
	}
	res, ok := DetectResolution(fi.Size())
	if !ok {
		return nil, newError(ErrFilesize, path, fmt.Errorf("%d bytes", fi.Size()))
	}
	log.WithFields(logrus.Fields{"lat": lat, "lon": lon, "resolution": res}).Debug("decoding tile")

	f, err := os.Open(path)
	if err != nil {
		return nil, newError(ErrRead, path, err)
	}
	defer f.Close()

	return decodeTile(bufio.NewReader(f), path, lat, lon, res)
}

func decodeTile(r io.Reader, path string, lat, lon int, res Resolution) (*Tile, error) {
	samples, err := Decode(r, res)
	if err != nil {
		return nil, newError(ErrRead, path, err)
	}
	return &Tile{
		Latitude:   lat,
		Longitude:  lon,
		Resolution: res,
		samples:    samples,
	}, nil
}

// Extent is the side length of the grid.
func (t *Tile) Extent() uint32 {
	return t.Resolution.Extent()
}

// MaxHeight is the largest sample in the grid.
func (t *Tile) MaxHeight() int16 {
	max := t.samples[0]
	for _, v := range t.samples[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// MinHeight is the smallest non-void sample, or Void if the tile has no
// data at all.
func (t *Tile) MinHeight() int16 {
	min := Void
	for _, v := range t.samples {
		if v == Void {
			continue
		}
		if min == Void || v < min {
			min = v
		}
	}
	return min
}

// Voids counts samples without data.
func (t *Tile) Voids() int {
	n := 0
	for _, v := range t.samples {
		if v == Void {
			n++
		}
	}
	return n
}

// Get returns the sample at column x, row y. It panics if either index
// is outside the grid.
func (t *Tile) Get(x, y uint32) int16 {
	return t.samples[t.idx(x, y)]
}

func (t *Tile) idx(x, y uint32) int {
	extent := t.Extent()
	if x >= extent || y >= extent {
		panic(fmt.Sprintf("hgt: sample (%d, %d) out of range for extent %d", x, y, extent))
	}
	return int(y)*int(extent) + int(x)
}

// Samples returns a copy of the grid in row-major order.
func (t *Tile) Samples() []int16 {
	out := make([]int16, len(t.samples))
	copy(out, t.samples)
	return out
}

// Name is the canonical file stem of the tile.
func (t *Tile) Name() string {
	return TileName(t.Latitude, t.Longitude)
}

// Bounds is the geographic cell covered by the tile.
func (t *Tile) Bounds() orb.Bound {
	return orb.Bound{
		Min: orb.Point{float64(t.Longitude), float64(t.Latitude)},
		Max: orb.Point{float64(t.Longitude + 1), float64(t.Latitude + 1)},
	}
}

// At returns the sample nearest to a point inside the tile. Row 0 is
// the northern edge, column 0 the western edge.
func (t *Tile) At(lat, lon float64) (int16, bool) {
	if !t.Bounds().Contains(orb.Point{lon, lat}) {
		return 0, false
	}
	x, y := t.colRow(lat, lon)
	return t.Get(x, y), true
}

func (t *Tile) colRow(lat, lon float64) (uint32, uint32) {
	span := float64(t.Extent() - 1)
	row := math.Round((float64(t.Latitude) + 1.0 - lat) * span)
	column := math.Round((lon - float64(t.Longitude)) * span)
	return uint32(column), uint32(row)
}
