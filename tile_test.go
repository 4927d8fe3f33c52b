package hgt

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	want := gradient(SRTM3)
	p := writeTile(t, t.TempDir(), "S35W138.hgt", want)

	tile, err := Open(p)
	require.NoError(t, err)

	assert.Equal(t, -35, tile.Latitude)
	assert.Equal(t, -138, tile.Longitude)
	assert.Equal(t, SRTM3, tile.Resolution)
	assert.Equal(t, uint32(1201), tile.Extent())
	assert.Equal(t, "S35W138", tile.Name())
	assert.Len(t, tile.samples, SRTM3.SampleCount())

	extent := tile.Extent()
	for y := uint32(0); y < extent; y += 97 {
		for x := uint32(0); x < extent; x += 89 {
			assert.Equal(t, want[y*extent+x], tile.Get(x, y))
		}
	}
	assert.Equal(t, want[0], tile.Get(0, 0))
	assert.Equal(t, want[1], tile.Get(1, 0))
	assert.Equal(t, want[extent], tile.Get(0, 1))
	assert.Equal(t, want[len(want)-1], tile.Get(extent-1, extent-1))
}

func TestOpen_ParseLatLong(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"N3E138.hgt", "North35East138.hgt", "N35E138.hgt.bak.hgt"} {
		p := writeTile(t, dir, name, gradient(SRTM3))
		_, err := Open(p)
		assert.ErrorIs(t, err, ErrParseLatLong, name)
		assert.NotErrorIs(t, err, ErrRead)
	}

	// the name is checked before the file is looked at
	_, err := Open(filepath.Join(dir, "missing.hgt"))
	assert.ErrorIs(t, err, ErrParseLatLong)
}

func TestOpen_Filesize(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "N35E138.hgt")
	require.NoError(t, os.WriteFile(p, make([]byte, 100), 0o644))

	_, err := Open(p)
	require.ErrorIs(t, err, ErrFilesize)

	var herr *Error
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, p, herr.Path)
	assert.Contains(t, err.Error(), "100 bytes")

	_, err = Open(filepath.Join(dir, "N36E138.hgt"))
	assert.ErrorIs(t, err, ErrFilesize)
}

func TestOpen_Read(t *testing.T) {
	p := writeTile(t, t.TempDir(), "N35E138.hgt", gradient(SRTM3))
	require.NoError(t, os.Chmod(p, 0o000))
	t.Cleanup(func() { os.Chmod(p, 0o644) })
	if f, err := os.Open(p); err == nil {
		f.Close()
		t.Skip("file permissions are not enforced for this user")
	}

	_, err := Open(p)
	assert.ErrorIs(t, err, ErrRead)
}

func TestDecodeTile_Truncated(t *testing.T) {
	raw := encodeSamples(gradient(SRTM3))
	tile, err := decodeTile(bytes.NewReader(raw[:len(raw)-7]), "N35E138.hgt", 35, 138, SRTM3)
	assert.ErrorIs(t, err, ErrRead)
	assert.Nil(t, tile)
}

func TestOpen_StrictHemispheres(t *testing.T) {
	p := writeTile(t, t.TempDir(), "X35E138.hgt", gradient(SRTM3))

	tile, err := Open(p)
	require.NoError(t, err)
	assert.Equal(t, -35, tile.Latitude)

	_, err = Open(p, WithStrictHemispheres())
	assert.ErrorIs(t, err, ErrParseLatLong)
}

func TestOpen_Logger(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	p := writeTile(t, t.TempDir(), "N35E138.hgt", gradient(SRTM3))
	_, err := Open(p, WithLogger(logger))
	require.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "decoding tile", entry.Message)
	assert.Equal(t, SRTM3, entry.Data["resolution"])
}

func TestNewTile(t *testing.T) {
	samples := make([]int16, SRTM1.SampleCount())
	tile, err := NewTile(35, 138, SRTM1, samples)
	require.NoError(t, err)
	assert.Len(t, tile.samples, 3601*3601)
	assert.Equal(t, uint32(3601), tile.Extent())

	samples[0] = 42
	assert.Equal(t, int16(0), tile.Get(0, 0), "grid must be copied")

	_, err = NewTile(35, 138, SRTM1, make([]int16, SRTM3.SampleCount()))
	assert.ErrorIs(t, err, ErrFilesize)
	_, err = NewTile(35, 138, SRTM3, nil)
	assert.ErrorIs(t, err, ErrFilesize)
}

func TestMaxHeight(t *testing.T) {
	samples := make([]int16, SRTM3.SampleCount())
	samples[1201*600+17] = 32000
	tile, err := NewTile(0, 0, SRTM3, samples)
	require.NoError(t, err)
	assert.Equal(t, int16(32000), tile.MaxHeight())

	for i := range samples {
		samples[i] = -5
	}
	tile, err = NewTile(0, 0, SRTM3, samples)
	require.NoError(t, err)
	assert.Equal(t, int16(-5), tile.MaxHeight())
}

func TestMinHeightAndVoids(t *testing.T) {
	samples := make([]int16, SRTM3.SampleCount())
	for i := range samples {
		samples[i] = 100
	}
	samples[5] = Void
	samples[6] = Void
	samples[7] = -12
	tile, err := NewTile(0, 0, SRTM3, samples)
	require.NoError(t, err)

	assert.Equal(t, int16(-12), tile.MinHeight())
	assert.Equal(t, int16(100), tile.MaxHeight())
	assert.Equal(t, 2, tile.Voids())

	for i := range samples {
		samples[i] = Void
	}
	tile, err = NewTile(0, 0, SRTM3, samples)
	require.NoError(t, err)
	assert.Equal(t, Void, tile.MinHeight())
	assert.Equal(t, SRTM3.SampleCount(), tile.Voids())
}

func TestGet_OutOfRange(t *testing.T) {
	tile, err := NewTile(0, 0, SRTM3, make([]int16, SRTM3.SampleCount()))
	require.NoError(t, err)
	extent := tile.Extent()

	assert.NotPanics(t, func() { tile.Get(extent-1, extent-1) })
	assert.Panics(t, func() { tile.Get(extent, 0) })
	assert.Panics(t, func() { tile.Get(0, extent) })
	assert.Panics(t, func() { tile.Get(extent, extent) })
}

func TestSamplesCopy(t *testing.T) {
	tile, err := NewTile(0, 0, SRTM3, gradient(SRTM3))
	require.NoError(t, err)

	s := tile.Samples()
	s[0] = 1234
	assert.NotEqual(t, int16(1234), tile.Get(0, 0))
}

func TestBounds(t *testing.T) {
	tile, err := NewTile(-35, 138, SRTM3, make([]int16, SRTM3.SampleCount()))
	require.NoError(t, err)

	assert.Equal(t, orb.Bound{Min: orb.Point{138, -35}, Max: orb.Point{139, -34}}, tile.Bounds())
}

func TestAt(t *testing.T) {
	samples := make([]int16, SRTM3.SampleCount())
	extent := int(SRTM3.Extent())
	// corners, then the centre
	samples[0] = 1
	samples[extent-1] = 2
	samples[(extent-1)*extent] = 3
	samples[extent*extent-1] = 4
	samples[600*extent+600] = 5
	tile, err := NewTile(35, 138, SRTM3, samples)
	require.NoError(t, err)

	tests := []struct {
		lat, lon float64
		want     int16
	}{
		{36, 138, 1},
		{36, 139, 2},
		{35, 138, 3},
		{35, 139, 4},
		{35.5, 138.5, 5},
		{35.5001, 138.4999, 5},
	}
	for _, tt := range tests {
		v, ok := tile.At(tt.lat, tt.lon)
		assert.True(t, ok, "%v,%v", tt.lat, tt.lon)
		assert.Equal(t, tt.want, v, "%v,%v", tt.lat, tt.lon)
	}

	_, ok := tile.At(34.9, 138.5)
	assert.False(t, ok)
	_, ok = tile.At(35.5, 139.1)
	assert.False(t, ok)
}

func TestWriteTo(t *testing.T) {
	want := gradient(SRTM3)
	tile, err := NewTile(35, 138, SRTM3, want)
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := tile.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, SRTM3.ByteLength(), n)
	assert.Equal(t, encodeSamples(want), buf.Bytes())
}
