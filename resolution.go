package hgt

import "fmt"

// Resolution is the sampling grade of a tile.
type Resolution uint8

const (
	/*
	 * SRTM1: sampled at one arc-second lat/long intervals,
	 * 3601 lines, 3601 samples
	 */
	SRTM1 Resolution = iota + 1
	/*
	 * SRTM3: sampled at three arc-second lat/long intervals,
	 * 1201 lines, 1201 samples
	 */
	SRTM3
)

// sampleBytes is the on-disk size of one sample.
const sampleBytes = 2

type resolutionInfo struct {
	res        Resolution
	name       string
	extent     uint32
	arcSeconds int
}

// resolutions is the only place a grade is described. Adding a variant
// means adding a row here.
var resolutions = []resolutionInfo{
	{res: SRTM1, name: "SRTM1", extent: 3601, arcSeconds: 1},
	{res: SRTM3, name: "SRTM3", extent: 1201, arcSeconds: 3},
}

func (r Resolution) info() resolutionInfo {
	for _, ri := range resolutions {
		if ri.res == r {
			return ri
		}
	}
	panic(fmt.Sprintf("hgt: unknown resolution %d", uint8(r)))
}

// Extent is the side length of the square grid.
func (r Resolution) Extent() uint32 {
	return r.info().extent
}

// SampleCount is Extent squared.
func (r Resolution) SampleCount() int {
	e := int(r.Extent())
	return e * e
}

// ByteLength is the exact size of a .hgt file of this grade.
func (r Resolution) ByteLength() int64 {
	return int64(r.SampleCount()) * sampleBytes
}

// ArcSeconds is the sample spacing.
func (r Resolution) ArcSeconds() int {
	return r.info().arcSeconds
}

func (r Resolution) String() string {
	for _, ri := range resolutions {
		if ri.res == r {
			return ri.name
		}
	}
	return fmt.Sprintf("Resolution(%d)", uint8(r))
}

// DetectResolution maps the total byte length of a .hgt file to its
// grade. Only exact matches are accepted.
func DetectResolution(size int64) (Resolution, bool) {
	for _, ri := range resolutions {
		if ri.res.ByteLength() == size {
			return ri.res, true
		}
	}
	return 0, false
}
