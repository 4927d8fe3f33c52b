package hgt

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
)

const stemLength = 7

// ParseCoordinates reads the south-west corner of a tile from a file
// stem such as N35E138. Any hemisphere letter other than N or E counts
// as south or west. Values are not range checked.
func ParseCoordinates(stem string) (lat, lon int, err error) {
	return parseCoordinates(stem, false)
}

// ParseCoordinatesStrict is ParseCoordinates but only accepts N/S and
// E/W as hemisphere letters.
func ParseCoordinatesStrict(stem string) (lat, lon int, err error) {
	return parseCoordinates(stem, true)
}

func parseCoordinates(stem string, strict bool) (int, int, error) {
	if len(stem) != stemLength {
		return 0, 0, fmt.Errorf("%w: %q is not %d characters", ErrParseLatLong, stem, stemLength)
	}

	latSign, err := hemisphere(stem[0], 'N', 'S', strict)
	if err != nil {
		return 0, 0, err
	}
	lat, err := strconv.Atoi(stem[1:3])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: latitude %q", ErrParseLatLong, stem[1:3])
	}

	lonSign, err := hemisphere(stem[3], 'E', 'W', strict)
	if err != nil {
		return 0, 0, err
	}
	lon, err := strconv.Atoi(stem[4:7])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: longitude %q", ErrParseLatLong, stem[4:7])
	}

	return latSign * lat, lonSign * lon, nil
}

func hemisphere(c, positive, negative byte, strict bool) (int, error) {
	switch {
	case c == positive:
		return 1, nil
	case c == negative || !strict:
		return -1, nil
	}
	return 0, fmt.Errorf("%w: hemisphere %q", ErrParseLatLong, c)
}

// TileName is the canonical stem of the tile whose south-west corner is
// at lat, lon.
func TileName(lat, lon int) string {
	northSouth := 'S'
	if lat >= 0 {
		northSouth = 'N'
	}

	eastWest := 'W'
	if lon >= 0 {
		eastWest = 'E'
	}

	return fmt.Sprintf("%c%02d%c%03d", northSouth, abs(lat), eastWest, abs(lon))
}

// tileOrigin is the corner of the tile that contains the point.
func tileOrigin(lat, lon float64) (int, int) {
	return int(math.Floor(lat)), int(math.Floor(lon))
}

// stem strips the directory and the last extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
