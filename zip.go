package hgt

import (
	"archive/zip"
	"bufio"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	hgtExt = ".hgt"
	zipExt = ".zip"
)

var errNoEntry = errors.New("no .hgt entry in archive")

// OpenZip decodes the first .hgt entry of a zip archive, the way SRTM
// mirrors distribute tiles. The entry name and uncompressed size play
// the roles of the file name and file size in Open.
func OpenZip(zipPath string, opts ...Option) (*Tile, error) {
	o := newOptions(opts)
	log := o.logger.WithField("path", zipPath)

	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, newError(ErrRead, zipPath, err)
	}
	defer zr.Close()

	entry := findEntry(zr.File)
	if entry == nil {
		return nil, newError(ErrRead, zipPath, errNoEntry)
	}
	name := zipPath + "!" + entry.Name

	lat, lon, err := o.parseCoordinates(stem(path.Base(entry.Name)))
	if err != nil {
		return nil, newError(ErrParseLatLong, name, err)
	}

	size := int64(entry.UncompressedSize64)
	res, ok := DetectResolution(size)
	if !ok {
		return nil, newError(ErrFilesize, name, fmt.Errorf("%d bytes", size))
	}
	log.WithFields(logrus.Fields{"entry": entry.Name, "lat": lat, "lon": lon, "resolution": res}).Debug("decoding zipped tile")

	rc, err := entry.Open()
	if err != nil {
		return nil, newError(ErrRead, name, err)
	}
	defer rc.Close()

	return decodeTile(bufio.NewReader(rc), name, lat, lon, res)
}

func findEntry(files []*zip.File) *zip.File {
	for _, f := range files {
		if f.FileInfo().IsDir() {
			continue
		}
		if strings.EqualFold(path.Ext(f.Name), hgtExt) {
			return f
		}
	}
	return nil
}
