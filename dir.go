package hgt

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Dir locates tiles by coordinate inside a local directory holding
// files named like N35E138.hgt or N35E138.hgt.zip. Nothing is cached;
// every call decodes the file again.
type Dir struct {
	root string
	opts []Option
}

// NewDir returns a Dir rooted at an existing directory. The options are
// applied to every tile it opens.
func NewDir(root string, opts ...Option) (*Dir, error) {
	fi, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("hgt: %s is not a directory", root)
	}
	return &Dir{root: root, opts: opts}, nil
}

// Root is the directory the tiles are read from.
func (d *Dir) Root() string {
	return d.root
}

// Path is where the uncompressed tile for lat, lon is expected.
func (d *Dir) Path(lat, lon int) string {
	return filepath.Join(d.root, TileName(lat, lon)+hgtExt)
}

// Open decodes the tile whose south-west corner is lat, lon, preferring
// the plain .hgt file over the zipped one.
func (d *Dir) Open(lat, lon int) (*Tile, error) {
	p := d.Path(lat, lon)
	if _, err := os.Stat(p); err == nil {
		return Open(p, d.opts...)
	}

	zp := p + zipExt
	if _, err := os.Stat(zp); err == nil {
		return OpenZip(zp, d.opts...)
	}

	return nil, newError(ErrRead, p, fs.ErrNotExist)
}

// Lookup decodes the tile that contains the point.
func (d *Dir) Lookup(lat, lon float64) (*Tile, error) {
	return d.Open(tileOrigin(lat, lon))
}

// Scan lists the tile files directly under the root, sorted by name.
// Files whose name does not encode a tile origin are skipped.
func (d *Dir) Scan() ([]string, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return nil, err
	}

	o := newOptions(d.opts)
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		s, ok := tileStem(e.Name())
		if !ok {
			continue
		}
		if _, _, err := o.parseCoordinates(s); err != nil {
			continue
		}
		paths = append(paths, filepath.Join(d.root, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// OpenFile decodes a tile file found by Scan.
func (d *Dir) OpenFile(path string) (*Tile, error) {
	return OpenPath(path, d.opts...)
}

// OpenPath decodes a .hgt or .hgt.zip file, picking the reader from the
// extension.
func OpenPath(path string, opts ...Option) (*Tile, error) {
	if strings.EqualFold(filepath.Ext(path), zipExt) {
		return OpenZip(path, opts...)
	}
	return Open(path, opts...)
}

func tileStem(name string) (string, bool) {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, hgtExt+zipExt):
		return name[:len(name)-len(hgtExt+zipExt)], true
	case strings.HasSuffix(lower, hgtExt):
		return name[:len(name)-len(hgtExt)], true
	}
	return "", false
}

// IsNotExist reports whether err means the tile is not in the directory.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
