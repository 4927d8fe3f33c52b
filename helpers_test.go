package hgt

import (
	"archive/zip"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// gradient fills a grid with values that differ between neighbours so
// that swapped rows or columns show up.
func gradient(res Resolution) []int16 {
	samples := make([]int16, res.SampleCount())
	for i := range samples {
		samples[i] = int16(i%9000 - 400)
	}
	return samples
}

func encodeSamples(samples []int16) []byte {
	raw := make([]byte, len(samples)*2)
	for i, v := range samples {
		binary.BigEndian.PutUint16(raw[i*2:], uint16(v))
	}
	return raw
}

func writeTile(t *testing.T, dir, name string, samples []int16) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, encodeSamples(samples), 0o644))
	return p
}

func writeZip(t *testing.T, dir, name, entry string, body []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	f, err := os.Create(p)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create(entry)
	require.NoError(t, err)
	_, err = w.Write(body)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return p
}
