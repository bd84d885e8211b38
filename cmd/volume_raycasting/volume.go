package main

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/braheezy/glviewer/internal/asset"
	"github.com/braheezy/glviewer/internal/opengl"
)

// raw volumes carry their size in the name, as in skull_256x256x256_uint8.raw
var rawSize = regexp.MustCompile(`(\d+)x(\d+)x(\d+)`)

func volumeSize(path string) ([3]int, error) {
	var size [3]int
	m := rawSize.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return size, errors.Errorf("%s: no XxYxZ size in file name", filepath.Base(path))
	}
	for i := range size {
		n, err := strconv.Atoi(m[i+1])
		if err != nil || n <= 0 {
			return size, errors.Errorf("%s: bad volume size %q", filepath.Base(path), m[0])
		}
		size[i] = n
	}
	return size, nil
}

// loadVolume picks the loader by extension. .dat files carry their own size.
func loadVolume(ctx *opengl.Context, path string) (*opengl.Texture3D, error) {
	if strings.EqualFold(filepath.Ext(path), ".dat") {
		return asset.LoadDat(ctx, path), nil
	}
	size, err := volumeSize(path)
	if err != nil {
		return nil, err
	}
	return asset.LoadRaw(ctx, path, size), nil
}
