package main

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/braheezy/glviewer/internal/opengl"
	"github.com/braheezy/glviewer/internal/opengl/gltest"
)

func TestVolumeSize(t *testing.T) {
	tests := []struct {
		path    string
		want    [3]int
		wantErr bool
	}{
		{path: "assets/skull/skull_256x256x256_uint8.raw", want: [3]int{256, 256, 256}},
		{path: "head_64x32x16.raw", want: [3]int{64, 32, 16}},
		{path: "skull.raw", wantErr: true},
		{path: "skull_0x2x2.raw", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := volumeSize(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadVolumeByExtension(t *testing.T) {
	ctx := opengl.NewContext(gltest.New(), false)
	dir := t.TempDir()

	raw := filepath.Join(dir, "cube_2x2x2.raw")
	require.NoError(t, os.WriteFile(raw, make([]byte, 8), 0o644))
	tex, err := loadVolume(ctx, raw)
	require.NoError(t, err)
	w, h, d := tex.Size()
	assert.Equal(t, [3]int{2, 2, 2}, [3]int{w, h, d})
	assert.Equal(t, opengl.R8, tex.InternalType())

	dat := filepath.Join(dir, "ct.DAT")
	data := binary.LittleEndian.AppendUint16(nil, 1)
	data = binary.LittleEndian.AppendUint16(data, 2)
	data = binary.LittleEndian.AppendUint16(data, 1)
	data = binary.LittleEndian.AppendUint16(data, 100)
	data = binary.LittleEndian.AppendUint16(data, 200)
	require.NoError(t, os.WriteFile(dat, data, 0o644))
	tex, err = loadVolume(ctx, dat)
	require.NoError(t, err)
	w, h, d = tex.Size()
	assert.Equal(t, [3]int{1, 2, 1}, [3]int{w, h, d})
	assert.Equal(t, opengl.R16, tex.InternalType())

	_, err = loadVolume(ctx, filepath.Join(dir, "nosize.raw"))
	assert.Error(t, err)
}
