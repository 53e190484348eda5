package blob

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/ostafen/carver/internal/errs"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"
)

var payload = append([]byte{0xFF, 0xD8, 0xFF}, bytes.Repeat([]byte{0x42}, 100)...)

func writeFile(t *testing.T, name string, data []byte) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func zstdCompress(t *testing.T, data []byte) []byte {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = enc.Write(data)
	require.NoError(t, err)
	require.NoError(t, enc.Close())
	return buf.Bytes()
}

func lz4Compress(t *testing.T, data []byte) []byte {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestLoadRaw(t *testing.T) {
	path := writeFile(t, "dump.bin", payload)

	b, err := Load(path, Raw, 0)
	require.NoError(t, err)
	defer b.Close()

	require.Equal(t, payload, b.Data)
	require.Equal(t, Raw, b.Encoding)
	require.Equal(t, len(payload), b.Size())
}

func TestLoadCompressed(t *testing.T) {
	cases := map[Encoding][]byte{
		Zstd: zstdCompress(t, payload),
		LZ4:  lz4Compress(t, payload),
	}

	for enc, data := range cases {
		path := writeFile(t, "dump."+string(enc), data)

		b, err := Load(path, Auto, 0)
		require.NoError(t, err, enc)
		require.Equal(t, enc, b.Encoding)
		require.Equal(t, payload, b.Data)
		require.NoError(t, b.Close())

		b, err = Load(path, enc, 0)
		require.NoError(t, err, enc)
		require.Equal(t, payload, b.Data)

		_, err = Load(path, enc, 10)
		require.ErrorIs(t, err, errs.ErrIO)
	}
}

func TestLoadIntelHex(t *testing.T) {
	listing := ":0400100001020304E2\n:02001800AABB81\n:00000001FF\n"
	path := writeFile(t, "firmware.hex", []byte(listing))

	require.Equal(t, IHex, Sniff(path, []byte(listing)))

	b, err := Load(path, Auto, 0)
	require.NoError(t, err)
	require.Equal(t, IHex, b.Encoding)
	require.Equal(t, []byte{1, 2, 3, 4, 0xFF, 0xFF, 0xFF, 0xFF, 0xAA, 0xBB}, b.Data)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.bin"), Raw, 0)
	require.ErrorIs(t, err, errs.ErrIO)
	require.ErrorIs(t, err, os.ErrNotExist)

	path := writeFile(t, "big.bin", payload)
	_, err = Load(path, Raw, 8)
	require.ErrorIs(t, err, errs.ErrIO)

	path = writeFile(t, "bad.zst", []byte("not zstd at all"))
	_, err = Load(path, Zstd, 0)
	require.ErrorIs(t, err, errs.ErrIO)
}

func TestSniffRawByDefault(t *testing.T) {
	require.Equal(t, Raw, Sniff("image.dd", payload))
	require.Equal(t, Raw, Sniff("notes.txt", []byte(":0400")))
}

func TestParseEncoding(t *testing.T) {
	enc, err := ParseEncoding("")
	require.NoError(t, err)
	require.Equal(t, Raw, enc)

	enc, err = ParseEncoding("ZSTD")
	require.NoError(t, err)
	require.Equal(t, Zstd, enc)

	_, err = ParseEncoding("gzip")
	require.Error(t, err)
}
