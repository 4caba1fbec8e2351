package encoding_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/bakdaulet/kassa/internal/encoding"
)

// priceList is a realistic Cyrillic price list; long enough for the
// charset heuristics to be decisive.
const priceList = "Штрихкод;Название;Цена;Остаток\n" +
	"4600000000017;Молоко пастеризованное 1л;450;12\n" +
	"4600000000024;Хлеб белый нарезной;120;40\n" +
	"4600000000031;Масло сливочное крестьянское 180г;780;8\n" +
	"4600000000048;Сыр российский полутвердый 300г;1650;5\n" +
	"4600000000055;Чай черный байховый листовой 100г;950;14\n"

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	r, err := encoding.NewUTF8Reader(strings.NewReader(priceList))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, priceList, string(got))
}

func TestNewUTF8Reader_Windows1251(t *testing.T) {
	raw, err := charmap.Windows1251.NewEncoder().Bytes([]byte(priceList))
	require.NoError(t, err)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(raw))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, priceList, string(got))
}

func TestNewUTF8Reader_KOI8R(t *testing.T) {
	raw, err := charmap.KOI8R.NewEncoder().Bytes([]byte(priceList))
	require.NoError(t, err)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(raw))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, priceList, string(got))
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	// UTF-8 BOM (0xEF 0xBB 0xBF) should be stripped.
	bom := []byte{0xEF, 0xBB, 0xBF}
	input := append(bom, []byte(priceList)...)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, priceList, string(got))
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0xFF, 0xFE})

	for _, r := range "Штрихкод;Цена\n" {
		// The sample stays in the BMP, so one code unit per rune.
		buf.WriteByte(byte(r))
		buf.WriteByte(byte(r >> 8))
	}

	r, err := encoding.NewUTF8Reader(&buf)
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Штрихкод;Цена\n", string(got))
}
