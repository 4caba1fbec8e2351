package pricelist_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/bakdaulet/kassa/internal/importer/pricelist"
)

func TestParser_RussianSemicolon(t *testing.T) {
	csv := `Прайс-лист от 01.06.2024
Поставщик;ТОО Продснаб

Штрихкод;Название;Цена;Остаток;Описание
4600000000017;Молоко 1л;450;12;пастеризованное
4600000000024;Хлеб белый;120;40;
4600000000031;Масло 180г;1 234,56;8;сливочное

Итого;;;60;
`

	p := pricelist.NewParser()
	products, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, products, 3)

	assert.Equal(t, "4600000000017", products[0].Barcode)
	assert.Equal(t, "Молоко 1л", products[0].Name)
	assert.Equal(t, int64(45000), products[0].PriceCents)
	assert.Equal(t, 12, products[0].Stock)
	assert.Equal(t, "пастеризованное", products[0].Description)

	assert.Equal(t, int64(12000), products[1].PriceCents)
	assert.Empty(t, products[1].Description)

	assert.Equal(t, int64(123456), products[2].PriceCents)
}

func TestParser_EnglishComma(t *testing.T) {
	csv := `barcode,name,price,stock
123456789,Laptop,999.99,10
987654321,Wireless Mouse,29.99,50
`

	p := pricelist.NewParser()
	products, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "123456789", products[0].Barcode)
	assert.Equal(t, "Laptop", products[0].Name)
	assert.Equal(t, int64(99999), products[0].PriceCents)
	assert.Equal(t, 10, products[0].Stock)
}

func TestParser_HeaderCaseInsensitive(t *testing.T) {
	csv := "Barcode;Name;Price\n111222333;Widget;5,00\n"

	p := pricelist.NewParser()
	products, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, int64(500), products[0].PriceCents)
}

func TestParser_Windows1251Input(t *testing.T) {
	csv := "Штрихкод;Название;Цена\n4600000000017;Молоко пастеризованное 1л;450\n4600000000024;Хлеб белый нарезной;120\n"

	raw, err := charmap.Windows1251.NewEncoder().Bytes([]byte(csv))
	require.NoError(t, err)

	p := pricelist.NewParser()
	products, err := p.Parse(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Молоко пастеризованное 1л", products[0].Name)
}

func TestParser_NoHeaderFound(t *testing.T) {
	p := pricelist.NewParser()

	_, err := p.Parse(strings.NewReader("just,some,random\nrows,without,headers\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no known price list format")
}

func TestParser_BadPriceReportsRow(t *testing.T) {
	csv := "barcode;name;price\n111;Widget;abc\n"

	p := pricelist.NewParser()

	_, err := p.Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestParser_MissingNameReportsRow(t *testing.T) {
	csv := "barcode;name;price\n111;;5,00\n"

	p := pricelist.NewParser()

	_, err := p.Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing product name")
}
