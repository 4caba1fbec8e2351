package importer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakdaulet/kassa/internal/importer"
)

func TestService_Import(t *testing.T) {
	svc := importer.NewService()

	products, err := svc.Import(importer.FormatPriceList, strings.NewReader("barcode;name;price\n111222333;Widget;5,00\n"))
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Widget", products[0].Name)
}

func TestService_Import_UnknownFormat(t *testing.T) {
	svc := importer.NewService()

	_, err := svc.Import(importer.Format("xlsx"), strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}
