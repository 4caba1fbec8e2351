package importer

import (
	"io"

	"github.com/bakdaulet/kassa/internal/api"
)

// Format names a supported catalog file layout.
type Format string

const (
	// FormatPriceList is a delimited price list with a header row
	// (supplier exports, 1C dumps and the like).
	FormatPriceList Format = "pricelist"
)

type Importer interface {
	Parse(r io.Reader) ([]api.ProductCreateParams, error)
}
