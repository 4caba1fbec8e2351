// Package importer turns supplier catalog files into product create
// requests for the backend.
package importer

import (
	"fmt"
	"io"

	"github.com/bakdaulet/kassa/internal/api"
	"github.com/bakdaulet/kassa/internal/importer/pricelist"
)

type Service struct {
	priceListImporter Importer
}

func NewService() *Service {
	return &Service{
		priceListImporter: pricelist.NewParser(),
	}
}

func (s *Service) Import(format Format, r io.Reader) ([]api.ProductCreateParams, error) {
	var imp Importer

	switch format {
	case FormatPriceList:
		imp = s.priceListImporter
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	return imp.Parse(r)
}
