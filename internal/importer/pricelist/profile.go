package pricelist

// Profile describes the column layout of one price list dialect. Column
// names are matched case-insensitively after trimming. Adding a new
// dialect is just adding a new Profile to the profiles slice.
type Profile struct {
	Name       string
	BarcodeCol string
	NameCol    string
	PriceCol   string
	StockCol   string // optional
	DescCol    string // optional
}

// requiredCols returns the column names that must be present for this
// profile to match.
func (p Profile) requiredCols() []string {
	return []string{p.BarcodeCol, p.NameCol, p.PriceCol}
}

// profiles is the ordered list of layouts to try during auto-detection.
var profiles = []Profile{
	{
		Name:       "russian",
		BarcodeCol: "штрихкод",
		NameCol:    "название",
		PriceCol:   "цена",
		StockCol:   "остаток",
		DescCol:    "описание",
	},
	{
		Name:       "russian-1c",
		BarcodeCol: "штрих-код",
		NameCol:    "наименование",
		PriceCol:   "цена",
		StockCol:   "количество",
		DescCol:    "комментарий",
	},
	{
		Name:       "english",
		BarcodeCol: "barcode",
		NameCol:    "name",
		PriceCol:   "price",
		StockCol:   "stock",
		DescCol:    "description",
	},
}
