package portals

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Money renders a decimal amount with two fractional digits.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.StringFixed(2))
}

// ProductGroup is one style rendered as a color by size grid. Matrix is keyed
// by MatrixKey; combinations that were not ordered are absent.
type ProductGroup struct {
	StyleNumber   string             `json:"style_number"`
	ImageURL      *string            `json:"image_url"`
	Price         Money              `json:"price"`
	DeliveryDate  *string            `json:"delivery_date"`
	Notes         *string            `json:"notes"`
	Items         []ItemDTO          `json:"items"`
	Colors        []string           `json:"colors"`
	Sizes         []string           `json:"sizes"`
	Matrix        map[string]ItemDTO `json:"matrix"`
	TotalQuantity int                `json:"total_quantity"`
	TotalAmount   Money              `json:"total_amount"`
}

func MatrixKey(color, size string) string {
	return color + "|" + size
}

// BuildGroups groups items by style number in first-seen order. Colors and
// sizes keep the order they first appear in. The header fields of a group
// come from its first item.
func BuildGroups(items []ItemDTO) ([]ProductGroup, Money) {
	index := map[string]int{}
	var groups []ProductGroup
	grand := decimal.Zero

	for _, it := range items {
		pos, ok := index[it.StyleNumber]
		if !ok {
			pos = len(groups)
			index[it.StyleNumber] = pos
			groups = append(groups, ProductGroup{
				StyleNumber:  it.StyleNumber,
				ImageURL:     it.ImageURL,
				Price:        it.Price,
				DeliveryDate: it.DeliveryDate,
				Notes:        it.Notes,
				Matrix:       map[string]ItemDTO{},
			})
		}
		g := &groups[pos]
		g.Items = append(g.Items, it)
		g.Colors = appendUnique(g.Colors, it.Attr2)
		g.Sizes = appendUnique(g.Sizes, it.Size)
		g.Matrix[MatrixKey(it.Attr2, it.Size)] = it
		g.TotalQuantity += it.Quantity

		amount := it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		g.TotalAmount = NewMoney(g.TotalAmount.Add(amount))
		grand = grand.Add(amount)
	}
	return groups, NewMoney(grand)
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
