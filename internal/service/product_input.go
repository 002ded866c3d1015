package service

import (
	"encoding/json"
	"math"

	"github.com/shopspring/decimal"

	apperrors "shopapi/internal/errors"
)

// Product payload keys.
const (
	fieldName        = "product_name"
	fieldDescription = "product_description"
	fieldPrice       = "product_price"
	fieldTags        = "product_tag"
)

// ProductFields is a raw product payload. Values keep their JSON types so
// type mismatches can be reported per field; numbers are json.Number when
// the body was decoded with UseNumber.
type ProductFields map[string]any

// ProductInput is a validated product payload.
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Tags        []string
}

// Parse checks presence first, then the type of each field in payload
// order, then the price range. The first failing rule wins.
func (f ProductFields) Parse() (ProductInput, error) {
	price, hasPrice := f[fieldPrice]
	if !present(f[fieldName]) || !present(f[fieldDescription]) || !hasPrice || !present(f[fieldTags]) {
		return ProductInput{}, apperrors.Validation(msgFillAllFields)
	}

	var in ProductInput
	var ok bool
	if in.Name, ok = f[fieldName].(string); !ok {
		return ProductInput{}, apperrors.Validation(msgNameType)
	}
	if in.Description, ok = f[fieldDescription].(string); !ok {
		return ProductInput{}, apperrors.Validation(msgDescriptionType)
	}
	if in.Price, ok = parsePrice(price); !ok {
		return ProductInput{}, apperrors.Validation(msgPriceType)
	}
	if in.Tags, ok = parseTags(f[fieldTags]); !ok {
		return ProductInput{}, apperrors.Validation(msgTagType)
	}
	if in.Price.IsNegative() {
		return ProductInput{}, apperrors.Validation(msgPriceMin)
	}
	return in, nil
}

// present reports whether v counts as a filled-in value. Empty strings,
// false, zero and null do not; empty arrays and objects do.
func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	case float64:
		return t != 0 && !math.IsNaN(t)
	default:
		return true
	}
}

func parsePrice(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		return d, err == nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromFloat(t), true
	default:
		return decimal.Decimal{}, false
	}
}

func parseTags(v any) ([]string, bool) {
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	tags := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		tags = append(tags, s)
	}
	return tags, true
}
