// Package receipt turns the output of an external receipt parser into a
// draft bill. The parser itself (image upload, AI extraction) lives outside
// this module; only its JSON shape is handled here.
package receipt

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mmynk/fairsplit/internal/editor"
	"github.com/mmynk/fairsplit/internal/models"
)

// DefaultTipPercentage is used when the receipt shows no tip.
const DefaultTipPercentage = 15

var ErrInvalidReceipt = errors.New("invalid receipt")

var validate = validator.New(validator.WithRequiredStructEnabled())

// ParsedItem is one purchasable line read off the receipt.
type ParsedItem struct {
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
}

// ParseResult is the structured receipt returned by the parser.
type ParseResult struct {
	Items    []ParsedItem `json:"items" validate:"dive"`
	Tax      float64      `json:"tax" validate:"gte=0"`
	Tip      *float64     `json:"tip,omitempty" validate:"omitempty,gte=0"`
	Currency string       `json:"currency,omitempty"`
}

// Decode reads and validates a ParseResult from JSON.
func Decode(r io.Reader) (*ParseResult, error) {
	var result ParseResult
	if err := json.NewDecoder(r).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidReceipt, err)
	}
	if err := Validate(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Validate checks prices, tax and tip are non-negative and items are named.
func Validate(result *ParseResult) error {
	if err := validate.Struct(result); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidReceipt, err)
	}
	return nil
}

// Seed builds a draft bill from a parsed receipt. Items start unassigned.
// A tip printed on the receipt becomes a fixed tip; otherwise the bill gets
// the default percentage tip. With no people given, the bill starts with "Me".
func Seed(result ParseResult, people []models.Person) models.BillState {
	if len(people) == 0 {
		people = editor.DefaultPeople()
	}

	batch := uuid.New().String()
	items := make([]models.Item, len(result.Items))
	for i, it := range result.Items {
		items[i] = models.Item{
			ID:     fmt.Sprintf("item-%d-%s", i, batch),
			Name:   strings.TrimSpace(it.Name),
			Price:  it.Price,
			Shares: map[string]int{},
		}
	}

	bill := models.BillState{
		Items:         items,
		Tax:           result.Tax,
		TipType:       models.TipPercent,
		TipPercentage: DefaultTipPercentage,
		People:        append([]models.Person(nil), people...),
		Currency:      result.Currency,
	}
	if result.Tip != nil && *result.Tip > 0 {
		bill.TipType = models.TipAmount
		bill.TipAmount = *result.Tip
		bill.TipPercentage = 0
		bill.TipFromReceipt = true
	}
	if bill.Currency == "" {
		bill.Currency = models.DefaultCurrency
	}
	return bill
}
