package entity

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// StockQuant cantidad de un producto en una ubicación (modelo stock.quant).
type StockQuant struct {
	ID                int64           `json:"id"`
	ProductID         *Many2One       `json:"product_id"`
	LocationID        *Many2One       `json:"location_id"`
	Quantity          decimal.Decimal `json:"quantity"`
	ReservedQuantity  decimal.Decimal `json:"reserved_quantity"`
	AvailableQuantity decimal.Decimal `json:"available_quantity"`
}

func (q *StockQuant) UnmarshalJSON(data []byte) error {
	type Alias StockQuant
	aux := struct {
		*Alias
		ProductID  json.RawMessage `json:"product_id"`
		LocationID json.RawMessage `json:"location_id"`
	}{Alias: (*Alias)(q)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var err error
	if q.ProductID, err = decodeRef(aux.ProductID); err != nil {
		return fmt.Errorf("stock quant product_id: %w", err)
	}
	if q.LocationID, err = decodeRef(aux.LocationID); err != nil {
		return fmt.Errorf("stock quant location_id: %w", err)
	}
	return nil
}
