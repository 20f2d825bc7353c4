package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Many2One referencia a otro registro de Odoo: par [id, display_name].
type Many2One struct {
	ID   int64
	Name string
}

// MarshalJSON escribe la referencia con la misma forma que Odoo: [id, "nombre"].
func (m Many2One) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{m.ID, m.Name})
}

// UnmarshalJSON acepta [id, "nombre"] o false (referencia vacía en Odoo).
func (m *Many2One) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "false" || s == "null" {
		*m = Many2One{}
		return nil
	}
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("many2one: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("many2one: se esperaban 2 elementos, hay %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &m.ID); err != nil {
		return fmt.Errorf("many2one id: %w", err)
	}
	if err := json.Unmarshal(pair[1], &m.Name); err != nil {
		return fmt.Errorf("many2one name: %w", err)
	}
	return nil
}

// decodeRef decodifica una referencia a nivel de puntero: false, null o ausente dan nil.
func decodeRef(raw json.RawMessage) (*Many2One, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("false")) || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var m Many2One
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// RefID devuelve el id de la referencia o 0 si es nil.
func RefID(m *Many2One) int64 {
	if m == nil {
		return 0
	}
	return m.ID
}
