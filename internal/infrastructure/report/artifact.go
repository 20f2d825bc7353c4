package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jhoicas/inventario-odoo/internal/domain/entity"
)

// DefaultJSONPath nombre del artefacto en el directorio de trabajo.
const DefaultJSONPath = "odoo_inventory.json"

// WriteJSON guarda el resumen completo (productos, quants y totales) indentado a 2 espacios.
// Fechas y montos se escriben en su forma de texto/número estándar de encoding/json.
func WriteJSON(path string, s entity.InventorySummary) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("report: serializar resumen: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("report: escribir %s: %w", path, err)
	}
	return nil
}

// ReadJSON lee un artefacto escrito por WriteJSON.
func ReadJSON(path string) (entity.InventorySummary, error) {
	var s entity.InventorySummary
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("report: leer %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("report: decodificar %s: %w", path, err)
	}
	return s, nil
}
