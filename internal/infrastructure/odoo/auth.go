package odoo

import (
	"context"
	"encoding/json"
)

// DatabaseList consulta /web/database/list.
// Ante cualquier fallo de red o respuesta ilegible devuelve la lista de nombres probables,
// sin distinguir el tipo de fallo. Una respuesta válida sin "result" (por ejemplo, listado
// deshabilitado en el servidor) devuelve una lista vacía.
func (c *InventoryClient) DatabaseList(ctx context.Context) []string {
	resp, err := c.jsonRPC(ctx, databaseListPath, map[string]any{})
	if err != nil {
		c.log.Debug().Err(err).Msg("listado de bases falló, usando nombres probables")
		return append([]string(nil), fallbackDatabases...)
	}
	if !hasPayload(resp.Result) {
		return []string{}
	}
	var dbs []string
	if err := json.Unmarshal(resp.Result, &dbs); err != nil {
		c.log.Debug().Err(err).Msg("listado de bases ilegible, usando nombres probables")
		return append([]string(nil), fallbackDatabases...)
	}
	return dbs
}

// Authenticate resuelve la base de datos (si no se configuró) y hace login XML-RPC
// common.authenticate(db, usuario, api_key, {}). Devuelve true si Odoo devolvió un uid.
// Nunca devuelve error: cualquier fallo se registra y se reporta como false.
//
// Se intenta un único usuario (ODOO_USERNAME o el configurado con WithUsername).
func (c *InventoryClient) Authenticate(ctx context.Context) bool {
	if c.database == "" {
		if dbs := c.DatabaseList(ctx); len(dbs) > 0 {
			c.database = dbs[0]
			c.log.Info().Str("database", c.database).Msg("base de datos detectada")
		} else {
			c.database = defaultDatabase
		}
	}

	username := c.username()
	log := c.log.With().Str("database", c.database).Str("username", username).Logger()

	res, err := c.xmlrpcCall(ctx, c.baseURL+commonPath, "authenticate",
		c.database, username, c.apiKey, map[string]any{})
	if err != nil {
		log.Warn().Err(err).Msg("error autenticando con API key")
		return false
	}

	uid, ok := res.(int64)
	if !ok || uid <= 0 {
		log.Warn().Interface("result", res).Msg("credenciales rechazadas")
		return false
	}

	c.uid = uid
	c.objectURL = c.baseURL + objectPath
	log.Info().Int64("uid", uid).Msg("autenticado")
	return true
}

// EnsureAuthenticated es el primer paso explícito de toda consulta: si ya hay uid no hace
// nada; si no, intenta Authenticate. Devuelve si hay sesión utilizable.
func (c *InventoryClient) EnsureAuthenticated(ctx context.Context) bool {
	if c.IsAuthenticated() {
		return true
	}
	return c.Authenticate(ctx)
}
