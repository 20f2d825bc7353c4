package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrRemote           = errors.New("error remoto de Odoo")
	ErrNotAuthenticated = errors.New("cliente Odoo no autenticado")
	ErrStoreDisabled    = errors.New("almacén de snapshots no configurado")
)
