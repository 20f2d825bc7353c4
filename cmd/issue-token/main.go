// issue-token emite un JWT para consumir la API de inventario.
//
// Uso: go run ./cmd/issue-token <sujeto> [admin|viewer]
// El rol por defecto es viewer. Lee JWT_SECRET, JWT_ISSUER y JWT_EXPIRATION_MINUTES
// del entorno o de .env, igual que cmd/api.
package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/inventario-odoo/pkg/config"
	"github.com/jhoicas/inventario-odoo/pkg/jwt"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Uso: issue-token <sujeto> [admin|viewer]")
		os.Exit(2)
	}
	subject := os.Args[1]
	role := jwt.RoleViewer
	if len(os.Args) > 2 {
		role = os.Args[2]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	token, err := issue(cfg.JWT, subject, role)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Emitir token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}

func issue(cfg config.JWTConfig, subject, role string) (string, error) {
	if role != jwt.RoleAdmin && role != jwt.RoleViewer {
		return "", fmt.Errorf("rol desconocido %q (admin|viewer)", role)
	}
	return jwt.Generate(cfg.Secret, subject, role, cfg.Issuer, cfg.Expiration)
}
