// Package odoo implementa el cliente de inventario contra una instancia Odoo.
//
// La autenticación y las consultas a modelos usan XML-RPC (/xmlrpc/2/common y
// /xmlrpc/2/object); el listado de bases de datos y CallMethod usan JSON-RPC
// (/web/database/list y /web/dataset/call_kw).
//
// Un InventoryClient NO es seguro para uso concurrente: guarda la sesión
// (base de datos, uid) sin bloqueo interno. Quien lo comparta entre goroutines
// debe serializar el acceso.
package odoo

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jhoicas/inventario-odoo/pkg/logger"
	"github.com/jhoicas/inventario-odoo/pkg/metrics"
)

const (
	userAgent = "Odoo-Inventory-Fetcher/1.0"

	// maxResponseSize límite de lectura de cualquier respuesta (10 MB).
	maxResponseSize = 10 * 1024 * 1024

	databaseListPath = "/web/database/list"
	callKwPath       = "/web/dataset/call_kw"
	commonPath       = "/xmlrpc/2/common"
	objectPath       = "/xmlrpc/2/object"

	// DefaultLimit límite de registros por consulta cuando no se indica otro.
	DefaultLimit = 100

	// defaultDatabase se usa si el descubrimiento no devuelve ninguna base.
	defaultDatabase = "alpesh-electricals2"

	usernameEnv     = "ODOO_USERNAME"
	defaultUsername = "your_username@example.com"
)

// fallbackDatabases nombres probables cuando /web/database/list falla.
var fallbackDatabases = []string{"alpesh-electricals2", "main", "production", "odoo"}

// Subrutas conocidas que se recortan de la URL configurada.
const (
	posPathSegment = "/odoo/point-of-sale"
	appPathSegment = "/odoo"
)

// InventoryClient sesión contra una instancia Odoo.
type InventoryClient struct {
	baseURL  string
	apiKey   string
	database string

	uid       int64  // 0 = no autenticado
	objectURL string // endpoint XML-RPC "object", fijado al autenticar

	httpClient *http.Client
	headers    http.Header
	requestID  int64

	username func() string
	log      *logger.Logger
	metrics  *metrics.RPCMetrics
}

// Option configura el cliente en NewInventoryClient.
type Option func(*InventoryClient)

// WithHTTPClient reemplaza el *http.Client (timeouts, transport de tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *InventoryClient) { c.httpClient = hc }
}

// WithTimeout fija el timeout de red. Trabaja sobre una copia del *http.Client para no
// alterar uno compartido (p. ej. http.DefaultClient pasado con WithHTTPClient).
func WithTimeout(d time.Duration) Option {
	return func(c *InventoryClient) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

// WithLogger inyecta el logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *InventoryClient) { c.log = l.Named("odoo") }
}

// WithMetrics registra duración y resultado de cada llamada remota.
func WithMetrics(m *metrics.RPCMetrics) Option {
	return func(c *InventoryClient) { c.metrics = m }
}

// WithUsername reemplaza la fuente del usuario de login.
// Por defecto se lee ODOO_USERNAME en cada autenticación.
func WithUsername(fn func() string) Option {
	return func(c *InventoryClient) { c.username = fn }
}

// NewInventoryClient crea el cliente. database puede ir vacío: se descubre al autenticar.
func NewInventoryClient(rawURL, apiKey, database string, opts ...Option) *InventoryClient {
	c := &InventoryClient{
		baseURL:    NormalizeBaseURL(rawURL),
		apiKey:     apiKey,
		database:   database,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		headers: http.Header{
			"Content-Type": []string{"application/json"},
			"User-Agent":   []string{userAgent},
		},
		username: usernameFromEnv,
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NormalizeBaseURL recorta la subruta del punto de venta o de la app web y la barra final.
//
//	https://x.odoo.com/odoo/point-of-sale/shop/1 -> https://x.odoo.com
//	https://x.odoo.com/odoo/action-123          -> https://x.odoo.com
//	https://x.odoo.com/                         -> https://x.odoo.com
func NormalizeBaseURL(raw string) string {
	raw = strings.TrimSpace(raw)

	// Solo se busca en la ruta: un host como odoo.acme.com no debe recortarse.
	pathStart := 0
	if i := strings.Index(raw, "://"); i >= 0 {
		pathStart = i + len("://")
	}
	if j := strings.IndexByte(raw[pathStart:], '/'); j >= 0 {
		pathStart += j
	} else {
		pathStart = len(raw)
	}

	path := raw[pathStart:]
	if i := strings.Index(path, posPathSegment); i >= 0 {
		path = path[:i]
	} else if i := strings.Index(path, appPathSegment); i >= 0 {
		path = path[:i]
	}
	return strings.TrimRight(raw[:pathStart]+path, "/")
}

func usernameFromEnv() string {
	if u := os.Getenv(usernameEnv); u != "" {
		return u
	}
	return defaultUsername
}

// BaseURL URL base normalizada.
func (c *InventoryClient) BaseURL() string { return c.baseURL }

// Database base de datos en uso (vacía hasta autenticar si no se configuró).
func (c *InventoryClient) Database() string { return c.database }

// UID identidad autenticada; 0 si no hay sesión.
func (c *InventoryClient) UID() int64 { return c.uid }

// IsAuthenticated indica si ya hay identidad resuelta.
func (c *InventoryClient) IsAuthenticated() bool { return c.uid > 0 }
