package odoo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jhoicas/inventario-odoo/internal/domain"
	"github.com/jhoicas/inventario-odoo/pkg/metrics"
)

// ── Estructuras internas del protocolo JSON-RPC 2.0 ───────────────────────────

type jsonRPCRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
	ID      int64  `json:"id"`
}

type jsonRPCResponse struct {
	Result json.RawMessage `json:"result"`
	Error  json.RawMessage `json:"error"`
}

// RemoteError sobre de error devuelto por Odoo en una llamada JSON-RPC.
// Payload contiene el objeto "error" tal cual lo envió el servidor.
type RemoteError struct {
	Payload json.RawMessage
}

func (e *RemoteError) Error() string {
	return "odoo: API error: " + string(e.Payload)
}

// Unwrap permite errors.Is(err, domain.ErrRemote).
func (e *RemoteError) Unwrap() error { return domain.ErrRemote }

// Message extrae error.data.message o error.message si existen.
func (e *RemoteError) Message() string {
	var env struct {
		Message string `json:"message"`
		Data    struct {
			Message string `json:"message"`
		} `json:"data"`
	}
	if err := json.Unmarshal(e.Payload, &env); err != nil {
		return string(e.Payload)
	}
	if env.Data.Message != "" {
		return env.Data.Message
	}
	return env.Message
}

// hasPayload indica si el campo crudo está presente y no es null.
func hasPayload(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

// jsonRPC envía {jsonrpc, method: "call", params, id} a base+path y decodifica el sobre.
// No interpreta "error": eso lo decide cada llamador.
func (c *InventoryClient) jsonRPC(ctx context.Context, path string, params any) (resp *jsonRPCResponse, err error) {
	start := time.Now()
	defer func() { c.metrics.Observe(metrics.ProtocolJSONRPC, path, time.Since(start), err) }()

	c.requestID++
	body, err := json.Marshal(jsonRPCRequest{
		JSONRPC: "2.0",
		Method:  "call",
		Params:  params,
		ID:      c.requestID,
	})
	if err != nil {
		return nil, fmt.Errorf("odoo: json-rpc: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("odoo: json-rpc: crear request: %w", err)
	}
	for k, vs := range c.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("odoo: json-rpc %s: timeout o cancelación: %w", path, ctx.Err())
		}
		return nil, fmt.Errorf("odoo: json-rpc %s: llamada HTTP fallida: %w", path, err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("odoo: json-rpc %s: leer respuesta: %w", path, err)
	}

	var out jsonRPCResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("odoo: json-rpc %s: respuesta no es JSON (HTTP %d): %w", path, httpResp.StatusCode, err)
	}
	return &out, nil
}

// CallMethod invoca model.method vía /web/dataset/call_kw.
// Es la única operación que propaga fallos remotos: un sobre "error" se devuelve como *RemoteError.
// Si la respuesta no trae "result" devuelve una lista vacía.
func (c *InventoryClient) CallMethod(ctx context.Context, model, method string, args []any, kwargs map[string]any) (json.RawMessage, error) {
	if args == nil {
		args = []any{}
	}
	if kwargs == nil {
		kwargs = map[string]any{}
	}

	resp, err := c.jsonRPC(ctx, callKwPath, map[string]any{
		"model":  model,
		"method": method,
		"args":   args,
		"kwargs": kwargs,
	})
	if err != nil {
		return nil, err
	}
	if hasPayload(resp.Error) {
		return nil, &RemoteError{Payload: resp.Error}
	}
	if !hasPayload(resp.Result) {
		return json.RawMessage("[]"), nil
	}
	return resp.Result, nil
}
