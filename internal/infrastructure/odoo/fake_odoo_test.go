package odoo

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/beevik/etree"
)

// ──────────────────────────────────────────────────────────────────────────────
// Servidor Odoo falso: JSON-RPC (/web/...) y XML-RPC (/xmlrpc/2/...).
// ──────────────────────────────────────────────────────────────────────────────

type rpcCall struct {
	Path   string
	Method string // método XML-RPC o "call" en JSON-RPC
	Params []any
	Body   map[string]any // cuerpo JSON-RPC decodificado
}

type fakeOdoo struct {
	mu    sync.Mutex
	calls []rpcCall

	// Respuestas JSON-RPC crudas; vacío = 404.
	databaseList string
	callKw       string

	// authenticate
	uid       any // int64 o false
	authFault bool

	// product.product search: clave = dominio en JSON ("[]", `[["sale_ok","=",true]]`, ...).
	productIDs map[string][]int64
	products   []map[string]any

	// stock.quant: el servidor aplica quantity > 0 si recibe ese dominio (comparado ya decodificado).
	quants []map[string]any

	objectFault string // si no está vacío, execute_kw devuelve fault
}

func newFakeOdoo(t *testing.T) (*fakeOdoo, *httptest.Server) {
	t.Helper()
	f := &fakeOdoo{uid: int64(7), productIDs: map[string][]int64{}}
	srv := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeOdoo) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	if strings.HasPrefix(r.URL.Path, "/xmlrpc/2/") {
		method, params := decodeMethodCall(body)
		f.record(rpcCall{Path: r.URL.Path, Method: method, Params: params})
		w.Header().Set("Content-Type", "text/xml")
		_, _ = w.Write(f.xmlrpc(r.URL.Path, method, params))
		return
	}

	var decoded map[string]any
	_ = json.Unmarshal(body, &decoded)
	f.record(rpcCall{Path: r.URL.Path, Method: "call", Body: decoded})

	var resp string
	switch r.URL.Path {
	case databaseListPath:
		resp = f.databaseList
	case callKwPath:
		resp = f.callKw
	}
	if resp == "" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, resp)
}

func (f *fakeOdoo) xmlrpc(path, method string, params []any) []byte {
	switch {
	case path == commonPath && method == "authenticate":
		if f.authFault {
			return faultResponse(3, "Access Denied")
		}
		return methodResponse(f.uid)
	case path == objectPath && method == "execute_kw":
		if f.objectFault != "" {
			return faultResponse(2, f.objectFault)
		}
		model, _ := params[3].(string)
		op, _ := params[4].(string)
		args, _ := params[5].([]any)
		return methodResponse(f.executeKw(model, op, args))
	}
	return faultResponse(1, "método desconocido "+method)
}

func (f *fakeOdoo) executeKw(model, op string, args []any) any {
	switch {
	case model == productModel && op == "search":
		key, _ := json.Marshal(args[0])
		return int64sToAny(f.productIDs[string(key)])
	case model == productModel && op == "read":
		return pick(f.products, args[0])
	case model == stockQuantModel && op == "search":
		positiveOnly := reflect.DeepEqual(args[0], []any{[]any{"quantity", ">", int64(0)}})
		ids := []any{}
		for _, q := range f.quants {
			if positiveOnly && q["quantity"].(float64) <= 0 {
				continue
			}
			ids = append(ids, q["id"])
		}
		return ids
	case model == stockQuantModel && op == "read":
		return pick(f.quants, args[0])
	}
	return []any{}
}

func (f *fakeOdoo) record(c rpcCall) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

// callsTo filtra las llamadas registradas por ruta y, para execute_kw, por modelo/operación.
func (f *fakeOdoo) callsTo(path string, modelOp ...string) []rpcCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []rpcCall
	for _, c := range f.calls {
		if c.Path != path {
			continue
		}
		if len(modelOp) == 2 && (len(c.Params) < 5 || c.Params[3] != modelOp[0] || c.Params[4] != modelOp[1]) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// ── helpers XML-RPC del lado servidor ─────────────────────────────────────────

func decodeMethodCall(data []byte) (string, []any) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return "", nil
	}
	name := ""
	if el := doc.FindElement("./methodCall/methodName"); el != nil {
		name = el.Text()
	}
	var params []any
	for _, v := range doc.FindElements("./methodCall/params/param/value") {
		decoded, _ := decodeValue(v)
		params = append(params, decoded)
	}
	return name, params
}

func methodResponse(v any) []byte {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0"`)
	val := doc.CreateElement("methodResponse").
		CreateElement("params").CreateElement("param").CreateElement("value")
	_ = encodeValue(val, v)
	out, _ := doc.WriteToBytes()
	return out
}

func faultResponse(code int, msg string) []byte {
	doc := etree.NewDocument()
	val := doc.CreateElement("methodResponse").CreateElement("fault").CreateElement("value")
	_ = encodeValue(val, map[string]any{"faultCode": code, "faultString": msg})
	out, _ := doc.WriteToBytes()
	return out
}

func int64sToAny(ids []int64) []any {
	out := make([]any, 0, len(ids))
	for _, id := range ids {
		out = append(out, id)
	}
	return out
}

// pick devuelve los registros cuyos "id" están en ids, en el orden de ids.
func pick(records []map[string]any, ids any) []any {
	list, _ := ids.([]any)
	out := []any{}
	for _, want := range list {
		for _, r := range records {
			if r["id"] == want {
				out = append(out, r)
			}
		}
	}
	return out
}
