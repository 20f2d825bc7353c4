package odoo

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/inventario-odoo/internal/domain"
	"github.com/jhoicas/inventario-odoo/pkg/metrics"
)

// Formatos aceptados para dateTime.iso8601. Odoo emite el primero.
var xmlrpcTimeLayouts = []string{
	"20060102T15:04:05",
	"2006-01-02T15:04:05",
	"20060102T15:04:05Z07:00",
	time.RFC3339,
}

// Fault error XML-RPC devuelto por el servidor (<fault>).
// Odoo envía faultCode como entero o como texto según la versión, por eso se guarda como string.
type Fault struct {
	Code   string
	String string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("odoo: xml-rpc fault [%s]: %s", f.Code, f.String)
}

// Unwrap permite errors.Is(err, domain.ErrRemote).
func (f *Fault) Unwrap() error { return domain.ErrRemote }

// ── Transporte ────────────────────────────────────────────────────────────────

// xmlrpcCall hace POST de un <methodCall> al endpoint y decodifica el <methodResponse>.
func (c *InventoryClient) xmlrpcCall(ctx context.Context, endpoint, method string, params ...any) (result any, err error) {
	start := time.Now()
	defer func() { c.metrics.Observe(metrics.ProtocolXMLRPC, method, time.Since(start), err) }()

	payload, err := encodeMethodCall(method, params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("odoo: xml-rpc: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("odoo: xml-rpc %s: timeout o cancelación: %w", method, ctx.Err())
		}
		return nil, fmt.Errorf("odoo: xml-rpc %s: llamada HTTP fallida: %w", method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("odoo: xml-rpc %s: leer respuesta: %w", method, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("odoo: xml-rpc %s: HTTP %d", method, resp.StatusCode)
	}
	return decodeMethodResponse(raw)
}

// ── Codificación ──────────────────────────────────────────────────────────────

// encodeMethodCall construye el documento <methodCall> con los parámetros dados.
func encodeMethodCall(method string, params []any) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0"`)
	call := doc.CreateElement("methodCall")
	call.CreateElement("methodName").SetText(method)
	ps := call.CreateElement("params")
	for i, p := range params {
		v := ps.CreateElement("param").CreateElement("value")
		if err := encodeValue(v, p); err != nil {
			return nil, fmt.Errorf("odoo: xml-rpc: parámetro %d de %s: %w", i, method, err)
		}
	}
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("odoo: xml-rpc: serializar %s: %w", method, err)
	}
	return out, nil
}

// encodeValue escribe v como hijo de un elemento <value>.
func encodeValue(parent *etree.Element, v any) error {
	switch x := v.(type) {
	case nil:
		parent.CreateElement("nil")
	case bool:
		b := "0"
		if x {
			b = "1"
		}
		parent.CreateElement("boolean").SetText(b)
	case int:
		parent.CreateElement("int").SetText(strconv.Itoa(x))
	case int32:
		parent.CreateElement("int").SetText(strconv.FormatInt(int64(x), 10))
	case int64:
		parent.CreateElement("int").SetText(strconv.FormatInt(x, 10))
	case float64:
		parent.CreateElement("double").SetText(strconv.FormatFloat(x, 'f', -1, 64))
	case decimal.Decimal:
		parent.CreateElement("double").SetText(x.String())
	case string:
		parent.CreateElement("string").SetText(x)
	case time.Time:
		parent.CreateElement("dateTime.iso8601").SetText(x.UTC().Format(xmlrpcTimeLayouts[0]))
	case []byte:
		parent.CreateElement("base64").SetText(base64.StdEncoding.EncodeToString(x))
	default:
		return encodeReflect(parent, reflect.ValueOf(v))
	}
	return nil
}

// encodeReflect cubre slices y mapas con clave string de cualquier tipo de elemento.
func encodeReflect(parent *etree.Element, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		data := parent.CreateElement("array").CreateElement("data")
		for i := 0; i < rv.Len(); i++ {
			if err := encodeValue(data.CreateElement("value"), rv.Index(i).Interface()); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("clave de mapa no soportada: %s", rv.Type().Key())
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		st := parent.CreateElement("struct")
		for _, k := range keys {
			member := st.CreateElement("member")
			member.CreateElement("name").SetText(k)
			val := rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key()))
			if err := encodeValue(member.CreateElement("value"), val.Interface()); err != nil {
				return err
			}
		}
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		parent.CreateElement("int").SetText(strconv.FormatInt(rv.Int(), 10))
		return nil
	case reflect.Float32, reflect.Float64:
		parent.CreateElement("double").SetText(strconv.FormatFloat(rv.Float(), 'f', -1, 64))
		return nil
	case reflect.String:
		parent.CreateElement("string").SetText(rv.String())
		return nil
	default:
		return fmt.Errorf("tipo no soportado: %s", rv.Type())
	}
}

// ── Decodificación ────────────────────────────────────────────────────────────

// decodeMethodResponse devuelve el valor del único <param> o un *Fault.
func decodeMethodResponse(data []byte) (any, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("odoo: xml-rpc: respuesta inválida: %w", err)
	}
	root := doc.SelectElement("methodResponse")
	if root == nil {
		return nil, fmt.Errorf("odoo: xml-rpc: falta <methodResponse>")
	}

	if f := root.SelectElement("fault"); f != nil {
		v := f.SelectElement("value")
		if v == nil {
			return nil, &Fault{Code: "?", String: "fault sin valor"}
		}
		decoded, err := decodeValue(v)
		if err != nil {
			return nil, fmt.Errorf("odoo: xml-rpc: fault ilegible: %w", err)
		}
		m, _ := decoded.(map[string]any)
		return nil, &Fault{Code: fmt.Sprint(m["faultCode"]), String: fmt.Sprint(m["faultString"])}
	}

	v := root.FindElement("./params/param/value")
	if v == nil {
		return nil, fmt.Errorf("odoo: xml-rpc: respuesta sin parámetros")
	}
	return decodeValue(v)
}

// decodeValue convierte un <value> a tipos Go:
// int64, bool, string, float64, time.Time, []byte, nil, []any y map[string]any.
func decodeValue(v *etree.Element) (any, error) {
	children := v.ChildElements()
	if len(children) == 0 {
		// Sin tipo explícito el valor es string.
		return v.Text(), nil
	}
	c := children[0]
	text := strings.TrimSpace(c.Text())

	switch c.Tag {
	case "int", "i4", "i8":
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("int inválido %q: %w", text, err)
		}
		return n, nil
	case "boolean":
		switch text {
		case "1":
			return true, nil
		case "0":
			return false, nil
		}
		return nil, fmt.Errorf("boolean inválido %q", text)
	case "string":
		return c.Text(), nil
	case "double":
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("double inválido %q: %w", text, err)
		}
		return f, nil
	case "dateTime.iso8601":
		for _, layout := range xmlrpcTimeLayouts {
			if t, err := time.Parse(layout, text); err == nil {
				return t, nil
			}
		}
		return nil, fmt.Errorf("dateTime inválido %q", text)
	case "base64":
		b, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(text), ""))
		if err != nil {
			return nil, fmt.Errorf("base64 inválido: %w", err)
		}
		return b, nil
	case "nil":
		return nil, nil
	case "array":
		out := []any{}
		data := c.SelectElement("data")
		if data == nil {
			return out, nil
		}
		for _, item := range data.SelectElements("value") {
			decoded, err := decodeValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, decoded)
		}
		return out, nil
	case "struct":
		out := map[string]any{}
		for _, member := range c.SelectElements("member") {
			name := member.SelectElement("name")
			val := member.SelectElement("value")
			if name == nil || val == nil {
				return nil, fmt.Errorf("member incompleto en struct")
			}
			decoded, err := decodeValue(val)
			if err != nil {
				return nil, fmt.Errorf("member %q: %w", name.Text(), err)
			}
			out[name.Text()] = decoded
		}
		return out, nil
	default:
		return nil, fmt.Errorf("tipo xml-rpc no soportado <%s>", c.Tag)
	}
}

// charsetReader transcodifica respuestas declaradas en Latin-1 (instancias antiguas detrás de proxies).
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(label) {
	case "iso-8859-1", "iso8859-1", "latin1", "latin-1":
		return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
	}
	return nil, fmt.Errorf("odoo: xml-rpc: charset no soportado %q", label)
}
