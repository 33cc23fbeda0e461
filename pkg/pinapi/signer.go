// Package pinapi: firma HMAC-SHA256 de las peticiones al API externo de venta de pines.
//
// Firma = hex(HMAC-SHA256(apiSecret, verbo + ruta + timestamp + cuerpoJSON)), donde la ruta
// se firma sin la barra inicial ("api/pins/authorize") aunque la petición HTTP sí la lleve.

package pinapi

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"
)

// TimestampLayout formato del header X-Date (UTC con milisegundos).
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Nombres de headers de la firma.
const (
	HeaderDate          = "X-Date"
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
)

// ErrMissingCredentials se devuelve cuando falta apiKey o apiSecret; el caller debe abortar.
var ErrMissingCredentials = errors.New("pinapi: apiKey o apiSecret vacíos")

// Credentials par apiKey/apiSecret entregado por el proveedor.
type Credentials struct {
	APIKey    string
	APISecret string
}

// Complete indica si ambas partes de la credencial están presentes.
func (c Credentials) Complete() bool {
	return strings.TrimSpace(c.APIKey) != "" && strings.TrimSpace(c.APISecret) != ""
}

// Headers conjunto de headers firmados.
type Headers map[string]string

// Signer construye los headers firmados para una credencial.
type Signer struct {
	creds Credentials
	now   func() time.Time
}

// NewSigner crea el firmador con el reloj del sistema.
func NewSigner(creds Credentials) *Signer {
	return &Signer{creds: creds, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (s *Signer) WithClock(now func() time.Time) *Signer {
	s.now = now
	return s
}

// Headers firma verb + route + body con el timestamp actual.
func (s *Signer) Headers(verb, route string, body []byte) (Headers, error) {
	if !s.creds.Complete() {
		return nil, ErrMissingCredentials
	}
	ts := s.now().UTC().Format(TimestampLayout)
	sig := Sign(s.creds.APISecret, verb, route, ts, string(body))
	return Headers{
		HeaderDate:          ts,
		HeaderAuthorization: s.creds.APIKey + ":" + sig,
		HeaderContentType:   "application/json",
	}, nil
}

// Sign calcula la firma hexadecimal. route puede venir con o sin "/" inicial.
func Sign(secret, verb, route, timestamp, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(verb))
	mac.Write([]byte(SigningRoute(route)))
	mac.Write([]byte(timestamp))
	mac.Write([]byte(body))
	return hex.EncodeToString(mac.Sum(nil))
}

// SigningRoute quita la barra inicial de la ruta.
func SigningRoute(route string) string {
	return strings.TrimPrefix(route, "/")
}
