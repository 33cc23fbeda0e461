package pinapi_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pines-admin-api/pkg/pinapi"
)

const (
	testSecret    = "s3cr3t"
	testAPIKey    = "key-001"
	testTimestamp = "2026-10-16T12:00:00.000Z"
)

// Vectores calculados con: printf '%s' "<cadena>" | openssl dgst -sha256 -hmac s3cr3t
const (
	vectorCapture  = "5fa7f3879221cfee9017f82a940473e942855af3af727f5052f33b783b2ba8e7"
	vectorProducts = "e3e4af75c973428be53195a446f395512167486ab5bb6fb5010ea238acdb5814"
)

func fixedClock() time.Time {
	return time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
}

func TestSign_VectorExacto(t *testing.T) {
	sig := pinapi.Sign(testSecret, "POST", "/api/pins/capture", testTimestamp, `{"id":"auth-123"}`)
	assert.Equal(t, vectorCapture, sig)

	sig = pinapi.Sign(testSecret, "GET", "/api/products", testTimestamp, "")
	assert.Equal(t, vectorProducts, sig)
}

func TestSign_RutaConYSinBarraFirmaIgual(t *testing.T) {
	a := pinapi.Sign(testSecret, "GET", "/api/products", testTimestamp, "")
	b := pinapi.Sign(testSecret, "GET", "api/products", testTimestamp, "")
	assert.Equal(t, a, b)
}

func TestSign_Determinista(t *testing.T) {
	a := pinapi.Sign(testSecret, "POST", "/api/pins/authorize", testTimestamp, `{"quantity":10}`)
	b := pinapi.Sign(testSecret, "POST", "/api/pins/authorize", testTimestamp, `{"quantity":10}`)
	assert.Equal(t, a, b)
}

func TestSign_CualquierCambioCambiaLaFirma(t *testing.T) {
	base := pinapi.Sign(testSecret, "POST", "/api/pins/authorize", testTimestamp, `{"quantity":10}`)

	variants := map[string]string{
		"verbo":     pinapi.Sign(testSecret, "PUT", "/api/pins/authorize", testTimestamp, `{"quantity":10}`),
		"ruta":      pinapi.Sign(testSecret, "POST", "/api/pins/capture", testTimestamp, `{"quantity":10}`),
		"timestamp": pinapi.Sign(testSecret, "POST", "/api/pins/authorize", "2026-10-16T12:00:01.000Z", `{"quantity":10}`),
		"cuerpo":    pinapi.Sign(testSecret, "POST", "/api/pins/authorize", testTimestamp, `{"quantity":9}`),
		"secreto":   pinapi.Sign("otro", "POST", "/api/pins/authorize", testTimestamp, `{"quantity":10}`),
	}
	for name, sig := range variants {
		assert.NotEqual(t, base, sig, "cambiar %s debe cambiar la firma", name)
	}
}

func TestSigner_Headers(t *testing.T) {
	s := pinapi.NewSigner(pinapi.Credentials{APIKey: testAPIKey, APISecret: testSecret}).WithClock(fixedClock)

	h, err := s.Headers("POST", "/api/pins/capture", []byte(`{"id":"auth-123"}`))
	require.NoError(t, err)

	assert.Equal(t, testTimestamp, h[pinapi.HeaderDate])
	assert.Equal(t, testAPIKey+":"+vectorCapture, h[pinapi.HeaderAuthorization])
	assert.Equal(t, "application/json", h[pinapi.HeaderContentType])
}

func TestSigner_SinCredenciales_NoDevuelveHeaders(t *testing.T) {
	cases := []pinapi.Credentials{
		{},
		{APIKey: testAPIKey},
		{APISecret: testSecret},
		{APIKey: "  ", APISecret: testSecret},
	}
	for _, c := range cases {
		h, err := pinapi.NewSigner(c).Headers("GET", "/api/products", nil)
		assert.ErrorIs(t, err, pinapi.ErrMissingCredentials)
		assert.Nil(t, h)
	}
}
