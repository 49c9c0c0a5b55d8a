package soap

import (
	"context"
	"encoding/xml"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	XMLName xml.Name `xml:"ns1:Echo"`
	Value   string   `xml:"value"`
}

type echoResponse struct {
	XMLName xml.Name `xml:"EchoResponse"`
	Value   string   `xml:"value"`
}

const echoResponseBody = `<SOAP-ENV:Envelope xmlns:SOAP-ENV="http://schemas.xmlsoap.org/soap/envelope/">
<SOAP-ENV:Body><EchoResponse><value>pong</value></EchoResponse></SOAP-ENV:Body>
</SOAP-ENV:Envelope>`

const faultResponseBody = `<SOAP-ENV:Envelope xmlns:SOAP-ENV="http://schemas.xmlsoap.org/soap/envelope/">
<SOAP-ENV:Body><SOAP-ENV:Fault><faultcode>Server</faultcode><faultstring>boom</faultstring></SOAP-ENV:Fault></SOAP-ENV:Body>
</SOAP-ENV:Envelope>`

// serverAddr splits a httptest server URL into host and port.
func serverAddr(t *testing.T, rawURL string) (string, int) {
	t.Helper()
	parsed, err := url.Parse(rawURL)
	require.NoError(t, err)
	host, portStr, err := net.SplitHostPort(parsed.Host)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	return host, port
}

func newTLSTransport(t *testing.T, handler http.Handler, fallback bool) (*Transport, *httptest.Server) {
	t.Helper()
	server := httptest.NewTLSServer(handler)
	t.Cleanup(server.Close)
	host, port := serverAddr(t, server.URL)
	return NewTransport(Options{
		Host:      host,
		HTTPSPort: port,
		HTTPPort:  port,
		Username:  "sapadm",
		Password:  "secret",
		Fallback:  fallback,
		Insecure:  true,
		Timeout:   5 * time.Second,
	}), server
}

func TestTransport_Call(t *testing.T) {
	transport, _ := newTLSTransport(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, controlPath, r.URL.Path)

		username, password, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "sapadm", username)
		assert.Equal(t, "secret", password)
		assert.Contains(t, r.Header.Get("Content-Type"), "text/xml")

		_, _ = w.Write([]byte(echoResponseBody))
	}), false)

	var resp echoResponse
	err := transport.Call(context.Background(), "Echo", echoRequest{Value: "ping"}, &resp)
	require.NoError(t, err)
	assert.Equal(t, "pong", resp.Value)
}

func TestTransport_Call_NilResponse(t *testing.T) {
	transport, _ := newTLSTransport(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(echoResponseBody))
	}), false)

	err := transport.Call(context.Background(), "Echo", echoRequest{Value: "ping"}, nil)
	require.NoError(t, err)
}

func TestTransport_Call_Fault(t *testing.T) {
	transport, _ := newTLSTransport(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(faultResponseBody))
	}), false)

	var resp echoResponse
	err := transport.Call(context.Background(), "Echo", echoRequest{}, &resp)
	require.Error(t, err)

	var fault *Fault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, "boom", fault.Reason)
}

func TestTransport_Call_Unauthorized(t *testing.T) {
	transport, _ := newTLSTransport(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}), true)

	err := transport.Call(context.Background(), "Echo", echoRequest{}, nil)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestTransport_Call_FallbackToHTTP(t *testing.T) {
	// A plain HTTP server rejects the TLS handshake of the first attempt,
	// forcing the transport onto the fallback port.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(echoResponseBody))
	}))
	t.Cleanup(server.Close)
	host, port := serverAddr(t, server.URL)

	transport := NewTransport(Options{
		Host:      host,
		HTTPSPort: port,
		HTTPPort:  port,
		Username:  "sapadm",
		Password:  "secret",
		Fallback:  true,
		Timeout:   5 * time.Second,
	})

	var resp echoResponse
	err := transport.Call(context.Background(), "Echo", echoRequest{Value: "ping"}, &resp)
	require.NoError(t, err)
	assert.Equal(t, "pong", resp.Value)

	// The working scheme is remembered on the transport.
	cached, found := transport.schemes.Get(host + ":" + strconv.Itoa(port))
	assert.True(t, found)
	assert.Equal(t, "http", cached)

	// Other transports probe for themselves.
	other := NewTransport(Options{Host: host, HTTPSPort: port})
	_, found = other.schemes.Get(host + ":" + strconv.Itoa(port))
	assert.False(t, found)
}

func TestTransport_Call_NoFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(echoResponseBody))
	}))
	t.Cleanup(server.Close)
	host, port := serverAddr(t, server.URL)

	transport := NewTransport(Options{
		Host:      host,
		HTTPSPort: port,
		HTTPPort:  port,
		Username:  "sapadm",
		Password:  "secret",
		Fallback:  false,
		Timeout:   5 * time.Second,
	})

	err := transport.Call(context.Background(), "Echo", echoRequest{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot reach host agent")
}

func TestNewTransport_Defaults(t *testing.T) {
	t.Parallel()
	transport := NewTransport(Options{Host: "hana01.example.com"})
	assert.Equal(t, DefaultHTTPSPort, transport.opts.HTTPSPort)
	assert.Equal(t, DefaultHTTPPort, transport.opts.HTTPPort)
	assert.Equal(t, 300*time.Second, transport.opts.Timeout)
	assert.Equal(t, "hana01.example.com", transport.Host())
}
