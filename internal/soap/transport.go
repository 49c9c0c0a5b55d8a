package soap

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"

	"github.com/sapops/hostctl/internal/logging"
)

const (
	// DefaultHTTPSPort is the TLS control port of the host agent.
	DefaultHTTPSPort = 1129
	// DefaultHTTPPort is the plaintext fallback port.
	DefaultHTTPPort = 1128

	controlPath = "/SAPHostControl"

	schemeCacheTTL = 30 * time.Minute
)

// ErrUnauthorized indicates the host agent rejected the credentials.
var ErrUnauthorized = errors.New("host agent rejected credentials")

// Options configures a Transport.
type Options struct {
	Host      string
	HTTPSPort int
	HTTPPort  int
	Username  string
	Password  string

	// Fallback permits retrying over plain HTTP when the HTTPS connection
	// cannot be established.
	Fallback bool

	// Insecure disables TLS certificate verification.
	Insecure bool

	Timeout time.Duration
}

// Transport posts SOAP envelopes to the host agent control interface.
type Transport struct {
	opts   Options
	client *http.Client
	// schemes remembers which scheme worked so a run of calls only probes
	// the TLS port once.
	schemes *cache.Cache
	log     logging.Logger
}

// NewTransport returns a Transport for the given host agent.
func NewTransport(opts Options) *Transport {
	if opts.HTTPSPort == 0 {
		opts.HTTPSPort = DefaultHTTPSPort
	}
	if opts.HTTPPort == 0 {
		opts.HTTPPort = DefaultHTTPPort
	}
	if opts.Timeout == 0 {
		opts.Timeout = 300 * time.Second
	}
	httpTransport := &http.Transport{}
	if opts.Insecure {
		httpTransport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402
	}
	return &Transport{
		opts: opts,
		client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: httpTransport,
		},
		schemes: cache.New(schemeCacheTTL, schemeCacheTTL),
		log:     logging.New("soap"),
	}
}

// Host returns the host agent hostname this transport talks to.
func (t *Transport) Host() string { return t.opts.Host }

// Call posts the payload as operation against the control interface and
// unmarshals the response body into response. A nil response discards the
// body after fault checking.
func (t *Transport) Call(ctx context.Context, operation string, payload, response interface{}) error {
	doc, err := marshalEnvelope(payload)
	if err != nil {
		return err
	}

	requestID := uuid.NewString()
	log := t.log.WithField("operation", operation).WithField("request_id", requestID)

	body, err := t.post(ctx, log, doc)
	if err != nil {
		return err
	}

	var env responseEnvelope
	if err := xml.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("failed to decode soap response: %w", err)
	}
	if env.Body.Fault != nil {
		return env.Body.Fault
	}
	if response == nil {
		return nil
	}
	if err := xml.Unmarshal(env.Body.Inner, response); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", operation, err)
	}
	return nil
}

// post sends the document, trying HTTPS first and falling back to HTTP when
// permitted. The working scheme is cached on the transport.
func (t *Transport) post(ctx context.Context, log logging.Logger, doc []byte) ([]byte, error) {
	cacheKey := fmt.Sprintf("%s:%d", t.opts.Host, t.opts.HTTPSPort)
	schemes := []string{"https"}
	if cached, ok := t.schemes.Get(cacheKey); ok && cached == "http" && t.opts.Fallback {
		schemes = []string{"http"}
	} else if t.opts.Fallback {
		schemes = append(schemes, "http")
	}

	var lastErr error
	for i, scheme := range schemes {
		if i > 0 {
			log.Warn("HTTPS connection failed, retrying over an unsecured HTTP connection")
		}
		body, err := t.postOnce(ctx, scheme, doc)
		if err == nil {
			t.schemes.Set(cacheKey, scheme, schemeCacheTTL)
			return body, nil
		}
		lastErr = err
		// Credential and fault errors will not improve on another scheme.
		if errors.Is(err, ErrUnauthorized) {
			return nil, err
		}
		log.WithError(err).Debugf("request over %s failed", scheme)
	}
	return nil, fmt.Errorf("cannot reach host agent on %s: %w", t.opts.Host, lastErr)
}

func (t *Transport) postOnce(ctx context.Context, scheme string, doc []byte) ([]byte, error) {
	port := t.opts.HTTPSPort
	if scheme == "http" {
		port = t.opts.HTTPPort
	}
	url := fmt.Sprintf("%s://%s:%d%s", scheme, t.opts.Host, port, controlPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", `""`)
	req.SetBasicAuth(t.opts.Username, t.opts.Password)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrUnauthorized
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusInternalServerError:
		// SOAP faults arrive as 500 with a fault body.
		return body, nil
	default:
		return nil, fmt.Errorf("unexpected status %d from host agent", resp.StatusCode)
	}
}
