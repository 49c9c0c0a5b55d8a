package hostagent

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"github.com/sapops/hostctl/internal/soap"
)

// The SDA plugin is served by the host agent itself, over plain HTTPS rather
// than SOAP.
const (
	sdaPingPath   = "/lmsl/sda/default/?service=ping"
	sdaDeployPath = "/SMDAgent/deploy"

	sdaArchiveField = "sda-archive"
	jvmArchiveField = "jvm-archive"
)

type sdaClient struct {
	baseURL  string
	username string
	password string
	insecure bool

	verifying *http.Client
	skipping  *http.Client
}

func newSDAClient(opts soap.Options) *sdaClient {
	port := opts.HTTPSPort
	if port == 0 {
		port = soap.DefaultHTTPSPort
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 300 * time.Second
	}
	return &sdaClient{
		baseURL:  fmt.Sprintf("https://%s:%d", opts.Host, port),
		username: opts.Username,
		password: opts.Password,
		insecure: opts.Insecure,
		verifying: &http.Client{
			Timeout:   timeout,
			Transport: &http.Transport{},
		},
		skipping: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // #nosec G402
			},
		},
	}
}

// httpClient picks the session for the requested verification mode. A
// transport-level Insecure setting always wins.
func (s *sdaClient) httpClient(verify bool) *http.Client {
	if s.insecure || !verify {
		return s.skipping
	}
	return s.verifying
}

// ping asks the SDA for its version info. A response that does not parse as
// version JSON means the agent is not installed.
func (s *sdaClient) ping(ctx context.Context, verify bool) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+sdaPingPath, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build ping request: %w", err)
	}
	req.SetBasicAuth(s.username, s.password)

	resp, err := s.httpClient(verify).Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to ping sda: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", ErrSDANotInstalled
	}

	var info struct {
		Software string `json:"software"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil || info.Software == "" {
		return "", ErrSDANotInstalled
	}
	return info.Software, nil
}

// deploy uploads the SDA and JVM archives as a multipart form.
func (s *sdaClient) deploy(ctx context.Context, sdaArchive, jvmArchive string, verify bool) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for field, path := range map[string]string{
		sdaArchiveField: sdaArchive,
		jvmArchiveField: jvmArchive,
	} {
		if err := addArchive(writer, field, path); err != nil {
			return err
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+sdaDeployPath, &body)
	if err != nil {
		return fmt.Errorf("failed to build deploy request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.SetBasicAuth(s.username, s.password)

	resp, err := s.httpClient(verify).Do(req)
	if err != nil {
		return fmt.Errorf("failed to upload sda: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("sda deploy rejected with status %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}
	return nil
}

func addArchive(writer *multipart.Writer, field, path string) error {
	// #nosec G304
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open archive %s: %w", path, err)
	}
	defer file.Close()

	part, err := writer.CreateFormFile(field, file.Name())
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to copy archive %s: %w", path, err)
	}
	return nil
}
