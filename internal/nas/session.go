// Package nas talks to the network-attached-storage appliance through its
// session-based HTTP API. One Session models the explicit
// Unauthenticated → Authenticated → Unauthenticated protocol: login fetches a
// sid, uploads reuse it, logout invalidates it. There is no retry, pooling or
// persistence; a session lives only in process memory.
package nas

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hosfile/prepay-api/pkg/config"
)

const (
	authAPI    = "SYNO.API.Auth"
	uploadAPI  = "SYNO.FileStation.Upload"
	sessionKey = "FileStation"
)

// Session holds one authenticated connection to the appliance.
type Session struct {
	cfg     config.NASConfig
	baseURL string
	client  *http.Client
	logger  *zap.Logger

	mu  sync.Mutex
	sid string
}

// NewSession builds an unauthenticated session from config.
func NewSession(cfg config.NASConfig, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.UploadTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	client := &http.Client{Timeout: timeout}
	if cfg.SkipTLSVerify {
		// Appliances commonly ship self-signed certificates.
		client.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec
		}
	}
	return &Session{
		cfg:     cfg,
		baseURL: fmt.Sprintf("https://%s:%d", cfg.Host, cfg.Port),
		client:  client,
		logger:  logger,
	}
}

type apiResponse struct {
	Success bool `json:"success"`
	Data    struct {
		SID string `json:"sid"`
	} `json:"data"`
	Error json.RawMessage `json:"error"`
}

// Authenticated reports whether the session currently holds a token.
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sid != ""
}

// Login requests a FileStation session. On failure the session stays
// unauthenticated; the returned error is the failure reason and is safe for
// the caller to discard.
func (s *Session) Login(ctx context.Context) error {
	params := url.Values{}
	params.Set("api", authAPI)
	params.Set("version", "3")
	params.Set("method", "login")
	params.Set("account", s.cfg.Username)
	params.Set("passwd", s.cfg.Password)
	params.Set("session", sessionKey)
	params.Set("format", "cookie")

	resp, err := s.get(ctx, "/webapi/auth.cgi", params)
	if err != nil {
		s.logger.Warn("nas login failed", zap.Error(err))
		return err
	}
	if !resp.Success {
		err := fmt.Errorf("nas login rejected: %s", string(resp.Error))
		s.logger.Warn("nas login failed", zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.sid = resp.Data.SID
	s.mu.Unlock()
	s.logger.Info("nas login succeeded")
	return nil
}

// Upload pushes one local file into destFolder on the appliance, logging in
// first when no session is cached. It requires the local file to exist and
// makes no network call when it does not.
func (s *Session) Upload(ctx context.Context, localPath, destFolder string) error {
	if destFolder == "" {
		destFolder = s.cfg.UploadPath
	}

	if !s.Authenticated() {
		if err := s.Login(ctx); err != nil {
			return fmt.Errorf("implicit login: %w", err)
		}
	}

	file, err := os.Open(localPath)
	if err != nil {
		err = fmt.Errorf("local file missing: %w", err)
		s.logger.Warn("nas upload aborted", zap.String("path", localPath), zap.Error(err))
		return err
	}
	defer file.Close() //nolint:errcheck

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fields := map[string]string{
		"api":            uploadAPI,
		"version":        "2",
		"method":         "upload",
		"path":           destFolder,
		"create_parents": "true",
		"overwrite":      "true",
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("build upload form: %w", err)
		}
	}
	part, err := writer.CreateFormFile("file", filepath.Base(localPath))
	if err != nil {
		return fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("read local file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finish upload form: %w", err)
	}

	s.mu.Lock()
	sid := s.sid
	s.mu.Unlock()

	uploadURL := fmt.Sprintf("%s/webapi/entry.cgi?_sid=%s", s.baseURL, url.QueryEscape(sid))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, body)
	if err != nil {
		return fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	httpResp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("nas upload failed", zap.String("path", localPath), zap.Error(err))
		return fmt.Errorf("upload request: %w", err)
	}
	defer httpResp.Body.Close() //nolint:errcheck

	resp, err := decode(httpResp)
	if err != nil {
		s.logger.Warn("nas upload failed", zap.String("path", localPath), zap.Error(err))
		return err
	}
	if !resp.Success {
		err := fmt.Errorf("nas upload rejected: %s", string(resp.Error))
		s.logger.Warn("nas upload failed", zap.String("path", localPath), zap.Error(err))
		return err
	}

	s.logger.Info("nas upload succeeded", zap.String("path", localPath), zap.String("dest", destFolder))
	return nil
}

// Logout invalidates the cached session token. A session that never logged
// in is a no-op; remote failures are logged only.
func (s *Session) Logout(ctx context.Context) {
	s.mu.Lock()
	sid := s.sid
	s.mu.Unlock()
	if sid == "" {
		return
	}

	params := url.Values{}
	params.Set("api", authAPI)
	params.Set("version", "3")
	params.Set("method", "logout")
	params.Set("session", sessionKey)
	params.Set("_sid", sid)

	if _, err := s.get(ctx, "/webapi/auth.cgi", params); err != nil {
		s.logger.Warn("nas logout failed", zap.Error(err))
	}

	s.mu.Lock()
	s.sid = ""
	s.mu.Unlock()
	s.logger.Info("nas logout complete")
}

// Probe verifies connectivity with a throwaway login/logout round trip.
func (s *Session) Probe(ctx context.Context) error {
	if err := s.Login(ctx); err != nil {
		return err
	}
	s.Logout(ctx)
	return nil
}

func (s *Session) get(ctx context.Context, path string, params url.Values) (*apiResponse, error) {
	reqURL := fmt.Sprintf("%s%s?%s", s.baseURL, path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpResp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", path, err)
	}
	defer httpResp.Body.Close() //nolint:errcheck
	return decode(httpResp)
}

func decode(httpResp *http.Response) (*apiResponse, error) {
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", httpResp.StatusCode)
	}
	resp := &apiResponse{}
	if err := json.NewDecoder(httpResp.Body).Decode(resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return resp, nil
}
