package nas

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hosfile/prepay-api/pkg/config"
)

func testConfig() config.NASConfig {
	return config.NASConfig{
		Host:       "nas.example.com",
		Port:       5001,
		Username:   "uploader",
		Password:   "secret",
		UploadPath: "/선납파일",
	}
}

func setupHTTPMock(t *testing.T) {
	t.Helper()
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)
}

func registerLogin(body string) {
	httpmock.RegisterResponder(http.MethodGet, `=~^https://nas\.example\.com:5001/webapi/auth\.cgi`,
		httpmock.NewStringResponder(http.StatusOK, body))
}

func registerUpload(body string) {
	httpmock.RegisterResponder(http.MethodPost, `=~^https://nas\.example\.com:5001/webapi/entry\.cgi`,
		httpmock.NewStringResponder(http.StatusOK, body))
}

func tempFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "receipt.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 test"), 0o644))
	return path
}

func TestSessionLoginSuccess(t *testing.T) {
	setupHTTPMock(t)
	registerLogin(`{"success":true,"data":{"sid":"sid-123"}}`)

	s := NewSession(testConfig(), zap.NewNop())
	require.False(t, s.Authenticated())

	err := s.Login(context.Background())

	require.NoError(t, err)
	assert.True(t, s.Authenticated())
}

func TestSessionLoginRejected(t *testing.T) {
	setupHTTPMock(t)
	registerLogin(`{"success":false,"error":{"code":400}}`)

	s := NewSession(testConfig(), zap.NewNop())
	err := s.Login(context.Background())

	require.Error(t, err)
	assert.False(t, s.Authenticated())
}

func TestSessionLoginNetworkError(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder(http.MethodGet, `=~^https://nas\.example\.com:5001/webapi/auth\.cgi`,
		httpmock.NewErrorResponder(assert.AnError))

	s := NewSession(testConfig(), zap.NewNop())
	err := s.Login(context.Background())

	require.Error(t, err)
	assert.False(t, s.Authenticated())
}

func TestSessionUploadWithImplicitLogin(t *testing.T) {
	setupHTTPMock(t)
	registerLogin(`{"success":true,"data":{"sid":"sid-123"}}`)
	registerUpload(`{"success":true}`)

	s := NewSession(testConfig(), zap.NewNop())
	err := s.Upload(context.Background(), tempFile(t), "")

	require.NoError(t, err)
	assert.True(t, s.Authenticated())
	assert.Equal(t, 2, httpmock.GetTotalCallCount())
}

func TestSessionUploadFailsWhenImplicitLoginFails(t *testing.T) {
	setupHTTPMock(t)
	registerLogin(`{"success":false,"error":{"code":400}}`)

	s := NewSession(testConfig(), zap.NewNop())
	err := s.Upload(context.Background(), tempFile(t), "")

	require.Error(t, err)
	assert.False(t, s.Authenticated())
	// only the login attempt went out
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestSessionUploadMissingLocalFile(t *testing.T) {
	setupHTTPMock(t)
	registerLogin(`{"success":true,"data":{"sid":"sid-123"}}`)

	s := NewSession(testConfig(), zap.NewNop())
	require.NoError(t, s.Login(context.Background()))

	err := s.Upload(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"), "")

	require.Error(t, err)
	// no upload request was made for a missing file
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestSessionUploadRejectedByRemote(t *testing.T) {
	setupHTTPMock(t)
	registerLogin(`{"success":true,"data":{"sid":"sid-123"}}`)
	registerUpload(`{"success":false,"error":{"code":407}}`)

	s := NewSession(testConfig(), zap.NewNop())
	err := s.Upload(context.Background(), tempFile(t), "/선납파일")

	require.Error(t, err)
}

func TestSessionLogoutWithoutLoginIsNoop(t *testing.T) {
	setupHTTPMock(t)

	s := NewSession(testConfig(), zap.NewNop())
	s.Logout(context.Background())

	assert.Equal(t, 0, httpmock.GetTotalCallCount())
}

func TestSessionLogoutClearsToken(t *testing.T) {
	setupHTTPMock(t)
	registerLogin(`{"success":true,"data":{"sid":"sid-123"}}`)

	s := NewSession(testConfig(), zap.NewNop())
	require.NoError(t, s.Login(context.Background()))
	require.True(t, s.Authenticated())

	s.Logout(context.Background())

	assert.False(t, s.Authenticated())
}

func TestSessionProbe(t *testing.T) {
	setupHTTPMock(t)
	registerLogin(`{"success":true,"data":{"sid":"sid-123"}}`)

	s := NewSession(testConfig(), zap.NewNop())
	require.NoError(t, s.Probe(context.Background()))
	assert.False(t, s.Authenticated())
}
