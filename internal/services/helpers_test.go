package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/fashionfactory/store-backend/internal/config"
)

type captureMailer struct {
	mu   sync.Mutex
	sent []EmailMessage
	err  error
}

func (m *captureMailer) Send(_ context.Context, msg EmailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *captureMailer) last(t *testing.T) EmailMessage {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.sent, "no email sent")
	return m.sent[len(m.sent)-1]
}

var errSMTPDown = errors.New("smtp: connection refused")

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Server:      config.ServerConfig{PublicURL: "http://api.test"},
		JWT:         config.JWTConfig{SecretKey: "test-secret", AccessTokenTTL: 1},
		Email:       config.EmailConfig{FromEmail: "noreply@shop.test", FromName: "Fashion Factory"},
		Frontend:    config.FrontendConfig{BaseURL: "http://shop.test"},
		Catalog: config.CatalogConfig{
			DefaultPageSize: 10,
			MaxPageSize:     100,
			TopSellingMode:  config.TopSellingSample,
		},
	}
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// fileHeader builds a parsed multipart upload carrying content.
func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	require.Len(t, form.File["file"], 1)
	return form.File["file"][0]
}

var (
	pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n', 0, 0, 0, 0}
	jpegBytes = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0x10, 'J', 'F', 'I', 'F'}
)
