package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fashionfactory/store-backend/internal/models"
	"github.com/fashionfactory/store-backend/internal/utils"
)

func TestNotificationServiceResetEmail(t *testing.T) {
	mailer := &captureMailer{}
	svc, err := NewNotificationService(mailer, testConfig())
	require.NoError(t, err)

	user := &models.User{Username: "lan_anh", Email: "lan@example.com"}
	require.NoError(t, svc.SendPasswordResetEmail(context.Background(), user, "abc123"))

	msg := mailer.last(t)
	assert.Equal(t, "lan@example.com", msg.To)
	assert.Equal(t, `"Fashion Factory" <noreply@shop.test>`, msg.From)
	assert.Contains(t, msg.Subject, "Fashion Factory")
	assert.Contains(t, msg.Text, "http://shop.test/reset-password?token=abc123")
	assert.Contains(t, msg.HTML, "http://shop.test/reset-password?token=abc123")
	assert.Contains(t, msg.Text, "lan_anh")
}

func TestNotificationServiceEscapesHTML(t *testing.T) {
	mailer := &captureMailer{}
	svc, err := NewNotificationService(mailer, testConfig())
	require.NoError(t, err)

	user := &models.User{Username: "<b>lan</b>", Email: "lan@example.com"}
	require.NoError(t, svc.SendOTPEmail(context.Background(), user, "123456"))

	msg := mailer.last(t)
	assert.Contains(t, msg.Text, "123456")
	assert.Contains(t, msg.HTML, "123456")
	assert.False(t, strings.Contains(msg.HTML, "<b>lan</b>"))
}

func TestNotificationServiceRejectsInvalidAddress(t *testing.T) {
	mailer := &captureMailer{}
	svc, err := NewNotificationService(mailer, testConfig())
	require.NoError(t, err)

	err = svc.SendTemplate(context.Background(), "not-an-email", "Hi", TemplateOTP, nil)
	assert.True(t, errors.Is(err, utils.ErrInvalidArgument))
	assert.Empty(t, mailer.sent)
}

func TestNotificationServiceUnknownTemplate(t *testing.T) {
	svc, err := NewNotificationService(&captureMailer{}, testConfig())
	require.NoError(t, err)

	err = svc.SendTemplate(context.Background(), "lan@example.com", "Hi", "missing", nil)
	require.Error(t, err)
	_, isAppErr := utils.AsAppError(err)
	assert.False(t, isAppErr)
}

func TestBuildMIMECarriesBothParts(t *testing.T) {
	raw, err := buildMIME(EmailMessage{
		From:    "noreply@shop.test",
		To:      "lan@example.com",
		Subject: "Đặt lại mật khẩu",
		Text:    "plain body",
		HTML:    "<p>html body</p>",
	})
	require.NoError(t, err)

	body := string(raw)
	assert.Contains(t, body, "multipart/alternative")
	assert.Contains(t, body, "text/plain")
	assert.Contains(t, body, "text/html")
	assert.Contains(t, body, "=?utf-8?")
}
