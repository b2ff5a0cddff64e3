package email

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyLink(t *testing.T) {
	link := VerifyLink("http://localhost:5173/", "abc123", "signup")
	assert.Equal(t, "http://localhost:5173/auth/verify?token_hash=abc123&type=signup", link)
}

func TestRender_EscapesLink(t *testing.T) {
	html, err := render(message{Title: "T", Body: "B", Button: "Go", Link: `http://x/?a=1&b="2"`})
	require.NoError(t, err)
	assert.Contains(t, html, "Go")
	assert.NotContains(t, html, `"2"`)
}

func TestLogSender(t *testing.T) {
	s := NewLogSender("http://app")
	assert.NoError(t, s.SendVerification(context.Background(), "a@b.c", "tok"))
	assert.NoError(t, s.SendRecovery(context.Background(), "a@b.c", "tok"))
}
