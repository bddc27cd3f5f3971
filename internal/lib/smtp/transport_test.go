package smtp

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/subscription-tracker/internal/config"
)

func TestTransport_From(t *testing.T) {
	tr := NewTransport(config.SMTP{SMTPUser: "bot@example.com"})
	assert.Equal(t, "bot@example.com", tr.From())
}

func TestTransport_ConnectRefused(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	host, port, err := net.SplitHostPort(l.Addr().String())
	require.NoError(t, err)
	require.NoError(t, l.Close())

	_, err = NewTransport(config.SMTP{SMTPHost: host, SMTPPort: port}).Connect()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp.Connect")
}

func TestTransport_ServerWithoutStartTLS(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = l.Close() }()

	go func() {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		defer func() { _ = conn.Close() }()
		_, _ = conn.Write([]byte("220 test ESMTP\r\n"))
		buf := make([]byte, 512)
		if _, err := conn.Read(buf); err != nil {
			return
		}
		_, _ = conn.Write([]byte("250-test\r\n250 AUTH PLAIN\r\n"))
		_, _ = conn.Read(buf)
	}()

	host, port, err := net.SplitHostPort(l.Addr().String())
	require.NoError(t, err)

	_, err = NewTransport(config.SMTP{SMTPHost: host, SMTPPort: port}).Connect()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STARTTLS")
}
