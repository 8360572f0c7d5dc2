package server

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/interview-coach/internal/config"
)

func writeTestCertificate(t *testing.T) (certFile, keyFile string) {
	t.Helper()

	dir := t.TempDir()
	certFile = filepath.Join(dir, "server.crt")
	keyFile = filepath.Join(dir, "server.key")

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{Organization: []string{"Interview Coach Test"}},
		NotBefore:    time.Now(),
		NotAfter:     time.Now().Add(365 * 24 * time.Hour),
		KeyUsage:     x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		IPAddresses:  []net.IP{net.IPv4(127, 0, 0, 1)},
	}

	certDER, err := x509.CreateCertificate(rand.Reader, &template, &template, &privateKey.PublicKey, privateKey)
	require.NoError(t, err)

	certOut, err := os.Create(certFile)
	require.NoError(t, err)
	defer certOut.Close()

	err = pem.Encode(certOut, &pem.Block{Type: "CERTIFICATE", Bytes: certDER})
	require.NoError(t, err)

	keyOut, err := os.Create(keyFile)
	require.NoError(t, err)
	defer keyOut.Close()

	privKeyBytes, err := x509.MarshalPKCS8PrivateKey(privateKey)
	require.NoError(t, err)

	err = pem.Encode(keyOut, &pem.Block{Type: "PRIVATE KEY", Bytes: privKeyBytes})
	require.NoError(t, err)

	return certFile, keyFile
}

func TestNewSecurityLayer(t *testing.T) {
	t.Parallel()

	plain := NewSecurityLayer(config.HTTP{})
	assert.IsType(t, &PlainListener{}, plain)

	secure := NewSecurityLayer(config.HTTP{EnableHTTPS: true, CertFileName: "c.pem", PrivateKeyFileName: "k.pem"})
	require.IsType(t, &TLSListener{}, secure)
	assert.Equal(t, "c.pem", secure.(*TLSListener).certFileName)
	assert.Equal(t, "k.pem", secure.(*TLSListener).privateKeyFileName)
}

func TestTLSListener_Listen(t *testing.T) {
	t.Parallel()

	certFile, keyFile := writeTestCertificate(t)

	tests := []struct {
		name     string
		listener *TLSListener
		addr     string
		wantErr  string
	}{
		{name: "serves TLS", listener: NewTLSListener(certFile, keyFile), addr: "127.0.0.1:0"},
		{name: "missing certificate", listener: NewTLSListener("nonexistent.crt", "nonexistent.key"), addr: "127.0.0.1:0", wantErr: "failed to load TLS certificate"},
		{name: "invalid address", listener: NewTLSListener(certFile, keyFile), addr: "invalid-address", wantErr: "failed to listen"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ln, err := tt.listener.Listen("tcp", tt.addr)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			defer ln.Close()

			go func() {
				conn, err := ln.Accept()
				if err != nil {
					return
				}
				defer conn.Close()
				_ = conn.(*tls.Conn).Handshake()
			}()

			conn, err := tls.Dial("tcp", ln.Addr().String(), &tls.Config{InsecureSkipVerify: true}) //nolint:gosec
			require.NoError(t, err)
			defer conn.Close()
			assert.GreaterOrEqual(t, conn.ConnectionState().Version, uint16(tls.VersionTLS12))
		})
	}
}

func TestPlainListener_Listen(t *testing.T) {
	t.Parallel()

	ln, err := NewPlainListener().Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	_, ok := ln.(*net.TCPListener)
	assert.True(t, ok)

	_, err = NewPlainListener().Listen("tcp", "invalid-address")
	require.ErrorContains(t, err, "failed to listen")
}
