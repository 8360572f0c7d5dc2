// Package server provides the listeners the HTTP server accepts connections on.
package server

import (
	"crypto/tls"
	"fmt"
	"net"

	"github.com/dtroode/interview-coach/internal/config"
	"github.com/dtroode/interview-coach/internal/model"
)

var (
	_ model.SecurityLayer = (*TLSListener)(nil)
	_ model.SecurityLayer = (*PlainListener)(nil)
)

// NewSecurityLayer picks the listener the HTTP server accepts connections on.
//
// Parameters:
//   - cfg: HTTP settings; EnableHTTPS selects TLS and names the PEM files
//
// Returns a TLSListener when HTTPS is enabled and a PlainListener otherwise.
func NewSecurityLayer(cfg config.HTTP) model.SecurityLayer {
	if cfg.EnableHTTPS {
		return NewTLSListener(cfg.CertFileName, cfg.PrivateKeyFileName)
	}
	return NewPlainListener()
}

// TLSListener terminates TLS with a certificate loaded from disk.
// It serves HTTP/1.1 only, which keeps SSE responses on a single connection.
type TLSListener struct {
	certFileName       string
	privateKeyFileName string
}

// NewTLSListener creates a TLSListener for the given PEM files.
// The files are read lazily by Listen, not here.
//
// Parameters:
//   - certFileName: Path to the PEM certificate chain
//   - privateKeyFileName: Path to the PEM private key
//
// Returns a pointer to the new TLSListener.
func NewTLSListener(certFileName, privateKeyFileName string) *TLSListener {
	return &TLSListener{
		certFileName:       certFileName,
		privateKeyFileName: privateKeyFileName,
	}
}

// Listen loads the key pair and opens a TLS listener.
// The key pair is loaded on every call, so a rotated certificate is picked up on restart.
//
// Parameters:
//   - protocol: Network to listen on, usually "tcp"
//   - addr: Address to bind, e.g. ":8080"
//
// Returns the TLS listener, or an error if the key pair cannot be loaded or addr cannot be bound.
func (l *TLSListener) Listen(protocol, addr string) (net.Listener, error) {
	cert, err := tls.LoadX509KeyPair(l.certFileName, l.privateKeyFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
	}

	ln, err := tls.Listen(protocol, addr, &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
		NextProtos:   []string{"http/1.1"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return ln, nil
}

// PlainListener accepts unencrypted connections.
type PlainListener struct{}

// NewPlainListener creates a PlainListener.
//
// Returns a pointer to the new PlainListener.
func NewPlainListener() *PlainListener {
	return &PlainListener{}
}

// Listen opens an unencrypted listener.
//
// Parameters:
//   - protocol: Network to listen on, usually "tcp"
//   - addr: Address to bind, e.g. ":8080"
//
// Returns the listener, or an error if addr cannot be bound.
func (l *PlainListener) Listen(protocol, addr string) (net.Listener, error) {
	ln, err := net.Listen(protocol, addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return ln, nil
}
