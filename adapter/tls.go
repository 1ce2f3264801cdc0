package adapter

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
)

// caFile returns path when it names a regular file holding at least one
// PEM certificate. A blank or missing path yields "" and no error.
func caFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", nil
	}
	pem, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("adapter: read CA file %s: %w", path, err)
	}
	if !x509.NewCertPool().AppendCertsFromPEM(pem) {
		return "", fmt.Errorf("%w: invalid PEM data in CA file %s", ErrInvalidConfig, path)
	}
	return path, nil
}

// LoadCAPool builds a client TLS config trusting the CA at path. It returns
// nil when the path is blank or missing.
func LoadCAPool(path string) (*tls.Config, error) {
	file, err := caFile(path)
	if err != nil || file == "" {
		return nil, err
	}
	pem, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("adapter: read CA file %s: %w", file, err)
	}
	pool := x509.NewCertPool()
	pool.AppendCertsFromPEM(pem)
	return &tls.Config{
		RootCAs:    pool,
		MinVersion: tls.VersionTLS12,
	}, nil
}
