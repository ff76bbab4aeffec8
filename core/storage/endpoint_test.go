package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		endpoint   string
		useSSL     bool
		wantHost   string
		wantSecure bool
	}{
		{"localhost:9000", false, "localhost:9000", false},
		{"s3.amazonaws.com", true, "s3.amazonaws.com", true},
		{"https://minio.internal:9000/", false, "minio.internal:9000", true},
		{"http://minio.internal:9000", true, "minio.internal:9000", false},
	}

	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			host, secure, err := parseEndpoint(tt.endpoint, tt.useSSL)
			require.NoError(t, err)
			assert.Equal(t, tt.wantHost, host)
			assert.Equal(t, tt.wantSecure, secure)
		})
	}
}

func TestNewTransport(t *testing.T) {
	tr := newTransport(0)
	assert.Equal(t, 30.0, tr.ResponseHeaderTimeout.Seconds())

	tr = newTransport(5)
	assert.Equal(t, 5.0, tr.TLSHandshakeTimeout.Seconds())
}
