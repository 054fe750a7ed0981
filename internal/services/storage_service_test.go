// internal/services/storage_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/inccombinator/platform-backend/internal/config"
)

func TestNewLocalStorageService(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{Host: "localhost", Port: "8080"},
	}

	service := NewLocalStorageService(cfg)
	require.NotNil(t, service)

	// Without an S3 client, download links point at the local uploads path.
	url, err := service.GeneratePresignedURL("pitch-decks/20260901_deck.pdf", time.Hour)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080/uploads/pitch-decks/20260901_deck.pdf", url)
}

func TestNewStorageServiceWithoutCredentials(t *testing.T) {
	service, err := NewStorageService(&config.Config{})
	require.NoError(t, err)
	require.NotNil(t, service)
}
