package service

import (
	"context"
	"elearning_backend/internal/config"
	"elearning_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageService_GetURL(t *testing.T) {
	s := NewStorageService(&config.Config{Storage: config.StorageConfig{Type: util.StorageLocal}})
	ctx := context.Background()

	tests := []struct {
		name string
		path string
		want string
	}{
		{"empty", "", ""},
		{"relative", "attachments/intro.pdf", "/uploads/attachments/intro.pdf"},
		{"leading slash", "/attachments/intro.pdf", "/uploads/attachments/intro.pdf"},
		{"absolute http", "http://cdn.example/a.pdf", "http://cdn.example/a.pdf"},
		{"absolute https", "https://cdn.example/a.pdf", "https://cdn.example/a.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.GetURL(ctx, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewStorageService_MinioFallsBackToLocal(t *testing.T) {
	s := NewStorageService(&config.Config{Storage: config.StorageConfig{Type: util.StorageMinio}})
	_, ok := s.Provider.(*LocalStorageProvider)
	assert.True(t, ok, "minio without endpoint should fall back to local storage")

	s = NewStorageService(&config.Config{Storage: config.StorageConfig{
		Type:          util.StorageMinio,
		MinioEndpoint: "minio.internal:9000",
		MinioBucket:   "course-attachments",
	}})
	_, ok = s.Provider.(*MinioStorageProvider)
	assert.True(t, ok)
}
