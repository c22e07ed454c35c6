package storage

import (
	"testing"

	"Sampler/config"

	"github.com/stretchr/testify/assert"
)

func TestNewMinioClient_Disabled(t *testing.T) {
	_, err := NewMinioClient(&config.Config{})
	assert.ErrorIs(t, err, ErrMinioDisabled)
}

func TestNewMinioClient_Unreachable(t *testing.T) {
	_, err := NewMinioClient(&config.Config{
		MinioEndpoint:  "127.0.0.1:1",
		MinioAccessKey: "key",
		MinioSecretKey: "secret",
		MinioRegion:    "us-east-1",
	})
	assert.Error(t, err)
}

func TestClipSource(t *testing.T) {
	c := Clip{Key: "pads/clap.mp3"}
	assert.Equal(t, "minio://sounds/pads/clap.mp3", c.Source("sounds"))
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512 B", FormatSize(512))
	assert.Equal(t, "1.50 KB", FormatSize(1536))
	assert.Equal(t, "2.00 MB", FormatSize(2<<20))
}
