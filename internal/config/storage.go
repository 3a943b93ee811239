package config

import (
	"os"
	"sync"
)

// StorageConfig points at the object store that holds CVs and cover letters.
type StorageConfig struct {
	URL    string
	APIKey string
	Bucket string
}

var (
	storageConfig *StorageConfig
	storageOnce   sync.Once
)

func LoadStorageConfig() *StorageConfig {
	storageOnce.Do(func() {
		storageConfig = &StorageConfig{
			URL:    os.Getenv("STORAGE_URL"),
			APIKey: os.Getenv("STORAGE_KEY"),
			Bucket: getEnv("STORAGE_BUCKET", "applications"),
		}
	})
	return storageConfig
}
