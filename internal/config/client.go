package config

import (
	"os"
	"sync"
)

// ClientConfig is read by the careers CLI, not by the server.
type ClientConfig struct {
	APIURL     string
	AdminToken string
}

var (
	clientConfig *ClientConfig
	clientOnce   sync.Once
)

func LoadClientConfig() *ClientConfig {
	clientOnce.Do(func() {
		clientConfig = &ClientConfig{
			APIURL:     getEnv("CAREERS_API_URL", "http://localhost:8080"),
			AdminToken: os.Getenv("CAREERS_ADMIN_TOKEN"),
		}
	})
	return clientConfig
}
