package config

import (
	"os"
	"sync"
)

type NATSConfig struct {
	URL     string
	Subject string
}

var (
	natsConfig *NATSConfig
	natsOnce   sync.Once
)

func LoadNATSConfig() *NATSConfig {
	natsOnce.Do(func() {
		natsConfig = &NATSConfig{
			URL:     os.Getenv("NATS_URL"),
			Subject: getEnv("NATS_SUBJECT", "applications.submitted"),
		}
	})
	return natsConfig
}
