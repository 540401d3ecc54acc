package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// harnessConfig is ambient configuration for the demo binary only — the
// engine's own contract takes no config file.
type harnessConfig struct {
	LogLevel      string `yaml:"log-level"`
	TicketDBPath  string `yaml:"ticket-db-path"`
	ServerName    string `yaml:"server-name"`
	ALPNProtocols []string `yaml:"alpn-protocols"`
}

func defaultConfig() harnessConfig {
	return harnessConfig{
		LogLevel:      "INFO",
		TicketDBPath:  "tlsextdemo-tickets.db",
		ServerName:    "example.com",
		ALPNProtocols: []string{"h2", "http/1.1"},
	}
}

func loadConfig(path string) (harnessConfig, error) {
	cfg := defaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
