package commands

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const configFilename = "project.toml"

// projectConfig is the Firebase project this device registers against.
// It has no secrets of its own — FirebaseAPIKey is a public client key
// by Firebase's design — so it's plain TOML, unlike the credentials
// file Register produces.
type projectConfig struct {
	SenderID          string `toml:"sender_id"`
	FirebaseProjectID string `toml:"firebase_project_id"`
	FirebaseAPIKey    string `toml:"firebase_api_key"`
	FirebaseAppID     string `toml:"firebase_app_id"`
}

func loadProjectConfig(dir string) (projectConfig, error) {
	var cfg projectConfig
	path := filepath.Join(dir, configFilename)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	_, err := toml.DecodeFile(path, &cfg)
	return cfg, err
}

func saveProjectConfig(dir string, cfg projectConfig) error {
	path := filepath.Join(dir, configFilename)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}
