package commands

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/quietpush/fcmreceiver"
)

const stateFilename = "state.json"

// sessionState is everything persisted between fcmlisten invocations:
// the credentials Register produced and the resume point passed to
// Listen. register writes a zero resume point; listen reads it and
// does not write it back.
type sessionState struct {
	Credentials fcmreceiver.Credentials `json:"credentials"`
	Resume      fcmreceiver.ResumeState `json:"resume"`
}

func loadState(dir string) (sessionState, bool, error) {
	var st sessionState
	b, err := os.ReadFile(filepath.Join(dir, stateFilename))
	if errors.Is(err, os.ErrNotExist) {
		return st, false, nil
	}
	if err != nil {
		return st, false, err
	}
	if err := json.Unmarshal(b, &st); err != nil {
		return st, false, err
	}
	return st, true, nil
}

// saveState writes st via a temp file in the same directory, then
// renames it into place, so a crash mid-write never leaves a
// truncated state.json behind.
func saveState(dir string, st sessionState) error {
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(dir, stateFilename)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
