package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"loops-cli/internal/builder"
)

const draftFileName = "draft.json"

func (s Store) draftPath() string {
	return filepath.Join(s.Dir, draftFileName)
}

// LoadDraftSnapshot returns the resumable builder session, or ErrNoDraft when there is none.
// A corrupted file is treated as missing.
func (s Store) LoadDraftSnapshot() (*builder.Snapshot, error) {
	if strings.TrimSpace(s.Dir) == "" {
		return nil, ErrNoDraft
	}
	b, err := os.ReadFile(s.draftPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoDraft
		}
		return nil, err
	}
	var snap builder.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		s.log().Warn("ignoring unreadable draft snapshot", "path", s.draftPath(), "err", err)
		return nil, ErrNoDraft
	}
	if snap.Draft == nil {
		return nil, ErrNoDraft
	}
	return &snap, nil
}

func (s Store) SaveDraftSnapshot(snap builder.Snapshot) error {
	if snap.Draft == nil {
		return s.ClearDraftSnapshot()
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	if snap.Version == 0 {
		snap.Version = 1
	}
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	if err := writeFileAtomic(s.draftPath(), b); err != nil {
		return err
	}
	s.log().Debug("draft snapshot saved", "path", s.draftPath(), "editing", snap.EditingLoopID, "step", snap.Step.String())
	return nil
}

// ClearDraftSnapshot removes the snapshot; a missing file is not an error.
func (s Store) ClearDraftSnapshot() error {
	if strings.TrimSpace(s.Dir) == "" {
		return nil
	}
	if err := os.Remove(s.draftPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
