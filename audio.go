package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const displayNameMax = 15

var errNoTrack = errors.New("no track loaded")

// playerCandidates are tried in order when no player is configured.
var playerCandidates = []string{"afplay", "paplay", "aplay", "mpg123"}

// findPlayer resolves the playback binary: the configured override first,
// then the usual platform players.
func findPlayer(override string) string {
	if override != "" {
		if p, err := exec.LookPath(override); err == nil {
			return p
		}
	}
	for _, name := range playerCandidates {
		if p, err := exec.LookPath(name); err == nil {
			return p
		}
	}
	return ""
}

// displayName is the deck's track label: base name without extension,
// upper-cased, at most 15 characters.
func displayName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	r := []rune(strings.ToUpper(base))
	if len(r) > displayNameMax {
		r = r[:displayNameMax]
	}
	return string(r)
}

// audioDeck holds one loaded track and at most one playback subprocess.
type audioDeck struct {
	player    string
	trackPath string
	playing   bool
	cmd       *exec.Cmd
}

func newAudioDeck(player string) *audioDeck {
	return &audioDeck{player: findPlayer(player)}
}

// Load points the deck at a track on disk without starting playback.
func (d *audioDeck) Load(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("loading track: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("loading track: %s is a directory", path)
	}
	d.Stop()
	d.trackPath = path
	return nil
}

func (d *audioDeck) TrackName() string {
	if d.trackPath == "" {
		return ""
	}
	return displayName(d.trackPath)
}

// Play starts the loaded track through the platform player. Refuses with
// errNoTrack when nothing is loaded; any other failure only disables audio.
func (d *audioDeck) Play() error {
	if d.trackPath == "" {
		return errNoTrack
	}
	if d.player == "" {
		return fmt.Errorf("no audio player found")
	}
	d.Stop()
	cmd := exec.Command(d.player, d.trackPath)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting playback: %w", err)
	}
	d.cmd = cmd
	d.playing = true
	go func() {
		if err := cmd.Wait(); err != nil {
			slog.Warn("playback exited", "track", d.trackPath, "error", err)
		}
	}()
	return nil
}

// Stop kills the playback subprocess, if any. Safe to call repeatedly.
func (d *audioDeck) Stop() {
	if d.cmd != nil && d.cmd.Process != nil {
		_ = d.cmd.Process.Kill()
	}
	d.cmd = nil
	d.playing = false
}

// PlayClip fires a short one-shot sound without touching the track state.
// Used for the keystroke click.
func (d *audioDeck) PlayClip(path string) {
	if d.player == "" || path == "" {
		return
	}
	cmd := exec.Command(d.player, path)
	if err := cmd.Start(); err != nil {
		slog.Warn("click playback failed", "error", err)
		return
	}
	go func() { _ = cmd.Wait() }()
}
