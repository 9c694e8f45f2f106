package main

import (
	"bufio"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const defaultReplyTimeout = 30 * time.Second

type Config struct {
	SaveDirectory string
	GeminiModel   string
	ReplyTimeout  time.Duration
	Clicks        bool
	Player        string
}

func loadConfig() *Config {
	config := &Config{
		SaveDirectory: "",
		GeminiModel:   "gemini-2.0-flash",
		ReplyTimeout:  defaultReplyTimeout,
		Clicks:        true,
		Player:        "",
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return config
	}

	configPath := filepath.Join(homeDir, ".tackboardrc")
	file, err := os.Open(configPath)
	if err != nil {
		return config
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch strings.ToLower(key) {
		case "savedirectory", "save_directory", "savedir":
			if strings.HasPrefix(value, "~") {
				value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
			}
			if !filepath.IsAbs(value) {
				if absPath, err := filepath.Abs(value); err == nil {
					value = absPath
				}
			}
			config.SaveDirectory = value
		case "geminimodel", "gemini_model", "model":
			config.GeminiModel = value
		case "replytimeout", "reply_timeout":
			if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
				config.ReplyTimeout = time.Duration(secs) * time.Second
			}
		case "clicks", "click":
			config.Clicks = strings.ToLower(value) == "true"
		case "player", "audio_player":
			config.Player = value
		}
	}

	return config
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}

// setupLogging points slog at a log file next to the rc file. Falls back to
// discarding if the home directory is unavailable.
func setupLogging() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return
	}
	logPath := filepath.Join(homeDir, ".tackboard.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, nil)))
}
