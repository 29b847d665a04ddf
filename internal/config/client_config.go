package config

import (
	"path/filepath"
	"strconv"
)

const (
	baseURLVar     = "NEEDHOMES_BASE_URL"
	httpTimeoutVar = "NEEDHOMES_HTTP_TIMEOUT_SECONDS"
	storagePathVar = "NEEDHOMES_STORAGE_PATH"
)

type Client struct{}

var _ ClientConfig = Client{}

// GetBaseURL returns the backend origin all endpoint paths are relative to
// (e.g., "https://api.needhomes.example").
func (Client) GetBaseURL() string {
	return GetEnv(baseURLVar, "http://localhost:3000/api/v1")
}

// GetHTTPTimeoutSeconds governs every request, including the refresh call.
// A timed-out refresh is a refresh failure.
func (Client) GetHTTPTimeoutSeconds() int {
	v := GetEnv(httpTimeoutVar, "30")
	seconds, err := strconv.Atoi(v)
	if err != nil || seconds <= 0 {
		return 30
	}
	return seconds
}

// GetStoragePath returns the sqlite file backing the session store.
func (Client) GetStoragePath() string {
	if path := GetEnv(storagePathVar, ""); path != "" {
		return path
	}
	return filepath.Join(EnvVars{}.GetDataFolder(), "needhomes.db")
}
