package util

import "os"

// Marker files created by docker and podman respectively
var containerMarkers = []string{"/.dockerenv", "/run/.containerenv"}

// IsRunningInDocker reports whether the process runs inside a container
func IsRunningInDocker() bool {
	for _, m := range containerMarkers {
		if _, err := os.Stat(m); err == nil {
			return true
		}
	}

	return false
}
