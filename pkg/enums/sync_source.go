package enums

import "fmt"

// SyncSource names the remote system a sync run reads from.
type SyncSource string

const (
	SyncSourceApparelMagic SyncSource = "apparel_magic"
	SyncSourceShipStation  SyncSource = "shipstation"
)

var validSyncSources = []SyncSource{
	SyncSourceApparelMagic,
	SyncSourceShipStation,
}

// String implements fmt.Stringer.
func (s SyncSource) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SyncSource.
func (s SyncSource) IsValid() bool {
	for _, candidate := range validSyncSources {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSyncSource converts raw input into a SyncSource.
func ParseSyncSource(value string) (SyncSource, error) {
	for _, candidate := range validSyncSources {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sync source %q", value)
}
