package domain

import "time"

// Fingerprint records the content digest of a file together with the
// metadata used to decide whether it is still current.
type Fingerprint struct {
	Path    string    `json:"path" yaml:"path" mapstructure:"path"`
	Digest  string    `json:"digest" yaml:"digest" mapstructure:"digest"`
	Size    int64     `json:"size" yaml:"size" mapstructure:"size"`
	ModTime time.Time `json:"mod_time" yaml:"mod_time" mapstructure:"mod_time"`
}

// Matches reports whether f describes a file of the given size and modification time.
func (f Fingerprint) Matches(size int64, modTime time.Time) bool {
	return f.Size == size && f.ModTime.Equal(modTime)
}
