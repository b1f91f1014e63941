// Package profiles loads named retry profiles from TOML.
package profiles

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	rkerr "github.com/vinayprograms/retrykit/errors"
	"github.com/vinayprograms/retrykit/retry"
)

// DefaultFileName is the profile file looked up by Load.
const DefaultFileName = "retry.toml"

// Profile is one named retry configuration.
type Profile struct {
	// MaxAttempts is the attempt budget. Must be at least 1.
	MaxAttempts int `toml:"max_attempts"`

	// Delay is the inter-attempt delay, e.g. "500ms" or "2s".
	Delay duration `toml:"delay"`
}

// duration wraps time.Duration for TOML decoding from strings.
type duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Options converts the profile into task options.
func (p Profile) Options() []retry.Option {
	return []retry.Option{
		retry.WithMaxAttempts(p.MaxAttempts),
		retry.WithDelay(p.Delay.Duration),
	}
}

// Validate checks that the profile can configure a task.
func (p Profile) Validate() error {
	if p.MaxAttempts < 1 {
		return rkerr.InvalidConfig("max_attempts must be at least 1")
	}
	if p.Delay.Duration < 0 {
		return rkerr.InvalidConfig("delay must be non-negative")
	}
	return nil
}

// Profiles is a set of named profiles.
type Profiles struct {
	byName map[string]Profile
}

// fileFormat is the TOML document shape:
//
//	[profiles.default]
//	max_attempts = 3
//	delay = "500ms"
type fileFormat struct {
	Profiles map[string]Profile `toml:"profiles"`
}

// StandardPaths returns the profile file locations in order of priority.
func StandardPaths() []string {
	paths := []string{DefaultFileName}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "retrykit", DefaultFileName))
	}

	return paths
}

// Load loads profiles from the first available standard location.
// A missing file is not an error; the returned set is empty.
func Load() (*Profiles, string, error) {
	for _, path := range StandardPaths() {
		if _, err := os.Stat(path); err == nil {
			profiles, err := LoadFile(path)
			if err != nil {
				return nil, path, err
			}
			return profiles, path, nil
		}
	}
	return &Profiles{byName: make(map[string]Profile)}, "", nil
}

// LoadFile loads profiles from a specific file. Every profile in the
// file is validated; one bad profile fails the whole load.
func LoadFile(path string) (*Profiles, error) {
	var doc fileFormat
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return nil, rkerr.WrapWithCode(err, rkerr.ErrCodeInvalidProfile, "decoding "+path)
	}
	return fromMap(doc.Profiles)
}

// Parse loads profiles from TOML source text.
func Parse(data string) (*Profiles, error) {
	var doc fileFormat
	if _, err := toml.Decode(data, &doc); err != nil {
		return nil, rkerr.WrapWithCode(err, rkerr.ErrCodeInvalidProfile, "decoding profiles")
	}
	return fromMap(doc.Profiles)
}

func fromMap(m map[string]Profile) (*Profiles, error) {
	p := &Profiles{byName: make(map[string]Profile, len(m))}
	for name, profile := range m {
		if err := profile.Validate(); err != nil {
			return nil, rkerr.InvalidProfile(name, rkerr.WithCause(err))
		}
		p.byName[name] = profile
	}
	return p, nil
}

// Get returns the named profile.
func (p *Profiles) Get(name string) (Profile, error) {
	profile, ok := p.byName[name]
	if !ok {
		return Profile{}, rkerr.InvalidProfile(name)
	}
	return profile, nil
}

// Names returns the defined profile names, unordered.
func (p *Profiles) Names() []string {
	names := make([]string, 0, len(p.byName))
	for name := range p.byName {
		names = append(names, name)
	}
	return names
}

// Len returns the number of defined profiles.
func (p *Profiles) Len() int {
	return len(p.byName)
}
