package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const appDirName = "nga-cli"

// Settings is the persistent user configuration, stored as TOML under
// ~/.config/nga-cli/config.toml.
type Settings struct {
	// Cookie is the raw Cookie header value copied from a logged-in
	// browser session. The API serves most boards only to authenticated
	// clients, so this is effectively required.
	Cookie string `toml:"cookie"`

	HTTPProxy  string `toml:"http_proxy"`
	HTTPSProxy string `toml:"https_proxy"`

	// ShowSignatures toggles rendering of user signatures under replies.
	ShowSignatures bool `toml:"show_signatures"`

	// Favorites maps a display name to a forum ID, shown as the start menu.
	Favorites map[string]int `toml:"favorites"`
}

// Store reads and writes Settings at a fixed directory. All auxiliary files
// (log, diagnostics) live next to the config file.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at dir, creating it if needed. An empty
// dir selects the default ~/.config/nga-cli.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		dir = filepath.Join(base, appDirName)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the config directory.
func (s *Store) Dir() string { return s.dir }

// FilePath returns the path of the TOML settings file.
func (s *Store) FilePath() string { return filepath.Join(s.dir, "config.toml") }

// LogPath returns the path of the application log file.
func (s *Store) LogPath() string { return filepath.Join(s.dir, "nga-cli.log") }

// Load parses the settings file. A missing file yields defaults, not an
// error; a malformed file is reported so the user can fix it by hand.
func (s *Store) Load() (Settings, error) {
	set := Settings{ShowSignatures: true, Favorites: map[string]int{}}

	data, err := os.ReadFile(s.FilePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return set, nil
		}
		return Settings{}, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &set); err != nil {
		return Settings{}, fmt.Errorf("parse %s: %w", s.FilePath(), err)
	}
	if set.Favorites == nil {
		set.Favorites = map[string]int{}
	}
	return set, nil
}

// Save writes the settings file. The cookie is a credential, so the file is
// not group or world readable.
func (s *Store) Save(set Settings) error {
	data, err := toml.Marshal(set)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(s.FilePath(), data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ValidateCookie checks that a cookie string carries both passport values
// the API authenticates with.
func ValidateCookie(cookie string) error {
	cookie = strings.TrimSpace(cookie)
	if cookie == "" {
		return fmt.Errorf("cookie is empty")
	}
	for _, want := range []string{"ngaPassportUid", "ngaPassportCid"} {
		if !strings.Contains(cookie, want) {
			return fmt.Errorf("cookie is missing %s", want)
		}
	}
	return nil
}

// FavoriteNames returns the favorite board names in stable order.
func (s Settings) FavoriteNames() []string {
	names := make([]string, 0, len(s.Favorites))
	for name := range s.Favorites {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
