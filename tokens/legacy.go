package tokens

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"slices"

	"github.com/s0up4200/nsping/nationstates"
)

// MigrateLegacy merges the old JSON token file into s. The legacy file maps
// nation to token and may carry the user agent under AGENT. Entries already
// in s win. It reports how many nations were imported; a missing legacy file
// is not an error. The caller removes the legacy file once s is saved.
func MigrateLegacy(path string, s *Store) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read legacy token file: %w", err)
	}

	var legacy map[string]string
	if err := json.Unmarshal(data, &legacy); err != nil {
		return 0, fmt.Errorf("failed to parse legacy token file %s: %w", path, err)
	}

	if agent, ok := legacy[AgentKey]; ok {
		if s.Agent() == "" {
			s.SetAgent(agent)
		}
		delete(legacy, AgentKey)
	}

	// JSON objects are unordered; sort for a stable file.
	var imported int
	for _, key := range slices.Sorted(maps.Keys(legacy)) {
		id, err := nationstates.NormalizeNation(key)
		if err != nil {
			continue
		}
		if _, ok := s.Get(id); ok {
			continue
		}
		if err := s.Set(id, legacy[key]); err != nil {
			continue
		}
		imported++
	}

	return imported, nil
}
