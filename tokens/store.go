// Package tokens persists autologin tokens between runs.
//
// The token file holds one "key:value" record per line. Keys are nation
// identifiers, plus the reserved AGENT key carrying the configured user agent:
//
//	AGENT:Testlandia admin@example.com
//	testlandia:abc123
//	the_grand_duchy:def456
//
// Writes go to a temporary file in the same directory which is then renamed
// over the original.
package tokens

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/s0up4200/nsping/nationstates"
)

// AgentKey is the reserved key holding the user agent.
const AgentKey = "AGENT"

// Store is an ordered mapping of nation to autologin token.
type Store struct {
	order  []string
	tokens map[string]string
	agent  string

	// loaded is the canonical form of what was last loaded or saved.
	loaded []byte
}

// New returns an empty store.
func New() *Store {
	return &Store{tokens: make(map[string]string)}
}

// Load reads the token file at path. The returned store is never nil: when
// the file is missing or corrupt it is empty and the error says which.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return New(), fmt.Errorf("%w: %s", ErrNotExist, path)
		}
		return New(), fmt.Errorf("failed to read token file: %w", err)
	}

	s, err := parse(path, data)
	if err != nil {
		return New(), err
	}
	s.loaded = s.marshal()
	return s, nil
}

func parse(path string, data []byte) (*Store, error) {
	s := New()
	scanner := bufio.NewScanner(bytes.NewReader(data))

	var line int
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		key, value, ok := strings.Cut(text, ":")
		if !ok {
			return nil, &CorruptError{Path: path, Line: line, Reason: "missing ':' separator"}
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)

		if key == AgentKey {
			s.agent = value
			continue
		}

		id, err := nationstates.NormalizeNation(key)
		if err != nil || id != key {
			return nil, &CorruptError{Path: path, Line: line, Reason: fmt.Sprintf("invalid nation %q", key)}
		}
		if err := s.Set(key, value); err != nil {
			return nil, &CorruptError{Path: path, Line: line, Reason: fmt.Sprintf("empty token for %s", key)}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &CorruptError{Path: path, Line: line, Reason: err.Error()}
	}

	return s, nil
}

// Get returns the token for nation.
func (s *Store) Get(nation string) (string, bool) {
	token, ok := s.tokens[nation]
	return token, ok
}

// Set stores the token for nation, keeping its position if already present.
// The nation is normalized first. Invalid nations, empty tokens and tokens
// spanning more than one line are rejected with ErrInvalidRecord.
func (s *Store) Set(nation, token string) error {
	id, err := nationstates.NormalizeNation(nation)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("%w: empty token for %s", ErrInvalidRecord, id)
	}
	if strings.ContainsAny(token, "\r\n") {
		return fmt.Errorf("%w: token for %s spans several lines", ErrInvalidRecord, id)
	}

	if _, ok := s.tokens[id]; !ok {
		s.order = append(s.order, id)
	}
	s.tokens[id] = token
	return nil
}

// Delete removes nation and reports whether it was present.
func (s *Store) Delete(nation string) bool {
	if _, ok := s.tokens[nation]; !ok {
		return false
	}
	delete(s.tokens, nation)
	s.order = slices.DeleteFunc(s.order, func(n string) bool { return n == nation })
	return true
}

// Nations returns the saved nations in insertion order.
func (s *Store) Nations() []string {
	return slices.Clone(s.order)
}

// Len returns the number of saved nations.
func (s *Store) Len() int {
	return len(s.order)
}

// Agent returns the saved user agent.
func (s *Store) Agent() string {
	return s.agent
}

// SetAgent saves the user agent. Runs of whitespace, line breaks included,
// become single spaces so the agent stays on one line.
func (s *Store) SetAgent(agent string) {
	s.agent = strings.Join(strings.Fields(agent), " ")
}

// Changed reports whether the store differs from what was loaded.
func (s *Store) Changed() bool {
	return !bytes.Equal(s.marshal(), s.loaded)
}

func (s *Store) marshal() []byte {
	var buf bytes.Buffer
	if s.agent != "" {
		fmt.Fprintf(&buf, "%s:%s\n", AgentKey, s.agent)
	}
	for _, nation := range s.order {
		fmt.Fprintf(&buf, "%s:%s\n", nation, s.tokens[nation])
	}
	return buf.Bytes()
}

// SaveIfChanged saves the store only when it differs from what was loaded.
func (s *Store) SaveIfChanged(path string) (bool, error) {
	if !s.Changed() {
		return false, nil
	}
	if err := s.Save(path); err != nil {
		return false, err
	}
	return true, nil
}

// Save atomically replaces the token file at path.
func (s *Store) Save(path string) error {
	data := s.marshal()

	dir, name := filepath.Split(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s-%s.tmp", name, uuid.NewString()))

	if err := writeSync(tmp, data); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write token file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace token file: %w", err)
	}

	s.loaded = data
	return nil
}

func writeSync(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
