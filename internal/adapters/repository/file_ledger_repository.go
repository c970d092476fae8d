package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
)

var _ domain.LedgerRepository = (*FileLedgerRepository)(nil)

// FileLedgerRepository persists every user's ledger in one JSON document
// shaped {username: {habit: ["YYYY-MM-DD", ...]}}. The file is re-read on every
// call so other processes sharing it are seen; writes go through a temp file
// and a rename so a crash never leaves a half-written document.
type FileLedgerRepository struct {
	path string

	mu sync.RWMutex
}

// ledgerDocument keeps each user's ledger undecoded so one user's bad data
// never blocks another user's load.
type ledgerDocument map[string]json.RawMessage

// userLedger is one user's stored habits. Entries stay raw so values that are
// not JSON strings can be reported as corrupt and written back unchanged.
type userLedger map[string][]json.RawMessage

func NewFileLedgerRepository(path string) (*FileLedgerRepository, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("repository: create ledger dir failed: %w", err)
		}
	}
	return &FileLedgerRepository{path: path}, nil
}

func (r *FileLedgerRepository) Load(ctx context.Context, username string) (domain.Ledger, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, err := r.read()
	if err != nil {
		return nil, err
	}
	stored, err := r.userLedger(doc, username)
	if err != nil {
		return nil, err
	}
	return domain.ParseLedger(stored.strings()), nil
}

func (r *FileLedgerRepository) Save(ctx context.Context, username string, ledger domain.Ledger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// An unreadable document is never overwritten; other users' data lives there too.
	doc, err := r.read()
	if err != nil {
		return err
	}
	previous, err := r.userLedger(doc, username)
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(encodeUserLedger(ledger, previous))
	if err != nil {
		return fmt.Errorf("repository: encode ledger failed: %w", err)
	}
	doc[username] = encoded

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("repository: encode ledger failed: %w", err)
	}

	return r.write(data)
}

func (r *FileLedgerRepository) read() (ledgerDocument, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(ledgerDocument), nil
		}
		return nil, fmt.Errorf("repository: read ledger file failed: %w", err)
	}

	doc := make(ledgerDocument)
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrDataCorruption, r.path, err)
	}
	if doc == nil {
		doc = make(ledgerDocument)
	}
	return doc, nil
}

func (r *FileLedgerRepository) userLedger(doc ledgerDocument, username string) (userLedger, error) {
	raw, ok := doc[username]
	if !ok || isNull(raw) {
		return userLedger{}, nil
	}

	var habits map[string]json.RawMessage
	if err := json.Unmarshal(raw, &habits); err != nil {
		return nil, fmt.Errorf("%w: %s: user %q: %v", domain.ErrDataCorruption, r.path, username, err)
	}

	stored := make(userLedger, len(habits))
	for name, value := range habits {
		var entries []json.RawMessage
		if isNull(value) {
			entries = []json.RawMessage{}
		} else if err := json.Unmarshal(value, &entries); err != nil {
			// Not a list: the whole value is one unreadable entry.
			entries = []json.RawMessage{value}
		}
		stored[name] = entries
	}
	return stored, nil
}

// strings converts entries to the ledger's storage form. JSON strings are
// unquoted; any other value is kept as its compact JSON text.
func (u userLedger) strings() map[string][]string {
	out := make(map[string][]string, len(u))
	for name, entries := range u {
		values := make([]string, 0, len(entries))
		for _, entry := range entries {
			values = append(values, entryText(entry))
		}
		out[name] = values
	}
	return out
}

// encodeUserLedger writes dates as JSON strings. A corrupt entry that was a
// non-string value in the previous document is written back as that value.
func encodeUserLedger(ledger domain.Ledger, previous userLedger) userLedger {
	out := make(userLedger, len(ledger))
	for name, values := range ledger.Raw() {
		nonStrings := make(map[string]json.RawMessage)
		for _, entry := range previous[name] {
			if !isString(entry) {
				nonStrings[entryText(entry)] = entry
			}
		}

		entries := make([]json.RawMessage, 0, len(values))
		for _, v := range values {
			if raw, ok := nonStrings[v]; ok {
				entries = append(entries, raw)
				continue
			}
			quoted, _ := json.Marshal(v)
			entries = append(entries, quoted)
		}
		out[name] = entries
	}
	return out
}

func entryText(entry json.RawMessage) string {
	var s string
	if err := json.Unmarshal(entry, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, entry); err != nil {
		return string(entry)
	}
	return buf.String()
}

func isString(entry json.RawMessage) bool {
	trimmed := bytes.TrimSpace(entry)
	return len(trimmed) > 0 && trimmed[0] == '"'
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func (r *FileLedgerRepository) write(data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("repository: create temp file failed: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("repository: write ledger failed: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("repository: write ledger failed: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("repository: replace ledger file failed: %w", err)
	}
	return nil
}
