// Package preferences stores the display language and cookie consent. Both
// apply whether or not a user is signed in.
package preferences

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kalambet/autopro/internal/storage"
)

const (
	KeyLanguage = "language"
	KeyConsent  = "cookie_consent"
)

// Language is a supported UI language.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

var languages = []Language{
	{Code: "en", Name: "English"},
	{Code: "de", Name: "Deutsch"},
	{Code: "bg", Name: "Български"},
}

// DefaultLanguage is used when nothing (or something unsupported) is stored.
const DefaultLanguage = "en"

// Languages lists the supported languages, default first.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

func lookupLanguage(code string) (Language, bool) {
	for _, l := range languages {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// Consent records which optional cookie categories the visitor allowed.
// Necessary is always true.
type Consent struct {
	Necessary bool `json:"necessary"`
	Analytics bool `json:"analytics"`
	Marketing bool `json:"marketing"`
}

// ValidationError reports an unsupported preference value.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// KV is the persistence Store needs. Implemented by storage.Store.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// Store reads and writes preferences.
type Store struct {
	kv KV
}

func New(kv KV) *Store {
	return &Store{kv: kv}
}

// Language returns the stored language, falling back to English. The code is
// stored as a JSON string; a bare code is read as is.
func (s *Store) Language() (Language, error) {
	raw, err := s.kv.Get(KeyLanguage)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return Language{}, fmt.Errorf("reading language: %w", err)
	}
	code := raw
	if json.Unmarshal([]byte(raw), &code) != nil {
		code = raw
	}
	if l, ok := lookupLanguage(code); ok {
		return l, nil
	}
	l, _ := lookupLanguage(DefaultLanguage)
	return l, nil
}

// SetLanguage persists code if it is supported.
func (s *Store) SetLanguage(code string) (Language, error) {
	l, ok := lookupLanguage(code)
	if !ok {
		return Language{}, &ValidationError{Field: "language", Message: fmt.Sprintf("unsupported language %q", code)}
	}
	data, err := json.Marshal(l.Code)
	if err != nil {
		return Language{}, fmt.Errorf("encoding language: %w", err)
	}
	if err := s.kv.Set(KeyLanguage, string(data)); err != nil {
		return Language{}, fmt.Errorf("saving language: %w", err)
	}
	return l, nil
}

// Consent returns the stored consent and whether the visitor has decided yet.
// Undecided visitors get the necessary-only default.
func (s *Store) Consent() (Consent, bool, error) {
	raw, err := s.kv.Get(KeyConsent)
	if errors.Is(err, storage.ErrNotFound) {
		return Consent{Necessary: true}, false, nil
	}
	if err != nil {
		return Consent{}, false, fmt.Errorf("reading consent: %w", err)
	}
	var c Consent
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return Consent{}, false, fmt.Errorf("decoding consent: %w", err)
	}
	c.Necessary = true
	return c, true, nil
}

// SetConsent persists c. Necessary is forced on.
func (s *Store) SetConsent(c Consent) (Consent, error) {
	c.Necessary = true
	data, err := json.Marshal(c)
	if err != nil {
		return Consent{}, fmt.Errorf("encoding consent: %w", err)
	}
	if err := s.kv.Set(KeyConsent, string(data)); err != nil {
		return Consent{}, fmt.Errorf("saving consent: %w", err)
	}
	return c, nil
}

func (s *Store) AcceptAll() (Consent, error) {
	return s.SetConsent(Consent{Analytics: true, Marketing: true})
}

func (s *Store) RejectAll() (Consent, error) {
	return s.SetConsent(Consent{})
}
