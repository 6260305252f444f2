// Package session holds the mock single-user account: identity, saved
// configurations, saved searches and orders, persisted to local storage.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kalambet/autopro/internal/configurator"
	"github.com/kalambet/autopro/internal/search"
	"github.com/kalambet/autopro/internal/storage"
)

// Storage keys.
const (
	KeyUser           = "autopro_user"
	KeyConfigurations = "autopro_configs"
	KeyFilters        = "autopro_filters"
	KeyOrders         = "autopro_orders"
)

// DefaultAuthDelay is the simulated round trip of login and register.
const DefaultAuthDelay = 500 * time.Millisecond

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not signed in")
	ErrBusy               = errors.New("authentication in progress")
	ErrNotFound           = errors.New("not found")
)

// ValidationError reports a rejected form field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// KV is the persistence the Manager needs. Get must return an error wrapping
// storage.ErrNotFound for a missing key. Implemented by storage.Store.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Manager owns the session. All methods are safe for concurrent use.
type Manager struct {
	kv        KV
	clock     Clock
	authDelay time.Duration

	mu      sync.Mutex
	busy    bool
	user    *User
	configs []SavedConfiguration
	filters []SavedFilter
	orders  []Order
}

// NewManager creates a signed-out Manager. Call Restore to pick up a
// persisted session.
func NewManager(kv KV, authDelay time.Duration) *Manager {
	return NewManagerWithClock(kv, realClock{}, authDelay)
}

// NewManagerWithClock creates a Manager with a custom clock (for testing).
func NewManagerWithClock(kv KV, clock Clock, authDelay time.Duration) *Manager {
	return &Manager{
		kv:        kv,
		clock:     clock,
		authDelay: authDelay,
	}
}

// Restore loads a persisted session. A missing user key leaves the manager
// signed out; missing collections load as empty.
func (m *Manager) Restore() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var user User
	found, err := m.load(KeyUser, &user)
	if err != nil {
		return err
	}
	if !found {
		m.clear()
		return nil
	}

	var configs []SavedConfiguration
	var filters []SavedFilter
	var orders []Order
	if _, err := m.load(KeyConfigurations, &configs); err != nil {
		return err
	}
	if _, err := m.load(KeyFilters, &filters); err != nil {
		return err
	}
	if _, err := m.load(KeyOrders, &orders); err != nil {
		return err
	}

	m.user = &user
	m.configs = orEmpty(configs)
	m.filters = orEmpty(filters)
	m.orders = orEmpty(orders)
	slog.Info("session restored", "user", user.ID)
	return nil
}

// Login signs in with any non-empty email and password. The account is the
// demo identity with the given email, seeded with a sample configuration
// and order.
func (m *Manager) Login(ctx context.Context, email, password string) (User, error) {
	if err := m.beginAuth(); err != nil {
		return User{}, err
	}
	defer m.endAuth()

	if err := m.wait(ctx); err != nil {
		return User{}, err
	}
	if email == "" || password == "" {
		slog.Info("login rejected", "reason", "empty credentials")
		return User{}, ErrInvalidCredentials
	}

	user := demoUser
	user.Email = email
	configs := cloneConfigurations(demoConfigurations)
	orders := slices.Clone(demoOrders)

	m.mu.Lock()
	defer m.mu.Unlock()

	// Restore resumes a session only when the user key is present, so it is
	// dropped first and written last.
	if err := m.kv.Delete(KeyUser); err != nil {
		return User{}, fmt.Errorf("removing %s: %w", KeyUser, err)
	}
	filters := []SavedFilter{}
	for _, w := range []struct {
		key string
		v   any
	}{
		{KeyConfigurations, configs},
		{KeyFilters, filters},
		{KeyOrders, orders},
		{KeyUser, user},
	} {
		if err := m.save(w.key, w.v); err != nil {
			m.clear()
			return User{}, err
		}
	}

	m.user = &user
	m.configs = configs
	m.filters = filters
	m.orders = orders
	slog.Info("signed in", "user", user.ID, "email", user.Email)
	return user, nil
}

// Register validates the form and signs in as a fresh account with no
// saved data.
func (m *Manager) Register(ctx context.Context, r Registration) (User, error) {
	if err := r.validate(); err != nil {
		return User{}, err
	}
	if err := m.beginAuth(); err != nil {
		return User{}, err
	}
	defer m.endAuth()

	if err := m.wait(ctx); err != nil {
		return User{}, err
	}

	user := User{
		ID:    newID("user"),
		Name:  strings.TrimSpace(r.Name),
		Email: strings.TrimSpace(r.Email),
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.removeKeys(); err != nil {
		return User{}, err
	}
	if err := m.save(KeyUser, user); err != nil {
		return User{}, err
	}

	m.user = &user
	m.configs = []SavedConfiguration{}
	m.filters = []SavedFilter{}
	m.orders = []Order{}
	slog.Info("account registered", "user", user.ID)
	return user, nil
}

func (r Registration) validate() error {
	switch {
	case strings.TrimSpace(r.Name) == "":
		return &ValidationError{Field: "name", Message: "required"}
	case strings.TrimSpace(r.Email) == "":
		return &ValidationError{Field: "email", Message: "required"}
	case r.Password == "":
		return &ValidationError{Field: "password", Message: "required"}
	case r.Password != r.Confirm:
		return &ValidationError{Field: "confirmPassword", Message: "passwords do not match"}
	}
	return nil
}

// Logout ends the session and removes every persisted session key.
// Logging out while signed out only clears storage.
func (m *Manager) Logout() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.busy {
		return ErrBusy
	}
	if err := m.removeKeys(); err != nil {
		return err
	}
	if m.user != nil {
		slog.Info("signed out", "user", m.user.ID)
	}
	m.clear()
	return nil
}

// DeleteAccount discards the account. There is no remote side, so this is a
// logout that requires a session.
func (m *Manager) DeleteAccount() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkMutable(); err != nil {
		return err
	}
	if err := m.removeKeys(); err != nil {
		return err
	}
	slog.Info("account deleted", "user", m.user.ID)
	m.clear()
	return nil
}

// AddConfiguration stores a configurator summary dated today.
func (m *Manager) AddConfiguration(s configurator.Summary) (SavedConfiguration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkMutable(); err != nil {
		return SavedConfiguration{}, err
	}

	s.Accessories = slices.Clone(s.Accessories)
	if s.Accessories == nil {
		s.Accessories = []string{}
	}
	c := SavedConfiguration{
		ID:      newID("config"),
		Date:    m.clock.Now().UTC().Format(time.DateOnly),
		Summary: s,
	}
	updated := append(slices.Clone(m.configs), c)
	if err := m.save(KeyConfigurations, updated); err != nil {
		return SavedConfiguration{}, err
	}
	m.configs = updated
	return cloneConfiguration(c), nil
}

// DeleteConfiguration removes the configuration with id.
func (m *Manager) DeleteConfiguration(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkMutable(); err != nil {
		return err
	}
	i := slices.IndexFunc(m.configs, func(c SavedConfiguration) bool { return c.ID == id })
	if i < 0 {
		return fmt.Errorf("configuration %q: %w", id, ErrNotFound)
	}
	updated := slices.Delete(slices.Clone(m.configs), i, i+1)
	if err := m.save(KeyConfigurations, updated); err != nil {
		return err
	}
	m.configs = updated
	return nil
}

// AddFilter saves q under name. An empty name defaults to "Search - <date>".
func (m *Manager) AddFilter(q search.Query, name string) (SavedFilter, error) {
	if err := q.Validate(); err != nil {
		return SavedFilter{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkMutable(); err != nil {
		return SavedFilter{}, err
	}

	now := m.clock.Now().UTC()
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Search - " + now.Format(time.DateOnly)
	}
	f := SavedFilter{
		ID:        newID("filter"),
		Name:      name,
		Filters:   q,
		CreatedAt: now,
	}
	updated := append(slices.Clone(m.filters), f)
	if err := m.save(KeyFilters, updated); err != nil {
		return SavedFilter{}, err
	}
	m.filters = updated
	return f, nil
}

// DeleteFilter removes the saved search with id.
func (m *Manager) DeleteFilter(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkMutable(); err != nil {
		return err
	}
	i := slices.IndexFunc(m.filters, func(f SavedFilter) bool { return f.ID == id })
	if i < 0 {
		return fmt.Errorf("filter %q: %w", id, ErrNotFound)
	}
	updated := slices.Delete(slices.Clone(m.filters), i, i+1)
	if err := m.save(KeyFilters, updated); err != nil {
		return err
	}
	m.filters = updated
	return nil
}

// User returns the signed-in identity, or false when signed out.
func (m *Manager) User() (User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return User{}, false
	}
	return *m.user, true
}

// Authenticated reports whether a session is active.
func (m *Manager) Authenticated() bool {
	_, ok := m.User()
	return ok
}

// Busy reports whether a login or register is in flight.
func (m *Manager) Busy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.busy
}

func (m *Manager) Configurations() []SavedConfiguration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneConfigurations(orEmpty(m.configs))
}

func (m *Manager) Filters() []SavedFilter {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(orEmpty(m.filters))
}

func (m *Manager) Orders() []Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(orEmpty(m.orders))
}

// Export returns a copy of all account data stamped with the current time.
func (m *Manager) Export() (Export, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.user == nil {
		return Export{}, ErrNotAuthenticated
	}
	user := *m.user
	return Export{
		User:           &user,
		Configurations: cloneConfigurations(orEmpty(m.configs)),
		Filters:        slices.Clone(orEmpty(m.filters)),
		Orders:         slices.Clone(orEmpty(m.orders)),
		ExportedAt:     m.clock.Now().UTC(),
	}, nil
}

// ExportFilename names the export download for the date of t.
func ExportFilename(t time.Time) string {
	return "autopro-data-export-" + t.UTC().Format(time.DateOnly) + ".json"
}

// --- internals ---

func (m *Manager) beginAuth() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.busy {
		return ErrBusy
	}
	m.busy = true
	return nil
}

func (m *Manager) endAuth() {
	m.mu.Lock()
	m.busy = false
	m.mu.Unlock()
}

// wait simulates the authentication round trip.
func (m *Manager) wait(ctx context.Context) error {
	if m.authDelay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(m.authDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// checkMutable must be called with mu held.
func (m *Manager) checkMutable() error {
	if m.busy {
		return ErrBusy
	}
	if m.user == nil {
		return ErrNotAuthenticated
	}
	return nil
}

func (m *Manager) clear() {
	m.user = nil
	m.configs = nil
	m.filters = nil
	m.orders = nil
}

func (m *Manager) removeKeys() error {
	for _, key := range []string{KeyUser, KeyConfigurations, KeyFilters, KeyOrders} {
		if err := m.kv.Delete(key); err != nil {
			return fmt.Errorf("removing %s: %w", key, err)
		}
	}
	return nil
}

func (m *Manager) save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := m.kv.Set(key, string(data)); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

func (m *Manager) load(key string, v any) (bool, error) {
	raw, err := m.kv.Get(key)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("loading %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("decoding %s: %w", key, err)
	}
	return true, nil
}

func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func cloneConfiguration(c SavedConfiguration) SavedConfiguration {
	c.Accessories = slices.Clone(c.Accessories)
	return c
}

func cloneConfigurations(cs []SavedConfiguration) []SavedConfiguration {
	out := make([]SavedConfiguration, len(cs))
	for i, c := range cs {
		out[i] = cloneConfiguration(c)
	}
	return out
}
