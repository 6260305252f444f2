package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kalambet/autopro/internal/configurator"
	"github.com/kalambet/autopro/internal/search"
	"github.com/kalambet/autopro/internal/storage"
)

// --- Mock store ---

type mockKV struct {
	mu   sync.Mutex
	data map[string]string

	failSet bool
	failKey string
}

func newMockKV() *mockKV {
	return &mockKV{data: make(map[string]string)}
}

func (m *mockKV) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return v, nil
}

func (m *mockKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSet || key == m.failKey {
		return errors.New("disk full")
	}
	m.data[key] = value
	return nil
}

func (m *mockKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *mockKV) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

// --- Mock clock ---

type mockClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *mockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

var testNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestManager(t *testing.T) (*Manager, *mockKV) {
	t.Helper()
	kv := newMockKV()
	return NewManagerWithClock(kv, &mockClock{now: testNow}, 0), kv
}

func signIn(t *testing.T, m *Manager) User {
	t.Helper()
	u, err := m.Login(context.Background(), "anna@example.com", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	return u
}

// --- Tests ---

func TestLogin_SeedsDemoAccount(t *testing.T) {
	m, kv := newTestManager(t)

	u := signIn(t, m)
	if u.ID != "user-001" || u.Name != "Max Mustermann" || u.Email != "anna@example.com" {
		t.Errorf("user = %+v", u)
	}
	if !m.Authenticated() {
		t.Error("Authenticated() = false after login")
	}

	configs := m.Configurations()
	if len(configs) != 1 || configs[0].ID != "config-001" || configs[0].TotalPrice != 78990 {
		t.Errorf("configurations = %+v", configs)
	}
	orders := m.Orders()
	if len(orders) != 1 || orders[0].Status != OrderProcessing || orders[0].Vehicle != "APEX SUV - Luxury Hybrid" {
		t.Errorf("orders = %+v", orders)
	}
	if f := m.Filters(); f == nil || len(f) != 0 {
		t.Errorf("filters = %#v, want empty non-nil", f)
	}

	for _, key := range []string{KeyUser, KeyConfigurations, KeyFilters, KeyOrders} {
		if !kv.has(key) {
			t.Errorf("key %s not persisted", key)
		}
	}
}

func TestLogin_EmptyCredentials(t *testing.T) {
	tests := []struct{ email, password string }{
		{"", "secret"},
		{"anna@example.com", ""},
		{"", ""},
	}
	for _, tc := range tests {
		m, kv := newTestManager(t)
		_, err := m.Login(context.Background(), tc.email, tc.password)
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login(%q, %q) error = %v, want ErrInvalidCredentials", tc.email, tc.password, err)
		}
		if m.Authenticated() || kv.has(KeyUser) {
			t.Errorf("Login(%q, %q) left a session behind", tc.email, tc.password)
		}
	}
}

func TestLogin_HonoursDelayAndCancellation(t *testing.T) {
	m := NewManagerWithClock(newMockKV(), &mockClock{now: testNow}, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := m.Login(ctx, "anna@example.com", "secret")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Login error = %v, want DeadlineExceeded", err)
	}
	if m.Busy() {
		t.Error("manager still busy after cancelled login")
	}
	if m.Authenticated() {
		t.Error("cancelled login created a session")
	}
}

func TestMutationsRejectedWhileBusy(t *testing.T) {
	m, _ := newTestManager(t)
	signIn(t, m)

	m.authDelay = time.Hour
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := m.Login(ctx, "other@example.com", "pw")
		done <- err
	}()

	deadline := time.Now().Add(time.Second)
	for !m.Busy() {
		if time.Now().After(deadline) {
			t.Fatal("login never became busy")
		}
		time.Sleep(time.Millisecond)
	}

	if _, err := m.AddConfiguration(configurator.Summary{Model: "APEX SUV"}); !errors.Is(err, ErrBusy) {
		t.Errorf("AddConfiguration error = %v, want ErrBusy", err)
	}
	if err := m.DeleteConfiguration("config-001"); !errors.Is(err, ErrBusy) {
		t.Errorf("DeleteConfiguration error = %v, want ErrBusy", err)
	}
	if err := m.Logout(); !errors.Is(err, ErrBusy) {
		t.Errorf("Logout error = %v, want ErrBusy", err)
	}
	if _, err := m.Login(context.Background(), "x@example.com", "pw"); !errors.Is(err, ErrBusy) {
		t.Errorf("second Login error = %v, want ErrBusy", err)
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("first Login error = %v, want Canceled", err)
	}
	if len(m.Configurations()) != 1 {
		t.Errorf("state changed while busy: %+v", m.Configurations())
	}
}

func TestRegister(t *testing.T) {
	m, kv := newTestManager(t)

	u, err := m.Register(context.Background(), Registration{
		Name: "Anna Petrova", Email: "anna@example.com", Password: "pw", Confirm: "pw",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !strings.HasPrefix(u.ID, "user-") || u.ID == "user-001" {
		t.Errorf("ID = %q, want fresh user-* id", u.ID)
	}
	if u.Name != "Anna Petrova" || u.Email != "anna@example.com" {
		t.Errorf("user = %+v", u)
	}
	if len(m.Configurations()) != 0 || len(m.Orders()) != 0 || len(m.Filters()) != 0 {
		t.Error("new account should start empty")
	}
	if !kv.has(KeyUser) {
		t.Error("user not persisted")
	}
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name  string
		reg   Registration
		field string
	}{
		{"missing name", Registration{Email: "a@b.c", Password: "pw", Confirm: "pw"}, "name"},
		{"blank email", Registration{Name: "A", Email: "  ", Password: "pw", Confirm: "pw"}, "email"},
		{"missing password", Registration{Name: "A", Email: "a@b.c"}, "password"},
		{"mismatch", Registration{Name: "A", Email: "a@b.c", Password: "pw", Confirm: "pw2"}, "confirmPassword"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, _ := newTestManager(t)
			_, err := m.Register(context.Background(), tc.reg)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("error = %v, want *ValidationError", err)
			}
			if ve.Field != tc.field {
				t.Errorf("Field = %q, want %q", ve.Field, tc.field)
			}
			if m.Authenticated() {
				t.Error("invalid registration created a session")
			}
		})
	}
}

func TestLogout_ClearsStateAndStorage(t *testing.T) {
	m, kv := newTestManager(t)
	signIn(t, m)
	if _, err := m.AddFilter(search.Query{Make: "BMW"}, ""); err != nil {
		t.Fatalf("AddFilter: %v", err)
	}

	if err := m.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if m.Authenticated() {
		t.Error("still authenticated after logout")
	}
	for _, key := range []string{KeyUser, KeyConfigurations, KeyFilters, KeyOrders} {
		if kv.has(key) {
			t.Errorf("key %s survived logout", key)
		}
	}
	if len(m.Configurations()) != 0 || len(m.Filters()) != 0 || len(m.Orders()) != 0 {
		t.Error("collections not cleared")
	}

	// Signed-out logout is harmless.
	if err := m.Logout(); err != nil {
		t.Errorf("second Logout: %v", err)
	}
}

func TestRequiresSession(t *testing.T) {
	m, _ := newTestManager(t)

	if _, err := m.AddConfiguration(configurator.Summary{}); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("AddConfiguration error = %v", err)
	}
	if err := m.DeleteConfiguration("config-001"); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("DeleteConfiguration error = %v", err)
	}
	if _, err := m.AddFilter(search.Query{}, "x"); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("AddFilter error = %v", err)
	}
	if err := m.DeleteFilter("filter-1"); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("DeleteFilter error = %v", err)
	}
	if _, err := m.Export(); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("Export error = %v", err)
	}
	if err := m.DeleteAccount(); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("DeleteAccount error = %v", err)
	}
}

func TestConfigurations_AddDelete(t *testing.T) {
	m, _ := newTestManager(t)
	signIn(t, m)

	sum := configurator.Summary{
		Model: "VELOCITY Sedan", Trim: "Sport", Powertrain: "Full Electric",
		Exterior: "Sunset Orange", Accessories: []string{"Cargo Net System"}, TotalPrice: 64010,
	}
	c, err := m.AddConfiguration(sum)
	if err != nil {
		t.Fatalf("AddConfiguration: %v", err)
	}
	if !strings.HasPrefix(c.ID, "config-") {
		t.Errorf("ID = %q", c.ID)
	}
	if c.Date != "2025-03-14" {
		t.Errorf("Date = %q, want 2025-03-14", c.Date)
	}
	if got := m.Configurations(); len(got) != 2 || got[1].ID != c.ID {
		t.Fatalf("configurations = %+v", got)
	}

	if err := m.DeleteConfiguration("config-missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete unknown error = %v, want ErrNotFound", err)
	}
	if len(m.Configurations()) != 2 {
		t.Error("unknown delete changed the list")
	}

	if err := m.DeleteConfiguration(c.ID); err != nil {
		t.Fatalf("DeleteConfiguration: %v", err)
	}
	if got := m.Configurations(); len(got) != 1 || got[0].ID != "config-001" {
		t.Errorf("after delete = %+v", got)
	}
}

func TestAddConfiguration_StorageFailureLeavesStateUnchanged(t *testing.T) {
	m, kv := newTestManager(t)
	signIn(t, m)

	kv.failSet = true
	if _, err := m.AddConfiguration(configurator.Summary{Model: "APEX SUV"}); err == nil {
		t.Fatal("expected storage error")
	}
	if len(m.Configurations()) != 1 {
		t.Errorf("configurations = %+v, want unchanged", m.Configurations())
	}
}

func TestFilters_AddDelete(t *testing.T) {
	m, _ := newTestManager(t)
	signIn(t, m)

	q := search.Query{Make: "BMW", MinPrice: 60000, MaxPrice: 70000, SortBy: search.SortPriceAsc}
	f, err := m.AddFilter(q, "")
	if err != nil {
		t.Fatalf("AddFilter: %v", err)
	}
	if f.Name != "Search - 2025-03-14" {
		t.Errorf("default name = %q", f.Name)
	}
	if !f.CreatedAt.Equal(testNow) {
		t.Errorf("CreatedAt = %v", f.CreatedAt)
	}
	if f.Filters != q {
		t.Errorf("Filters = %+v, want %+v", f.Filters, q)
	}

	named, err := m.AddFilter(search.Query{Fuel: "Electric"}, "  EVs  ")
	if err != nil {
		t.Fatalf("AddFilter named: %v", err)
	}
	if named.Name != "EVs" {
		t.Errorf("Name = %q", named.Name)
	}

	if _, err := m.AddFilter(search.Query{MinPrice: 5, MaxPrice: 1}, "bad"); err == nil {
		t.Error("inverted bounds accepted")
	}

	if err := m.DeleteFilter(f.ID); err != nil {
		t.Fatalf("DeleteFilter: %v", err)
	}
	if got := m.Filters(); len(got) != 1 || got[0].ID != named.ID {
		t.Errorf("filters = %+v", got)
	}
	if err := m.DeleteFilter(f.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete error = %v", err)
	}
}

func TestRestore(t *testing.T) {
	kv := newMockKV()
	m1 := NewManagerWithClock(kv, &mockClock{now: testNow}, 0)
	signIn(t, m1)
	if _, err := m1.AddFilter(search.Query{Make: "Audi"}, "audi"); err != nil {
		t.Fatal(err)
	}

	m2 := NewManagerWithClock(kv, &mockClock{now: testNow}, 0)
	if err := m2.Restore(); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	u, ok := m2.User()
	if !ok || u.Email != "anna@example.com" {
		t.Errorf("restored user = %+v, %v", u, ok)
	}
	if len(m2.Configurations()) != 1 || len(m2.Filters()) != 1 || len(m2.Orders()) != 1 {
		t.Errorf("restored collections: %d configs, %d filters, %d orders",
			len(m2.Configurations()), len(m2.Filters()), len(m2.Orders()))
	}
}

func TestLogin_AgainDropsPreviousFiltersFromStorage(t *testing.T) {
	kv := newMockKV()
	m1 := NewManagerWithClock(kv, &mockClock{now: testNow}, 0)
	signIn(t, m1)
	if _, err := m1.AddFilter(search.Query{Make: "Audi"}, "audi"); err != nil {
		t.Fatal(err)
	}
	if _, err := m1.Login(context.Background(), "ben@example.com", "secret"); err != nil {
		t.Fatalf("second Login: %v", err)
	}
	if n := len(m1.Filters()); n != 0 {
		t.Errorf("filters after second login = %d, want 0", n)
	}

	m2 := NewManagerWithClock(kv, &mockClock{now: testNow}, 0)
	if err := m2.Restore(); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	u, ok := m2.User()
	if !ok || u.Email != "ben@example.com" {
		t.Errorf("restored user = %+v, %v", u, ok)
	}
	if n := len(m2.Filters()); n != 0 {
		t.Errorf("restored filters = %d, want 0", n)
	}
}

func TestLogin_PartialWriteDoesNotRestore(t *testing.T) {
	for _, key := range []string{KeyConfigurations, KeyFilters, KeyOrders, KeyUser} {
		t.Run(key, func(t *testing.T) {
			kv := newMockKV()
			m1 := NewManagerWithClock(kv, &mockClock{now: testNow}, 0)
			signIn(t, m1)

			kv.failKey = key
			if _, err := m1.Login(context.Background(), "ben@example.com", "secret"); err == nil {
				t.Fatal("expected storage error")
			}
			if m1.Authenticated() {
				t.Error("still signed in after failed login")
			}

			m2 := NewManagerWithClock(kv, &mockClock{now: testNow}, 0)
			if err := m2.Restore(); err != nil {
				t.Fatalf("Restore: %v", err)
			}
			if u, ok := m2.User(); ok {
				t.Errorf("restored half-written session for %s", u.Email)
			}
		})
	}
}

func TestRestore_NoSessionAndCorruptData(t *testing.T) {
	kv := newMockKV()
	m := NewManagerWithClock(kv, &mockClock{now: testNow}, 0)
	if err := m.Restore(); err != nil {
		t.Fatalf("Restore on empty store: %v", err)
	}
	if m.Authenticated() {
		t.Error("empty store restored a session")
	}

	kv.data[KeyUser] = "{not json"
	if err := m.Restore(); err == nil {
		t.Error("expected decode error")
	}
}

func TestExport(t *testing.T) {
	m, _ := newTestManager(t)
	signIn(t, m)

	exp, err := m.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if exp.User == nil || exp.User.ID != "user-001" {
		t.Errorf("User = %+v", exp.User)
	}
	if len(exp.Configurations) != 1 || len(exp.Orders) != 1 || exp.Filters == nil {
		t.Errorf("export = %+v", exp)
	}
	if !exp.ExportedAt.Equal(testNow) {
		t.Errorf("ExportedAt = %v", exp.ExportedAt)
	}

	// The export is a copy.
	exp.Configurations[0].Accessories[0] = "changed"
	if m.Configurations()[0].Accessories[0] != "Tow Bar Package" {
		t.Error("export aliased session state")
	}
}

func TestExportFilename(t *testing.T) {
	if got := ExportFilename(testNow); got != "autopro-data-export-2025-03-14.json" {
		t.Errorf("ExportFilename = %q", got)
	}
}

func TestDeleteAccount(t *testing.T) {
	m, kv := newTestManager(t)
	signIn(t, m)

	if err := m.DeleteAccount(); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}
	if m.Authenticated() || kv.has(KeyUser) || kv.has(KeyOrders) {
		t.Error("account data survived deletion")
	}
}

func TestLogin_DemoDataNotShared(t *testing.T) {
	m, _ := newTestManager(t)
	signIn(t, m)

	c := m.Configurations()
	c[0].Accessories[0] = "changed"
	if demoConfigurations[0].Accessories[0] != "Tow Bar Package" {
		t.Fatal("caller mutated demo configuration")
	}
	if m.Configurations()[0].Accessories[0] != "Tow Bar Package" {
		t.Error("Configurations returned shared slice")
	}
}
