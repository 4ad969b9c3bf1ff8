package httphandler_test

import (
	"context"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/ericfisherdev/portpanel/internal/adapter/driven/memory"
	sqliteadapter "github.com/ericfisherdev/portpanel/internal/adapter/driven/sqlite"
	httphandler "github.com/ericfisherdev/portpanel/internal/adapter/driving/http"
	"github.com/ericfisherdev/portpanel/internal/application"
	"github.com/ericfisherdev/portpanel/internal/domain/port/driven"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupSQLiteServer wires the full stack over a SQLite file at dbPath,
// seeding default ports the way startup does. Users live in memory unless a
// persistent store is requested.
func setupSQLiteServer(t *testing.T, dbPath string, persistUsers bool) *testServer {
	t.Helper()
	ctx := context.Background()

	db, err := sqliteadapter.NewDB(ctx, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqliteadapter.RunMigrations(db.Writer))

	var users driven.CredentialStore = memory.NewCredentialRepo()
	if persistUsers {
		users = sqliteadapter.NewUserRepo(db)
	}

	clock := &testClock{now: time.Now()}
	tokens := application.NewTokenService([]byte("e2e-secret"), time.Hour, clock.Now)
	accounts := application.NewAccountService(users, application.PlaintextVerifier{}, tokens)
	portSvc := application.NewPortService(sqliteadapter.NewPortRepo(db), slog.Default())
	require.NoError(t, portSvc.EnsureDefaults(ctx))

	h := httphandler.NewHandler(accounts, portSvc, slog.Default())
	return &testServer{mux: httphandler.NewServeMux(h, slog.Default()), clock: clock}
}

func TestEndToEnd_AccountLifecycle(t *testing.T) {
	srv := setupSQLiteServer(t, filepath.Join(t.TempDir(), "ports.db"), false)

	rec := srv.do(t, http.MethodPost, "/users", credentials("alice", "pw1"))
	require.Equal(t, http.StatusOK, rec.Code)

	token := srv.login(t, "alice", "pw1")

	rec = srv.do(t, http.MethodGet, "/users?username=alice&token="+token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"username":"alice"}`, rec.Body.String())

	rec = srv.do(t, http.MethodDelete, "/authenticate?token="+token, nil)
	assertDetail(t, rec, http.StatusOK, "User alice has been deleted")

	rec = srv.do(t, http.MethodGet, "/authenticate?token="+token, nil)
	assertDetail(t, rec, http.StatusNotFound, "User not found")
}

func TestEndToEnd_DefaultPorts(t *testing.T) {
	srv := setupSQLiteServer(t, filepath.Join(t.TempDir(), "ports.db"), false)
	srv.register(t, "alice", "pw1")
	q := "?token=" + srv.login(t, "alice", "pw1")

	rec := srv.do(t, http.MethodGet, "/orders"+q, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var ports []httphandler.PortResponse
	decodeJSON(t, rec, &ports)
	require.Len(t, ports, 8)

	numbers := make([]int, 0, len(ports))
	for _, p := range ports {
		numbers = append(numbers, p.PortNumber)
	}
	assert.Equal(t, []int{80, 443, 21, 22, 53, 25, 110, 143}, numbers)
	assert.Equal(t, "DNS", ports[4].Name)
	assert.Equal(t, "UDP", ports[4].Protocol)

	rec = srv.do(t, http.MethodPost, "/orders"+q, map[string]any{
		"name": "Custom", "port_number": 8080, "protocol": "TCP",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodGet, "/orders"+q, nil)
	decodeJSON(t, rec, &ports)
	require.Len(t, ports, 9)
	assert.Equal(t, 8080, ports[8].PortNumber)
	assert.Equal(t, "Custom", ports[8].Name)

	rec = srv.do(t, http.MethodPost, "/orders"+q, map[string]any{
		"name": "Web", "port_number": 80, "protocol": "TCP",
	})
	assertDetail(t, rec, http.StatusBadRequest, "Port already exists")
}

func TestEndToEnd_ExpiredToken(t *testing.T) {
	srv := setupSQLiteServer(t, filepath.Join(t.TempDir(), "ports.db"), false)
	srv.register(t, "alice", "pw1")
	token := srv.login(t, "alice", "pw1")

	srv.clock.now = srv.clock.now.Add(2 * time.Hour)

	rec := srv.do(t, http.MethodGet, "/orders?token="+token, nil)
	assertDetail(t, rec, http.StatusUnauthorized, "Token has expired")
}

func TestEndToEnd_PersistsAcrossRestart(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ports.db")

	first := setupSQLiteServer(t, dbPath, true)
	first.register(t, "alice", "pw1")
	q := "?token=" + first.login(t, "alice", "pw1")
	rec := first.do(t, http.MethodDelete, "/orders/21"+q, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	second := setupSQLiteServer(t, dbPath, true)
	q = "?token=" + second.login(t, "alice", "pw1")

	rec = second.do(t, http.MethodGet, "/orders"+q, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var ports []httphandler.PortResponse
	decodeJSON(t, rec, &ports)
	// The store was not empty on restart, so the deleted default stays gone.
	assert.Len(t, ports, 7)
	for _, p := range ports {
		assert.NotEqual(t, 21, p.PortNumber)
	}
}
