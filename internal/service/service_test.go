package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/fairsplit/internal/auth"
	"github.com/mmynk/fairsplit/internal/history"
	"github.com/mmynk/fairsplit/internal/middleware"
	"github.com/mmynk/fairsplit/internal/storage/sqlite"
	"github.com/mmynk/fairsplit/pkg/api"
	"github.com/mmynk/fairsplit/pkg/api/apiconnect"
)

// testAuthInterceptor returns a Connect interceptor that sets a test user ID in the context.
func testAuthInterceptor(userID string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			ctx = context.WithValue(ctx, middleware.UserIDKey, userID)
			return next(ctx, req)
		}
	}
}

type testClients struct {
	split   apiconnect.SplitServiceClient
	history apiconnect.HistoryServiceClient
	auth    apiconnect.AuthServiceClient
	// bob calls HistoryService as a second user
	bob apiconnect.HistoryServiceClient
}

// setupTestServer serves every service over a temp SQLite database.
// HistoryService is mounted twice: as "Alice" on the default path and as
// "Bob" under /bob.
func setupTestServer(t *testing.T) testClients {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	manager := history.NewManager(store, history.WithLimit(3))
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewSplitServiceHandler(NewSplitService(nil, nil)))
	mux.Handle(apiconnect.NewHistoryServiceHandler(
		NewHistoryService(manager, nil, nil),
		connect.WithInterceptors(testAuthInterceptor("Alice")),
	))
	mux.Handle(apiconnect.NewAuthServiceHandler(
		NewAuthService(authenticator, jwtManager, store, nil),
		connect.WithInterceptors(middleware.OptionalAuth(jwtManager)),
	))

	bobPath, bobHandler := apiconnect.NewHistoryServiceHandler(
		NewHistoryService(manager, nil, nil),
		connect.WithInterceptors(testAuthInterceptor("Bob")),
	)
	mux.Handle("/bob"+bobPath, http.StripPrefix("/bob", bobHandler))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return testClients{
		split:   apiconnect.NewSplitServiceClient(http.DefaultClient, server.URL),
		history: apiconnect.NewHistoryServiceClient(http.DefaultClient, server.URL),
		auth:    apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL),
		bob:     apiconnect.NewHistoryServiceClient(http.DefaultClient, server.URL+"/bob"),
	}
}

// dinnerBill is Alice, Bob and Charlie sharing a $60 dinner, with $6 tax and
// a 10% tip. Alice's steak is $30, Bob's pasta $20, Charlie's salad $10.
func dinnerBill() *api.Bill {
	return &api.Bill{
		Items: []api.Item{
			{ID: "steak", Name: "Steak", Price: 30, AssignedTo: []string{"alice"}},
			{ID: "pasta", Name: "Pasta", Price: 20, AssignedTo: []string{"bob"}},
			{ID: "salad", Name: "Salad", Price: 10, AssignedTo: []string{"charlie"}},
		},
		Tax:           6,
		TipType:       "percent",
		TipPercentage: 10,
		People: []api.Person{
			{ID: "alice", Name: "Alice"},
			{ID: "bob", Name: "Bob"},
			{ID: "charlie", Name: "Charlie"},
		},
		Currency: "$",
	}
}

func splitFor(t *testing.T, splits []api.PersonSplit, personID string) api.PersonSplit {
	t.Helper()
	for _, s := range splits {
		if s.PersonID == personID {
			return s
		}
	}
	t.Fatalf("no split for %s", personID)
	return api.PersonSplit{}
}
