package store

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"bankcli/internal/domain"
	"bankcli/internal/gateway"
	"bankcli/internal/limits"
)

// newGateway stands up a fake banking API and returns a gateway
// pointed at it.
func newGateway(t *testing.T, r chi.Router) *gateway.Client {
	t.Helper()
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return gateway.New(srv.URL, 2*time.Second)
}

func newChecker() *limits.Checker {
	return limits.NewChecker(100000, 10000)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func jsonDecode(r *http.Request, target interface{}) error {
	return json.NewDecoder(r.Body).Decode(target)
}

func signedTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign test token: %v", err)
	}
	return token
}

func aliceAuthResponse() domain.AuthResponse {
	return domain.AuthResponse{
		Token:    "t1",
		Username: "alice",
		Email:    "a@x.com",
		FullName: "Alice A",
	}
}

func checkingAccount(id int64, number, balance string) domain.Account {
	return domain.Account{
		AccountID:     id,
		AccountNumber: number,
		AccountType:   domain.AccountTypeChecking,
		Balance:       balance,
		Currency:      "USD",
		Status:        "ACTIVE",
	}
}
