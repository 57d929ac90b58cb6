package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
	"showTime":  {},
}

func stringsReader(s string) io.Reader {
	return strings.NewReader(s)
}

func prepareRequest(
	method, path string,
	body io.Reader,
	headers map[string]string,
	cookies []http.Cookie) *http.Request {

	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for i := range cookies {
		req.AddCookie(&cookies[i])
	}

	return req
}

// compareResponse compares a JSON body with the expected document. Fields
// whose value differs on every run are left out of the comparison.
func compareResponse(t testing.TB, body io.Reader, expectedResponse string) {
	t.Helper()

	var actual any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	var expected any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	actual = clean(actual)
	expected = clean(expected)

	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func clean(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k := range v {
			if _, ok := keysToIgnore[k]; ok {
				delete(v, k)
				continue
			}
			v[k] = clean(v[k])
		}
	case []any:
		for i := range v {
			v[i] = clean(v[i])
		}
	}

	return v
}

func executeSQLFile(t testing.TB, db *pgxpool.Pool, path string) {
	t.Helper()

	sql, err := os.ReadFile(path)
	require.NoError(t, err, "failed to read %s", path)

	_, err = db.Exec(context.Background(), string(sql))
	require.NoError(t, err, "failed to execute %s", path)
}

func insertUser(t testing.TB, db *pgxpool.Pool, email, password string, isStaff bool) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	_, err = db.Exec(context.Background(), `
		INSERT INTO users (email, password_hash, is_staff)
		VALUES ($1, $2, $3)
	`, email, hash, isStaff)
	require.NoError(t, err)
}

// setupUsers recreates the regular, second and staff users with ids 1, 2 and 3.
func setupUsers(t testing.TB, db *pgxpool.Pool) {
	t.Helper()

	executeSQLFile(t, db, "testdata/users_down.sql")

	insertUser(t, db, TestUserEmail, TestUserPassword, false)
	insertUser(t, db, TestOtherEmail, TestUserPassword, false)
	insertUser(t, db, TestStaffEmail, TestUserPassword, true)
}

// setupCatalog resets the catalog to one play running in the 5x10 "Main Stage"
// (performance 1) and the 2x3 "Studio" (performance 2).
func setupCatalog(t testing.TB, db *pgxpool.Pool) {
	t.Helper()

	executeSQLFile(t, db, "testdata/catalog_down.sql")
	executeSQLFile(t, db, "testdata/catalog_up.sql")
}

// resetRateLimits drops every limiter bucket and leaves the sessions alone.
func resetRateLimits(t testing.TB, rdb *redis.Client) {
	t.Helper()

	ctx := context.Background()

	iter := rdb.Scan(ctx, 0, TestRateLimitPrefix+":*", 100).Iterator()
	for iter.Next(ctx) {
		require.NoError(t, rdb.Del(ctx, iter.Val()).Err())
	}
	require.NoError(t, iter.Err())
}

func countTickets(t testing.TB, db *pgxpool.Pool, performanceId int) int {
	t.Helper()

	var count int
	err := db.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM tickets WHERE performance_id = $1", performanceId).Scan(&count)
	require.NoError(t, err)

	return count
}

func serve(app *TestApp, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.App.Routes().ServeHTTP(rec, req)

	return rec
}

func decodeBody(t testing.TB, body io.Reader, dst any) {
	t.Helper()

	require.NoError(t, json.NewDecoder(body).Decode(dst))
}
