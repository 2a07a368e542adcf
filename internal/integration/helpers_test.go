package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp":   {},
	"requestId":   {},
	"confirmedAt": {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string, cookies []*http.Cookie) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indetermistic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		if nested, ok := m[k].(map[string]any); ok {
			cleanMap(nested)
		}
	}
}

func executeSQLFile(t testing.TB, db *pgxpool.Pool, path string) {
	t.Helper()

	sql, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = db.Exec(context.Background(), string(sql))
	require.NoError(t, err)
}

func flushAllCache(t testing.TB, client *redis.Client) {
	t.Helper()

	require.NoError(t, client.FlushAll(context.Background()).Err())
}

// setupCatalog resets the database and the cache to the seeded catalog.
func setupCatalog(t testing.TB, app *TestApp) {
	t.Helper()

	executeSQLFile(t, app.DB, "testdata/catalog_down.sql")
	flushAllCache(t, app.RedisClient)
	executeSQLFile(t, app.DB, "testdata/catalog_up.sql")
}
