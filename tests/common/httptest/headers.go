//go:build unit || e2e

package httptest

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func AssertHeaders(t *testing.T, w *httptest.ResponseRecorder, expected map[string]string) {
	t.Helper()
	for k, v := range expected {
		assert.Equal(t, v, w.Header().Get(k), "header %s", k)
	}
}

// AssertLocation checks that the Location header points at prefix followed by a resource id.
func AssertLocation(t *testing.T, w *httptest.ResponseRecorder, prefix string) string {
	t.Helper()

	loc := w.Header().Get("Location")
	if !assert.True(t, strings.HasPrefix(loc, prefix), "Location %q does not start with %q", loc, prefix) {
		return ""
	}
	id := strings.TrimPrefix(loc, prefix)
	assert.NotEmpty(t, id, "Location carries no id")
	return id
}
