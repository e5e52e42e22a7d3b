package webserver

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventsReceiveBatch(t *testing.T) {
	server, endpoint, teardown := setup(t)
	defer teardown()

	payload := `{"records":[
		{"key":"report.pdf","size":2048},
		{"key":"virus.exe","size":512},
		{"key":"photo.jpg","size":1024}
	]}`
	res, err := http.Post(server.URL+"/events", "application/json", strings.NewReader(payload))
	require.NoError(t, err)

	// The acknowledgment covers the whole batch, rejections included.
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Metadata stored successfully", body(t, res))

	require.Len(t, endpoint.notifications, 3)
	subjects := make([]string, 0, 3)
	for _, n := range endpoint.notifications {
		subjects = append(subjects, n.Subject)
	}
	assert.Equal(t, []string{"File Upload Success", "File Upload Error", "File Upload Success"}, subjects)
}

func TestEventsReceiveEmptyBatch(t *testing.T) {
	server, endpoint, teardown := setup(t)
	defer teardown()

	res, err := http.Post(server.URL+"/events", "application/json", strings.NewReader(`{"records":[]}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Metadata stored successfully", body(t, res))
	assert.Empty(t, endpoint.notifications)
}
