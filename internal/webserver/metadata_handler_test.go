package webserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ventoux/fileintake/internal/database"
	"github.com/ventoux/fileintake/internal/model"
)

func TestMetadataQueryMissingParameter(t *testing.T) {
	server, _, teardown := setup(t)
	defer teardown()

	res, err := http.Get(server.URL + "/metadata")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Missing 'file_extension' query parameter.", body(t, res))
}

func TestMetadataQueryNoMatch(t *testing.T) {
	server, _, teardown := setup(t)
	defer teardown()

	res, err := http.Get(server.URL + "/metadata?file_extension=pdf")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Query results: ", body(t, res))
}

func TestMetadataQueryEndToEnd(t *testing.T) {
	server, endpoint, teardown := setup(t)
	defer teardown()

	payload := `{"records":[{"bucket":"uploaded-by-client","key":"report.pdf","size":2048}]}`
	res, err := http.Post(server.URL+"/events", "application/json", strings.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Metadata stored successfully", body(t, res))

	require.Len(t, endpoint.notifications, 1)
	assert.Equal(t, "File Upload Success", endpoint.notifications[0].Subject)

	//

	res, err = http.Get(server.URL + "/metadata?file_extension=pdf")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	content := body(t, res)
	lines := strings.Split(content, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Query results: ", lines[0])
	assert.Contains(t, lines[1], "report.pdf")
	assert.Contains(t, lines[1], "2.00 KB")
	assert.Contains(t, lines[1], time.Now().UTC().Format("02.01.2006 at"))
}

func TestMetadataQueryCaseSensitive(t *testing.T) {
	server, _, teardown := setup(t)
	defer teardown()

	payload := `{"records":[{"key":"report.PDF","size":10}]}`
	res, err := http.Post(server.URL+"/events", "application/json", strings.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	res.Body.Close()

	// The stored extension is lower-cased; the parameter is matched as given.
	res, err = http.Get(server.URL + "/metadata?file_extension=PDF")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Query results: ", body(t, res))
}

func TestMetadataQueryJSONVariant(t *testing.T) {
	server, _, teardown := setup(t)
	defer teardown()

	payload := `{"records":[{"key":"report.pdf","size":2048}]}`
	res, err := http.Post(server.URL+"/events", "application/json", strings.NewReader(payload))
	require.NoError(t, err)
	res.Body.Close()

	req, err := http.NewRequest(http.MethodGet, server.URL+"/metadata?file_extension=pdf", nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "application/json")

	res, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var records []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body(t, res)), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "report.pdf", records[0]["file_name"])
	assert.Equal(t, "pdf", records[0]["file_extension"])
	assert.Equal(t, float64(2048), records[0]["file_size"])
}

type failingDB struct {
	database.Client
}

func (failingDB) FindRecordsByExtension(string) ([]*model.UploadRecord, error) {
	return nil, errors.New("database is unreachable")
}

func TestMetadataQueryReadFailure(t *testing.T) {
	h := metadata{db: failingDB{}}

	engine := echoForTest()
	req := httptest.NewRequest(http.MethodGet, "/metadata?file_extension=pdf", nil)
	rec := httptest.NewRecorder()

	err := h.Query(engine.NewContext(req, rec))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Error querying metadata store: database is unreachable", rec.Body.String())
}
