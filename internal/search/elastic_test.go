package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuery(t *testing.T) {
	q := buildQuery("walnut table", 20, 10)
	mm := q["query"].(map[string]any)["multi_match"].(map[string]any)
	assert.Equal(t, "walnut table", mm["query"])
	assert.Equal(t, "AUTO", mm["fuzziness"])
	assert.Contains(t, mm["fields"], "title^2")
	assert.Equal(t, 20, q["from"])
	assert.Equal(t, 10, q["size"])
}

func TestSearchDecodesHits(t *testing.T) {
	id := uuid.New()
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		require.True(t, strings.HasPrefix(r.URL.Path, "/products/_search"))
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		_, _ = io.WriteString(w, `{"hits":{"total":{"value":1},"hits":[{"_source":{"id":"`+id.String()+`"}},{"_source":{"id":"bad"}}]}}`)
	}))
	defer srv.Close()

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)

	e := &Elastic{Client: client, Index: "products"}
	total, ids, err := e.Search(context.Background(), "sofa", 0, 5)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, []uuid.UUID{id}, ids)
	assert.NotNil(t, gotBody["query"])
}
