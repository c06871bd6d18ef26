package iogbif_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/ecoglobe/biosync/internal/iogbif"
	"github.com/ecoglobe/biosync/pkg/config"
	"github.com/ecoglobe/biosync/pkg/sources"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const base = "https://api.gbif.test/v1"

func setup(t *testing.T) sources.OccurrenceSource {
	t.Helper()
	hc := &http.Client{}
	httpmock.ActivateNonDefault(hc)
	t.Cleanup(httpmock.DeactivateAndReset)

	cfg := config.New().Occurrence
	cfg.BaseURL = base
	cfg.RateLimit = 0
	cfg.CacheTTL = time.Minute
	return iogbif.NewWithClient(cfg, hc)
}

func TestSearch(t *testing.T) {
	src := setup(t)
	httpmock.RegisterResponder("GET", base+"/occurrence/search",
		func(req *http.Request) (*http.Response, error) {
			q := req.URL.Query()
			assert.Equal(t, "CL", q.Get("country"))
			assert.Equal(t, "2024-01-01,2024-05-01", q.Get("eventDate"))
			assert.Equal(t, "300", q.Get("limit"))
			assert.Equal(t, "600", q.Get("offset"))
			assert.Equal(t, []string{"CR", "EN"}, q["iucnRedListCategory"])
			body := `{"offset":600,"limit":300,"endOfRecords":true,"count":650,
				"results":[{"gbifID":"11","taxonKey":2435099,
				"scientificName":"Puma concolor","countryCode":"CL",
				"decimalLatitude":-33.4,"decimalLongitude":-70.6}]}`
			return httpmock.NewStringResponse(200, body), nil
		})

	page, err := src.Search(context.Background(), sources.Query{
		Country: "cl", DateMin: "2024-01-01", DateMax: "2024-05-01",
		Limit: 300, Offset: 600, Categories: []string{"CR", "EN"},
	})
	require.NoError(t, err)
	assert.Equal(t, 650, page.Count)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "2435099", page.Results[0].TaxonKey.String())
	assert.True(t, page.EndOfRecords)
}

func TestSearch_Error(t *testing.T) {
	src := setup(t)
	httpmock.RegisterResponder("GET", base+"/occurrence/search",
		httpmock.NewStringResponder(503, `unavailable`))

	_, err := src.Search(context.Background(), sources.Query{Country: "CL"})
	assert.Error(t, err)
}

func TestVernacularNames_Cached(t *testing.T) {
	src := setup(t)
	url := base + "/species/42/vernacularNames"
	httpmock.RegisterResponder("GET", url,
		httpmock.NewStringResponder(200, `{"results":[
			{"vernacularName":"Puma","language":"spa"},
			{"vernacularName":"Cougar","language":"eng"}]}`))

	ctx := context.Background()
	for range 3 {
		res, err := src.VernacularNames(ctx, "42")
		require.NoError(t, err)
		require.Len(t, res, 2)
		assert.Equal(t, "Cougar", res[1].VernacularName)
	}
	info := httpmock.GetCallCountInfo()
	assert.Equal(t, 1, info["GET "+url])
}

func TestMedia_Cached(t *testing.T) {
	src := setup(t)
	url := base + "/species/42/media"
	httpmock.RegisterResponder("GET", url,
		httpmock.NewStringResponder(200, `{"results":[
			{"type":"StillImage","identifier":"https://img.test/puma.jpg",
			 "creator":"Ann","license":"CC-BY"}]}`))

	ctx := context.Background()
	res, err := src.Media(ctx, "42")
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "https://img.test/puma.jpg", res[0].Identifier)

	_, err = src.Media(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, 1, httpmock.GetCallCountInfo()["GET "+url])
}

func TestMedia_ErrorNotCached(t *testing.T) {
	src := setup(t)
	url := base + "/species/7/media"
	httpmock.RegisterResponder("GET", url,
		httpmock.NewStringResponder(500, `oops`))

	ctx := context.Background()
	_, err := src.Media(ctx, "7")
	require.Error(t, err)
	_, err = src.Media(ctx, "7")
	require.Error(t, err)
	assert.Equal(t, 2, httpmock.GetCallCountInfo()["GET "+url])
}

func TestCategory_NeverCached(t *testing.T) {
	src := setup(t)
	url := base + "/species/42/iucnRedListCategory"
	calls := 0
	httpmock.RegisterResponder("GET", url,
		func(*http.Request) (*http.Response, error) {
			calls++
			code := "LC"
			if calls > 1 {
				code = "EN"
			}
			body := fmt.Sprintf(`{"category":"X","code":%q}`, code)
			return httpmock.NewStringResponse(200, body), nil
		})

	ctx := context.Background()
	res, err := src.Category(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "LC", res)

	res, err = src.Category(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "EN", res)
	assert.Equal(t, 2, calls)
}

func TestCategory_NotFound(t *testing.T) {
	src := setup(t)
	httpmock.RegisterResponder("GET", base+"/species/1/iucnRedListCategory",
		httpmock.NewStringResponder(404, ``))
	httpmock.RegisterResponder("GET", base+"/species/2/iucnRedListCategory",
		httpmock.NewStringResponder(200, `{"category":"ENDANGERED"}`))

	ctx := context.Background()
	res, err := src.Category(ctx, "1")
	require.NoError(t, err)
	assert.Empty(t, res)

	res, err = src.Category(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "ENDANGERED", res)
}
