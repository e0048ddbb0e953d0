package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/wedplan/internal/domain"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClient_ListVendors_ForwardsCategoryVerbatim(t *testing.T) {
	t.Parallel()

	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/vendors", r.URL.Path)
		gotQuery = r.URL.Query().Get("category")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"v1","business_name":"Elite Wedding Photography","category":"Photography",
			"services":["Candid Photography"],"pricing_range":{"min":50000,"max":150000},"rating":4.8,"verified":true}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api/", time.Second, newTestLogger())
	vendors, err := c.ListVendors(context.Background(), "photography & more")
	require.NoError(t, err)
	require.Equal(t, "photography & more", gotQuery)
	require.Len(t, vendors, 1)
	require.Equal(t, domain.CategoryPhotography, vendors[0].Category)
	require.Equal(t, domain.PriceRange{Min: 50000, Max: 150000}, vendors[0].PricingRange)
	require.True(t, vendors[0].Verified)
}

func TestClient_ListVendors_NoFilterOmitsQuery(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.URL.RawQuery)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	vendors, err := NewClient(srv.URL, time.Second, newTestLogger()).ListVendors(context.Background(), "")
	require.NoError(t, err)
	require.Empty(t, vendors)
}

func TestClient_SendChat_OmitsEmptySessionID(t *testing.T) {
	t.Parallel()

	var bodies []map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		bodies = append(bodies, body)
		_, _ = w.Write([]byte(`{"response":"Congratulations!","session_id":"s-1","suggestions":["Help with budget planning"],"web_search_used":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, newTestLogger())
	resp, err := c.SendChat(context.Background(), ChatRequest{UserID: "u1", Message: "hi"})
	require.NoError(t, err)
	require.Equal(t, "Congratulations!", resp.Response)
	require.Equal(t, "s-1", resp.SessionID)
	require.True(t, resp.WebSearchUsed)
	require.Equal(t, []string{"Help with budget planning"}, resp.Suggestions)

	_, err = c.SendChat(context.Background(), ChatRequest{UserID: "u1", Message: "again", SessionID: "s-1"})
	require.NoError(t, err)

	require.Len(t, bodies, 2)
	_, has := bodies[0]["session_id"]
	require.False(t, has)
	require.Equal(t, "s-1", bodies[1]["session_id"])
}

func TestClient_StatusErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/missing":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"User not found"}`))
		case "/vendors":
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"detail":[{"field":"email","tag":"email"}]}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`boom`))
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, newTestLogger())

	_, err := c.GetUser(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
	require.Contains(t, err.Error(), "User not found")

	_, err = c.RegisterVendor(context.Background(), domain.VendorRecord{Category: domain.CategoryVenue})
	var se *StatusError
	require.True(t, errors.As(err, &se))
	require.Equal(t, http.StatusUnprocessableEntity, se.Code)
	require.Contains(t, se.Detail, "email")
	require.False(t, errors.Is(err, ErrNotFound))

	_, err = c.SendInquiry(context.Background(), InquiryRequest{UserID: "u", VendorID: "v", Message: "m"})
	require.True(t, errors.As(err, &se))
	require.Equal(t, "boom", se.Detail)
}

func TestClient_RegisterVendor_RejectsUnknownCategoryBeforeSending(t *testing.T) {
	t.Parallel()

	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second, newTestLogger()).RegisterVendor(context.Background(), domain.VendorRecord{})
	require.ErrorIs(t, err, domain.ErrUnknownCategory)
	require.False(t, called)
}

func TestClient_TimeoutSurfacesAsError(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(srv.URL, 50*time.Millisecond, newTestLogger())
	_, err := c.ListVendors(context.Background(), "")
	require.Error(t, err)
}

func TestClient_Recommend(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/recommendations/u 1", r.URL.Path)
		require.Equal(t, "Venue", r.URL.Query().Get("category"))
		_, _ = w.Write([]byte(`{"recommendations":[{"id":"v3","category":"Venue"}],"total_count":1,"category":"Venue"}`))
	}))
	defer srv.Close()

	rec, err := NewClient(srv.URL, time.Second, newTestLogger()).Recommend(context.Background(), "u 1", "Venue")
	require.NoError(t, err)
	require.Equal(t, 1, rec.TotalCount)
	require.Equal(t, "v3", rec.Recommendations[0].ID)
}
