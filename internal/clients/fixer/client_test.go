package fixer_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mresults/fxconvert/internal/apperrors"
	"github.com/mresults/fxconvert/internal/clients/fixer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchRates_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "AUD", r.URL.Query().Get("base"))
		assert.Equal(t, "USD,GBP", r.URL.Query().Get("symbols"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"base":"AUD","date":"2017-05-12","rates":{"USD":0.70025,"GBP":0.55}}`))
	}))
	defer server.Close()

	client := fixer.NewClient(server.URL, 5*time.Second)
	rates, err := client.FetchRates(context.Background(), "AUD", []string{"USD", "GBP"})

	require.NoError(t, err)
	assert.Equal(t, "AUD", rates.Base)
	usd, ok := rates.Rate("USD")
	require.True(t, ok)
	assert.Equal(t, "0.70025", usd.String())
	assert.WithinDuration(t, time.Now(), rates.FetchedAt, time.Minute)
}

func TestFetchRates_BaseRateIsIdentity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"base":"AUD","rates":{"USD":0.70025}}`))
	}))
	defer server.Close()

	client := fixer.NewClient(server.URL, 5*time.Second)
	rates, err := client.FetchRates(context.Background(), "AUD", []string{"USD"})

	require.NoError(t, err)
	rate, ok := rates.Rate("AUD")
	require.True(t, ok)
	assert.Equal(t, "1", rate.String())
}

func TestFetchRates_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := fixer.NewClient(server.URL, 5*time.Second)
	_, err := client.FetchRates(context.Background(), "AUD", nil)

	assert.ErrorIs(t, err, apperrors.ErrRemoteFetch)
}

func TestFetchRates_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := fixer.NewClient(server.URL, time.Second)
	_, err := client.FetchRates(context.Background(), "AUD", nil)

	assert.ErrorIs(t, err, apperrors.ErrRemoteFetch)
}

func TestFetchRates_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer server.Close()

	client := fixer.NewClient(server.URL, 5*time.Second)
	_, err := client.FetchRates(context.Background(), "AUD", nil)

	assert.ErrorIs(t, err, apperrors.ErrParse)
}

func TestFetchRates_MissingRates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"base":"AUD","date":"2017-05-12"}`))
	}))
	defer server.Close()

	client := fixer.NewClient(server.URL, 5*time.Second)
	_, err := client.FetchRates(context.Background(), "AUD", nil)

	assert.ErrorIs(t, err, apperrors.ErrParse)
}

func TestListCodes_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		_, _ = w.Write([]byte(`{"base":"EUR","rates":{"USD":1.086,"GBP":0.8459,"AUD":1.4689}}`))
	}))
	defer server.Close()

	client := fixer.NewClient(server.URL, 5*time.Second)
	codes, err := client.ListCodes(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"AUD", "GBP", "USD"}, codes)
}

func TestListCodes_MissingRatesObject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"base":"EUR"}`))
	}))
	defer server.Close()

	client := fixer.NewClient(server.URL, 5*time.Second)
	_, err := client.ListCodes(context.Background())

	assert.ErrorIs(t, err, apperrors.ErrParse)
}
