package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDo_SetsJSONContentType(t *testing.T) {
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	c := NewHTTPClient(srv.URL, 0)
	_, err := c.Login(context.Background(), Credentials{Email: "a@b.c", Password: "p"})
	require.NoError(t, err)
	require.Equal(t, "application/json", gotContentType)
}

func TestDo_AttachesBearerTokenOnlyWhenSet(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	c := NewHTTPClient(srv.URL, 0)

	_, err := c.ListDocuments(context.Background())
	require.NoError(t, err)
	require.Empty(t, gotAuth, "no Authorization header before SetToken")

	c.SetToken("tok-123")
	_, err = c.ListDocuments(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer tok-123", gotAuth)

	c.ClearToken()
	_, err = c.ListDocuments(context.Background())
	require.NoError(t, err)
	require.Empty(t, gotAuth, "ClearToken must drop the header")
}

func TestDo_NonSuccessBecomesStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c := NewHTTPClient(srv.URL, 0)
	_, err := c.ListDocuments(context.Background())
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusInternalServerError, se.Code)
	require.Equal(t, "Internal Server Error", se.Status)
}

func TestDo_PrefersMessageFieldOnAuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid credentials"}`))
	}))
	t.Cleanup(srv.Close)

	c := NewHTTPClient(srv.URL, 0)
	_, err := c.Login(context.Background(), Credentials{Email: "a@b.c", Password: "bad"})
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, "invalid credentials", se.Status)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestDo_TransportFailureIsUnavailable(t *testing.T) {
	// A closed server guarantees a connection error.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)
	_, err := c.ListDocuments(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestListDocuments_AcceptsBareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/documents", r.URL.Path)
		w.Write([]byte(`[{"id":"1","title":"One"},{"id":"2","title":"Two"}]`))
	}))
	t.Cleanup(srv.Close)

	c := NewHTTPClient(srv.URL, 0)
	docs, err := c.ListDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)
	require.Equal(t, "One", docs[0].Title)
}

func TestListDocuments_AcceptsWrappedObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"documents":[{"id":"1","title":"One"}]}`))
	}))
	t.Cleanup(srv.Close)

	c := NewHTTPClient(srv.URL, 0)
	docs, err := c.ListDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Equal(t, "1", docs[0].ID)
}

func TestSearch_SendsQueryAndSemanticFlag(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/search", r.URL.Path)
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = string(buf)
		w.Write([]byte(`[{"id":"1","title":"Hit","relevanceScore":0.9}]`))
	}))
	t.Cleanup(srv.Close)

	c := NewHTTPClient(srv.URL, 0)
	results, err := c.Search(context.Background(), "auth", true)
	require.NoError(t, err)
	require.JSONEq(t, `{"query":"auth","semantic":true}`, gotBody)
	require.Len(t, results, 1)
	require.InDelta(t, 0.9, results[0].RelevanceScore, 1e-9)
}

func TestAsk_DecodesAnswerAndSources(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/qa", r.URL.Path)
		w.Write([]byte(`{"answer":"X is Y","sources":["doc1"]}`))
	}))
	t.Cleanup(srv.Close)

	c := NewHTTPClient(srv.URL, 0)
	ans, err := c.Ask(context.Background(), "What is X?")
	require.NoError(t, err)
	require.Equal(t, "X is Y", ans.Answer)
	require.Equal(t, []string{"doc1"}, ans.Sources)
}

func TestDeleteDocument_UsesDeleteMethodAndEscapesID(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.EscapedPath()
	}))
	t.Cleanup(srv.Close)

	c := NewHTTPClient(srv.URL, 0)
	require.NoError(t, c.DeleteDocument(context.Background(), "a/b"))
	require.Equal(t, http.MethodDelete, gotMethod)
	require.Equal(t, "/api/documents/a%2Fb", gotPath)
}

func TestStatusError_IsDoesNotMatchOtherErrors(t *testing.T) {
	se := &StatusError{Code: http.StatusNotFound, Status: "Not Found"}
	require.False(t, errors.Is(se, ErrUnauthorized))
	require.True(t, errors.Is(&StatusError{Code: 403}, ErrUnauthorized))
}
