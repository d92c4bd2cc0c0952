package registry_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/awscbba/registry-frontend-sub000/internal/model"
	"github.com/awscbba/registry-frontend-sub000/internal/registry"
)

var nopLog = zerolog.Nop()

func newClient(t *testing.T, handler http.Handler) *registry.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return registry.New(registry.Config{BaseURL: srv.URL}, &nopLog)
}

func TestListPeopleUnwrapsEnvelope(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/people", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"p-1","first_name":"Ana"}]}`))
	}))

	people, err := client.ListPeople(context.Background())
	require.NoError(t, err)
	require.Len(t, people, 1)
	require.Equal(t, "Ana", people[0].FirstName)
}

func TestListPeopleAcceptsBareArray(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"p-1"},{"id":"p-2"}]`))
	}))

	people, err := client.ListPeople(context.Background())
	require.NoError(t, err)
	require.Len(t, people, 2)
}

func TestApiErrorCarriesBackendMessage(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"correo duplicado"}`))
	}))

	_, err := client.CreatePerson(context.Background(), model.Person{})
	var apiErr *registry.ApiError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusConflict, apiErr.Status)
	require.Equal(t, "correo duplicado", apiErr.Message)
}

func TestApiErrorFallbackMessage(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.CreatePerson(context.Background(), model.Person{})
	var apiErr *registry.ApiError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "Error al crear persona", apiErr.Message)
}

func TestNonJSONSuccessBodyIsUnreachable(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>proxy error</html>`))
	}))

	_, err := client.ListProjects(context.Background())
	var unreachable *registry.UnreachableError
	require.ErrorAs(t, err, &unreachable)
	var apiErr *registry.ApiError
	require.False(t, errors.As(err, &apiErr), "must not be reported as an ApiError")
}

func TestServerDownIsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := registry.New(registry.Config{BaseURL: srv.URL}, &nopLog)

	_, err := client.ListPeople(context.Background())
	var unreachable *registry.UnreachableError
	require.ErrorAs(t, err, &unreachable)
}

func TestUpdateProjectStatusSendsPatch(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]string
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true}`))
	}))

	err := client.UpdateProjectStatus(context.Background(), "pr-1", model.ProjectActive)
	require.NoError(t, err)
	require.Equal(t, http.MethodPatch, gotMethod)
	require.Equal(t, "/projects/pr-1/status", gotPath)
	require.Equal(t, "active", gotBody["status"])
}

func TestDashboardSummaryNotFound(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.DashboardSummary(context.Background())
	var apiErr *registry.ApiError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.Status)
}
