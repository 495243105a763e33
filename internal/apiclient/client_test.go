package apiclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"registration-service/internal/apiclient"
	"registration-service/internal/httputil"
	"registration-service/internal/registration"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func input() registration.Input {
	return registration.Input{
		Name:                  "John Doe",
		Date:                  "2026-08-31",
		Programme:             "BTech",
		Branch:                "Computer Science",
		PersonalEmail:         "john.doe@example.com",
		Mobile:                "9876543210",
		EmergencyContactName:  "Jane Doe",
		EmergencyContactPhone: "9876543211",
		Declaration:           true,
	}
}

func TestSubmitForm(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/submit-form", r.URL.Path)

			var in registration.Input
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			assert.Equal(t, "john.doe@example.com", in.PersonalEmail)

			httputil.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
				"message": "Form submitted successfully.",
				"id":      7,
			})
		}))
		defer server.Close()

		id, err := apiclient.New(server.URL).SubmitForm(context.Background(), input())
		require.NoError(t, err)
		assert.Equal(t, int64(7), id)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			httputil.RespondWithError(w, http.StatusConflict, httputil.CodeDuplicateEmail, "Email is already registered.")
		}))
		defer server.Close()

		_, err := apiclient.New(server.URL).SubmitForm(context.Background(), input())
		require.Error(t, err)

		var submitErr *apiclient.SubmitError
		require.ErrorAs(t, err, &submitErr)
		assert.True(t, submitErr.IsDuplicateEmail())
		assert.Equal(t, "Email is already registered.", submitErr.Message)
	})

	t.Run("ValidationFailure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			httputil.RespondWithFieldErrors(w, http.StatusBadRequest, "Please fix the errors in the form.",
				map[string]string{"mobile": "Enter a valid 10-digit mobile number."})
		}))
		defer server.Close()

		_, err := apiclient.New(server.URL).SubmitForm(context.Background(), input())

		var submitErr *apiclient.SubmitError
		require.ErrorAs(t, err, &submitErr)
		assert.False(t, submitErr.IsDuplicateEmail())
		assert.Equal(t, "Enter a valid 10-digit mobile number.", submitErr.Fields["mobile"])
	})

	t.Run("ServerFailure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			httputil.RespondWithError(w, http.StatusInternalServerError, httputil.CodePersistenceFailed, "Submission failed.")
		}))
		defer server.Close()

		_, err := apiclient.New(server.URL).SubmitForm(context.Background(), input())

		var submitErr *apiclient.SubmitError
		require.ErrorAs(t, err, &submitErr)
		assert.Equal(t, httputil.CodePersistenceFailed, submitErr.Code)
	})

	t.Run("NetworkUnreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // nothing listening anymore

		_, err := apiclient.New(server.URL).SubmitForm(context.Background(), input())
		require.Error(t, err)

		var submitErr *apiclient.SubmitError
		assert.NotErrorAs(t, err, &submitErr)
	})
}

func TestListAll(t *testing.T) {
	t.Run("ReturnsRecordsInOrder", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/allUsers", r.URL.Path)
			httputil.RespondWithJSON(w, http.StatusOK, []map[string]interface{}{
				{"id": 1, "personalEmail": "a@example.com"},
				{"id": 2, "personalEmail": "b@example.com"},
			})
		}))
		defer server.Close()

		regs, err := apiclient.New(server.URL).ListAll(context.Background())
		require.NoError(t, err)
		require.Len(t, regs, 2)
		assert.Equal(t, "a@example.com", regs[0].PersonalEmail)
		assert.Equal(t, "b@example.com", regs[1].PersonalEmail)
	})

	t.Run("EmptyStore", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			httputil.RespondWithJSON(w, http.StatusOK, []registration.Registration{})
		}))
		defer server.Close()

		regs, err := apiclient.New(server.URL).ListAll(context.Background())
		require.NoError(t, err)
		assert.Empty(t, regs)
	})

	t.Run("ServerFailure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			httputil.RespondWithError(w, http.StatusInternalServerError, httputil.CodePersistenceFailed, "Failed to fetch users.")
		}))
		defer server.Close()

		_, err := apiclient.New(server.URL).ListAll(context.Background())
		assert.Error(t, err)
	})
}
