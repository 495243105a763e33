package form_test

import (
	"context"
	"errors"
	"testing"

	"registration-service/internal/apiclient"
	"registration-service/internal/form"
	"registration-service/internal/httputil"
	"registration-service/internal/registration"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const today = "2026-08-31"

type fakeSubmitter struct {
	calls  int
	lastIn registration.Input
	id     int64
	err    error
}

func (s *fakeSubmitter) SubmitForm(_ context.Context, input registration.Input) (int64, error) {
	s.calls++
	s.lastIn = input
	if s.err != nil {
		return 0, s.err
	}
	return s.id, nil
}

func fillValid(f *form.Form) {
	f.SetField("name", "John Doe")
	f.SetField("programme", "BTech")
	f.SetField("branch", "Computer Science")
	f.SetField("personalEmail", "john.doe@example.com")
	f.SetField("mobile", "9876543210")
	f.SetField("emergencyContactName", "Jane Doe")
	f.SetField("emergencyContactPhone", "9876543211")
	f.SetDeclaration(true)
}

func TestNew(t *testing.T) {
	f := form.New(today)
	assert.Equal(t, form.Editing, f.State)
	assert.Equal(t, today, f.Fields.Date)
	assert.Empty(t, f.Errors)
	assert.False(t, f.CanSubmit())
}

func TestSetField(t *testing.T) {
	t.Run("live fields recompute their error on every change", func(t *testing.T) {
		f := form.New(today)

		f.SetField("mobile", "98765")
		assert.Equal(t, "Enter a valid 10-digit mobile number.", f.Errors["mobile"])

		f.SetField("mobile", "9876543210")
		assert.NotContains(t, f.Errors, "mobile")
	})

	t.Run("only the changed field is recomputed", func(t *testing.T) {
		f := form.New(today)

		f.SetField("personalEmail", "not-an-email")
		f.SetField("mobile", "9876543210")

		// The email error survives untouched; no other field gained one.
		assert.Equal(t, "Enter a valid email address.", f.Errors["personalEmail"])
		assert.Len(t, f.Errors, 1)
	})

	t.Run("emergency phone cross-checks the current mobile", func(t *testing.T) {
		f := form.New(today)
		f.SetField("mobile", "9876543210")

		f.SetField("emergencyContactPhone", "9876543210")
		assert.Equal(t,
			"Emergency contact number should be different from your mobile number.",
			f.Errors["emergencyContactPhone"])

		f.SetField("emergencyContactPhone", "9876543211")
		assert.NotContains(t, f.Errors, "emergencyContactPhone")
	})

	t.Run("editing stays in Editing", func(t *testing.T) {
		f := form.New(today)
		f.SetField("name", "John")
		assert.Equal(t, form.Editing, f.State)
	})
}

func TestSubmit(t *testing.T) {
	t.Run("inert without declaration", func(t *testing.T) {
		client := &fakeSubmitter{id: 1}
		f := form.New(today)
		fillValid(f)
		f.SetDeclaration(false)

		f.Submit(context.Background(), client)

		assert.Zero(t, client.calls)
		assert.Equal(t, form.Editing, f.State)
	})

	t.Run("full-form validation failure makes no network call", func(t *testing.T) {
		client := &fakeSubmitter{id: 1}
		f := form.New(today)
		fillValid(f)
		f.SetField("branch", "")

		f.Submit(context.Background(), client)

		assert.Zero(t, client.calls)
		assert.Equal(t, form.SubmittedWithErrors, f.State)
		assert.Equal(t, "Department/Field is required.", f.Errors["branch"])
		// The filled-in form is kept.
		assert.Equal(t, "John Doe", f.Fields.Name)
	})

	t.Run("success clears the form", func(t *testing.T) {
		client := &fakeSubmitter{id: 42}
		f := form.New(today)
		fillValid(f)
		f.SetField("rollNumber", "123456")

		f.Submit(context.Background(), client)

		require.Equal(t, 1, client.calls)
		assert.Equal(t, "john.doe@example.com", client.lastIn.PersonalEmail)
		assert.Equal(t, form.SubmittedSuccess, f.State)
		assert.Empty(t, f.Fields.Name)
		assert.Empty(t, f.Fields.RollNumber)
		assert.False(t, f.Fields.Declaration)
		assert.Equal(t, today, f.Fields.Date)
		assert.Empty(t, f.Errors)
		assert.Contains(t, f.Notice, "successfully")
	})

	t.Run("duplicate email lands on the email field", func(t *testing.T) {
		client := &fakeSubmitter{err: &apiclient.SubmitError{
			StatusCode: 409,
			Code:       httputil.CodeDuplicateEmail,
			Message:    "Email is already registered.",
		}}
		f := form.New(today)
		fillValid(f)

		f.Submit(context.Background(), client)

		assert.Equal(t, form.SubmittedWithErrors, f.State)
		assert.Equal(t, "Email is already registered.", f.Errors["personalEmail"])
		// The filled-in form stays for correction.
		assert.Equal(t, "john.doe@example.com", f.Fields.PersonalEmail)
	})

	t.Run("server field errors are surfaced", func(t *testing.T) {
		client := &fakeSubmitter{err: &apiclient.SubmitError{
			StatusCode: 400,
			Code:       httputil.CodeValidationFailed,
			Message:    "Please fix the errors in the form.",
			Fields:     map[string]string{"programme": "Select a valid programme."},
		}}
		f := form.New(today)
		fillValid(f)

		f.Submit(context.Background(), client)

		assert.Equal(t, form.SubmittedWithErrors, f.State)
		assert.Equal(t, "Select a valid programme.", f.Errors["programme"])
	})

	t.Run("transport failure surfaces a generic notice", func(t *testing.T) {
		client := &fakeSubmitter{err: errors.New("dial tcp: connection refused")}
		f := form.New(today)
		fillValid(f)

		f.Submit(context.Background(), client)

		assert.Equal(t, form.SubmittedWithErrors, f.State)
		assert.Empty(t, f.Errors)
		assert.Equal(t, "Failed to submit the form. Please try again.", f.Notice)
	})

	t.Run("editing after a failed submit returns to Editing", func(t *testing.T) {
		client := &fakeSubmitter{err: errors.New("dial tcp: connection refused")}
		f := form.New(today)
		fillValid(f)
		f.Submit(context.Background(), client)
		require.Equal(t, form.SubmittedWithErrors, f.State)

		f.SetField("name", "Johnny Doe")
		assert.Equal(t, form.Editing, f.State)
	})
}
