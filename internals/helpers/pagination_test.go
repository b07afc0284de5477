package helper

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sirumah_backend/internals/helpers/apperror"
)

func TestNewPaging(t *testing.T) {
	p := NewPaging(0, 0, 15, 100)
	assert.Equal(t, Paging{Page: 1, PerPage: 15, Offset: 0, Limit: 15}, p)

	p = NewPaging(3, 500, 15, 100)
	assert.Equal(t, 100, p.PerPage)
	assert.Equal(t, 200, p.Offset)
}

func TestBuildPageMeta(t *testing.T) {
	m := BuildPageMeta(0, NewPaging(1, 12, 12, 0), 0)
	assert.Equal(t, 1, m.LastPage)
	assert.Nil(t, m.From)

	m = BuildPageMeta(25, NewPaging(3, 12, 12, 0), 1)
	assert.Equal(t, 3, m.LastPage)
	require.NotNil(t, m.From)
	assert.Equal(t, 25, *m.From)
	assert.Equal(t, 25, *m.To)
}

func TestJsonFromError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{apperror.NewValidation("title", "wajib"), 422, "VALIDATION_ERROR"},
		{&apperror.AuthorizationError{Action: "update", Resource: "complaint", Fields: []string{"status"}}, 403, "FORBIDDEN"},
		{&apperror.NotFoundError{Resource: "house", ID: "x"}, 404, "NOT_FOUND"},
		{&apperror.ConflictError{Message: "dup"}, 409, "CONFLICT"},
		{io.ErrUnexpectedEOF, 500, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		app := fiber.New()
		app.Get("/", func(c *fiber.Ctx) error { return JsonFromError(c, nil, tc.err) })
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, tc.status, resp.StatusCode)

		var body ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.False(t, body.Success)
		assert.Equal(t, tc.code, body.ErrorCode)
		if tc.status == 403 {
			assert.Contains(t, body.Errors, "status")
		}
	}
}
