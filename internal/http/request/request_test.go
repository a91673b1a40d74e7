package request

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aanand-mishra/campus-api/internal/types"
	"github.com/aanand-mishra/campus-api/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldErrors(t *testing.T, err error) validation.Errors {
	t.Helper()
	require.Error(t, err)
	errs, ok := err.(validation.Errors)
	require.True(t, ok, "got %T", err)
	return errs
}

func TestDecodeJSON(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		var in types.UserInput
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"A","age":3}`))
		require.NoError(t, DecodeJSON(r, &in))
		assert.Equal(t, "A", *in.Name)
		assert.Equal(t, 3, *in.Age)
		assert.Nil(t, in.Email)
	})

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"empty", "", "body"},
		{"whitespace", "  \n", "body"},
		{"malformed", `{"name":`, "body"},
		{"not an object", `[1,2]`, "body"},
		{"string age", `{"age":"10"}`, "age"},
		{"fractional age", `{"age":1.5}`, "age"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in types.UserInput
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			errs := fieldErrors(t, DecodeJSON(r, &in))
			require.Len(t, errs, 1)
			assert.Equal(t, tt.field, errs[0].Field)
		})
	}

	t.Run("too large", func(t *testing.T) {
		var in types.UserInput
		body := `{"name":"` + strings.Repeat("a", MaxBodyBytes) + `"}`
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		errs := fieldErrors(t, DecodeJSON(r, &in))
		assert.Equal(t, "body", errs[0].Field)
	})
}

func TestDecodePatch(t *testing.T) {
	t.Run("records supplied keys and nulls", func(t *testing.T) {
		var patch types.ProjectPatch
		r := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"name":"N","description":null}`))
		require.NoError(t, DecodePatch(r, &patch, &patch.Fields))

		assert.Equal(t, "N", *patch.Name)
		assert.False(t, patch.IsNull("name"))
		assert.True(t, patch.IsNull("description"))
		assert.Nil(t, patch.OwnerID)
		assert.Equal(t, []string{"description"}, patch.Nulls())
	})

	t.Run("case variants are ignored", func(t *testing.T) {
		var patch types.ProjectPatch
		body := `{"Description":"changed","Name":"Renamed","OWNER_ID":"x"}`
		r := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(body))
		require.NoError(t, DecodePatch(r, &patch, &patch.Fields))

		assert.Nil(t, patch.Name)
		assert.Nil(t, patch.Description)
		assert.Nil(t, patch.OwnerID)
		assert.Empty(t, patch.Nulls())
	})

	t.Run("a case variant cannot override the exact key", func(t *testing.T) {
		var patch types.UserPatch
		r := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"name":"a","NAME":null}`))
		require.NoError(t, DecodePatch(r, &patch, &patch.Fields))

		require.NotNil(t, patch.Name)
		assert.Equal(t, "a", *patch.Name)
		assert.False(t, patch.IsNull("name"))
		assert.Empty(t, patch.Nulls())
	})

	t.Run("type mismatch names the field", func(t *testing.T) {
		var patch types.UserPatch
		r := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"age":"10"}`))
		errs := fieldErrors(t, DecodePatch(r, &patch, &patch.Fields))
		require.Len(t, errs, 1)
		assert.Equal(t, "age", errs[0].Field)
	})
}

func TestPathID(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/users/42", nil)
	r.SetPathValue("id", "42")
	id, err := PathID(r)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	r.SetPathValue("id", "4x")
	_, err = PathID(r)
	errs := fieldErrors(t, err)
	assert.Equal(t, "id", errs[0].Field)
}

func TestPage(t *testing.T) {
	tests := []struct {
		query  string
		limit  int
		offset int
		bad    []string
	}{
		{query: "", limit: DefaultLimit},
		{query: "limit=5&offset=10", limit: 5, offset: 10},
		{query: "limit=1000", limit: 1000},
		{query: "limit=0", bad: []string{"limit"}},
		{query: "limit=1001", bad: []string{"limit"}},
		{query: "offset=-3", bad: []string{"offset"}},
		{query: "limit=a&offset=b", bad: []string{"limit", "offset"}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			limit, offset, err := Page(r)
			if tt.bad == nil {
				require.NoError(t, err)
				assert.Equal(t, tt.limit, limit)
				assert.Equal(t, tt.offset, offset)
				return
			}
			errs := fieldErrors(t, err)
			var fields []string
			for _, fe := range errs {
				fields = append(fields, fe.Field)
			}
			assert.Equal(t, tt.bad, fields)
		})
	}
}
