package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name   string `json:"name" validate:"required"`
	Months int    `json:"months" validate:"gte=0,lte=24"`
}

type checkedRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (c checkedRequest) Validate() error {
	if c.To < c.From {
		return errors.New("to before from")
	}
	return nil
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"name":"Ada","months":3}`},
		{name: "empty body", body: ``, wantErr: true},
		{name: "malformed", body: `{"name":`, wantErr: true},
		{name: "unknown field", body: `{"name":"Ada","extra":1}`, wantErr: true},
		{name: "trailing data", body: `{"name":"Ada"}{"name":"Bob"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var got sampleRequest
			err := DecodeJSON(req, &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Ada", got.Name)
		})
	}

	t.Run("empty body sentinel", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		assert.ErrorIs(t, DecodeJSON(req, &sampleRequest{}), ErrEmptyBody)
	})
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(sampleRequest{Name: "Ada", Months: 3}))
	assert.Error(t, ValidateRequest(sampleRequest{Months: 3}))
	assert.Error(t, ValidateRequest(sampleRequest{Name: "Ada", Months: 30}))

	assert.NoError(t, ValidateRequest(checkedRequest{From: 1, To: 2}))
	assert.Error(t, ValidateRequest(checkedRequest{From: 2, To: 1}))
}
