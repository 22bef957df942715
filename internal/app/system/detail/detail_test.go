package detail_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gauravhaldar/sosign-admin/internal/app/system/backend"
	"github.com/gauravhaldar/sosign-admin/internal/app/system/detail"
	"github.com/stretchr/testify/assert"
)

type blog struct{ Title string }

func TestLoad(t *testing.T) {
	const fallback = "Failed to load blog"
	tests := []struct {
		name         string
		item         *blog
		err          error
		wantFound    bool
		wantNotFound bool
		wantErr      string
	}{
		{"found", &blog{Title: "x"}, nil, true, false, ""},
		{"empty payload", nil, nil, false, true, ""},
		{"404 is a failure", nil, &backend.APIError{StatusCode: 404, Message: "Blog not found"}, false, false, "Blog not found"},
		{"404 without message", nil, &backend.APIError{StatusCode: 404}, false, false, fallback},
		{"server error", nil, &backend.APIError{StatusCode: 500}, false, false, fallback},
		{"network", nil, errors.New("dial tcp"), false, false, fallback},
		{"message", nil, &backend.APIError{StatusCode: 400, Message: "Invalid id"}, false, false, "Invalid id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := detail.Load(context.Background(), func(context.Context) (*blog, error) { return tt.item, tt.err }, fallback)
			assert.Equal(t, tt.wantFound, res.Found())
			assert.Equal(t, tt.wantNotFound, res.NotFound)
			assert.Equal(t, tt.wantErr, res.Err)
		})
	}
}
