package handler_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neighborly/forum/internal/handler"
)

// An update body without an images key leaves the list alone; an
// explicit null clears it, same as an empty list.
func TestUpdateAdvertisementRequest_ImageSemantics(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantRefs *[]string
	}{
		{
			name:     "absent key leaves images untouched",
			body:     `{"title":"bike"}`,
			wantRefs: nil,
		},
		{
			name:     "explicit null clears the list",
			body:     `{"title":"bike","images":null}`,
			wantRefs: &[]string{},
		},
		{
			name:     "empty list clears the list",
			body:     `{"images":[]}`,
			wantRefs: &[]string{},
		},
		{
			name:     "list replaces wholesale",
			body:     `{"images":["uploads/a.png","uploads/b.png"]}`,
			wantRefs: &[]string{"uploads/a.png", "uploads/b.png"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req handler.UpdateAdvertisementRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			got := req.Images.Refs()
			if tt.wantRefs == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.wantRefs, *got)
		})
	}
}
