package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/config"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/imagesearch"
)

func TestSearchImages_Success(t *testing.T) {
	s := newTestServer(t, config.FailOpen)
	s.searcher.result = &imagesearch.Result{Items: []imagesearch.Item{{Link: "https://img/1.jpg", Title: "Akita"}}}

	w := s.do(t, http.MethodGet, "/api/v1/search-images?breed=Akita&page=2", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[{"link":"https://img/1.jpg","title":"Akita"}]}`, w.Body.String())
}

func TestSearchImages_Errors(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"missing breed", "", nil, http.StatusBadRequest, "breed parameter is required"},
		{"bad page", "breed=Akita&page=zero", nil, http.StatusBadRequest, "page must be a positive integer"},
		{"not configured", "breed=Akita", imagesearch.ErrNotConfigured, http.StatusInternalServerError, "image search configuration missing"},
		{"invalid response", "breed=Akita", imagesearch.ErrInvalidResponse, http.StatusInternalServerError, "invalid response from image search api"},
		{"upstream status", "breed=Akita", &imagesearch.StatusError{StatusCode: http.StatusTooManyRequests, Message: "quota exceeded"}, http.StatusTooManyRequests, "quota exceeded"},
		{"upstream status without message", "breed=Akita", &imagesearch.StatusError{StatusCode: http.StatusBadGateway}, http.StatusBadGateway, "Bad Gateway"},
		{"transport", "breed=Akita", fmt.Errorf("image search: do request: %w", assert.AnError), http.StatusInternalServerError, "failed to fetch images"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, config.FailOpen)
			s.searcher.err = tt.err

			w := s.do(t, http.MethodGet, "/api/v1/search-images?"+tt.query, "", nil)

			require.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantMsg, decode[messageBody](t, w).Message)
		})
	}
}
