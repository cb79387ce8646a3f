package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/application"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/breedapi"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/config"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/domain/breed"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/imagesearch"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/internal/repository/memory"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/pkg/auth"
	"github.com/Kilat-Pet-Delivery/service-breed-catalog/pkg/domain"
)

type stubBreedSource struct {
	catalog    *breedapi.Catalog
	catalogErr error
	breeds     map[string]breed.Breed
	lookupErr  error
	pageSize   int
}

func (s *stubBreedSource) FetchCatalog(ctx context.Context, pageSize int) (*breedapi.Catalog, error) {
	s.pageSize = pageSize
	return s.catalog, s.catalogErr
}

func (s *stubBreedSource) Lookup(ctx context.Context, id string) (breed.Breed, error) {
	if s.lookupErr != nil {
		return breed.Breed{}, s.lookupErr
	}
	if strings.TrimSpace(id) == "" {
		return breed.Breed{}, domain.NewValidationError("missing breed ID")
	}
	b, ok := s.breeds[id]
	if !ok {
		return breed.Breed{}, domain.NewNotFoundError("Breed", id)
	}
	return b, nil
}

type stubSearcher struct {
	result *imagesearch.Result
	err    error
}

func (s *stubSearcher) Search(ctx context.Context, breedName string, page int) (*imagesearch.Result, error) {
	return s.result, s.err
}

type testServer struct {
	router   *gin.Engine
	jwt      *auth.JWTManager
	source   *stubBreedSource
	searcher *stubSearcher
}

func newTestServer(t *testing.T, failMode config.FailMode) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zap.NewNop()
	jwtManager, err := auth.NewJWTManager("handler-test-secret-0123456789abcd", time.Hour, 24*time.Hour)
	require.NoError(t, err)
	source := &stubBreedSource{
		catalog: &breedapi.Catalog{TotalPages: 1},
		breeds: map[string]breed.Breed{
			"akita": {ID: "akita", Name: "Akita", Description: "Loyal"},
		},
	}
	searcher := &stubSearcher{result: &imagesearch.Result{}}

	breedSvc := application.NewBreedService(source, failMode, log)
	favoriteSvc := application.NewFavoriteService(memory.NewFavoriteRepo(), source, nil, log)
	profileSvc := application.NewProfileService(memory.NewProfileRepo(), log)
	imageSvc := application.NewImageService(searcher, log)

	r := gin.New()
	root := r.Group("")
	NewBreedHandler(breedSvc).RegisterRoutes(root)
	NewImageHandler(imageSvc).RegisterRoutes(root)
	NewFavoriteHandler(favoriteSvc).RegisterRoutes(root, jwtManager)
	NewProfileHandler(profileSvc).RegisterRoutes(root, jwtManager)

	return &testServer{router: r, jwt: jwtManager, source: source, searcher: searcher}
}

func (s *testServer) token(t *testing.T, userID uuid.UUID, email string) string {
	t.Helper()
	tok, err := s.jwt.GenerateAccessToken(userID, email)
	require.NoError(t, err)
	return tok
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type messageBody struct {
	Message string `json:"message"`
}
