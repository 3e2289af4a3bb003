// Package catalog adapts the remote academic catalog, a read-only GraphQL
// endpoint, to the RemoteCatalog interface. Snapshot fetches are cached in
// Redis so repeated sync or passthrough calls within the TTL do not hit the
// remote again.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SR-Exam/scheduler-service/internal/models"
	"github.com/SR-Exam/scheduler-service/internal/repositories"
)

// Config holds the connection settings for the remote catalog.
type Config struct {
	Endpoint string
	Timeout  time.Duration
}

// Static query documents. The remote schema exposes camelCase query names
// with snake_case record fields.
const (
	queryAllUsers = `query { getAllUser { bn_number nim name major role initial } }`

	queryAllRooms = `query { getAllRoom { room_number room_capacity campus } }`

	queryAllSubjects = `query { getAllSubject { subject_code subject_name } }`

	queryAllEnrollments = `query { getAllEnrollment { class_code nim subject_code } }`

	queryPasswordByNIM = `query ($nim: String!) { getPasswordByNIM(nim: $nim) }`
)

type GraphQLCatalog struct {
	endpoint string
	client   *http.Client
	redis    *redis.Client

	cachePrefix string
	cacheTTL    time.Duration
}

func NewGraphQLCatalog(config Config, redisClient *redis.Client) repositories.RemoteCatalog {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &GraphQLCatalog{
		endpoint:    config.Endpoint,
		client:      &http.Client{Timeout: timeout},
		redis:       redisClient,
		cachePrefix: "catalog:",
		cacheTTL:    5 * time.Minute,
	}
}

// ===== WIRE TYPES =====

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// execute posts one query document and unmarshals the data payload into out.
// Every failure mode collapses into ErrSourceUnavailable; the engine never
// inspects remote error detail.
func (g *GraphQLCatalog) execute(ctx context.Context, query string, variables map[string]any, out interface{}) error {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("%w: encode request: %v", repositories.ErrSourceUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", repositories.ErrSourceUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", repositories.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", repositories.ErrSourceUnavailable, resp.StatusCode)
	}

	var parsed graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("%w: decode response: %v", repositories.ErrSourceUnavailable, err)
	}
	if len(parsed.Errors) > 0 {
		return fmt.Errorf("%w: %s", repositories.ErrSourceUnavailable, parsed.Errors[0].Message)
	}
	if parsed.Data == nil {
		return fmt.Errorf("%w: empty response", repositories.ErrSourceUnavailable)
	}

	if err := json.Unmarshal(parsed.Data, out); err != nil {
		return fmt.Errorf("%w: unmarshal data: %v", repositories.ErrSourceUnavailable, err)
	}

	return nil
}

// ===== CACHE HELPERS =====

func (g *GraphQLCatalog) getCacheKey(key string) string {
	return g.cachePrefix + key
}

func (g *GraphQLCatalog) getFromCache(ctx context.Context, key string, dest interface{}) bool {
	if g.redis == nil {
		return false
	}

	data, err := g.redis.Get(ctx, g.getCacheKey(key)).Result()
	if err != nil {
		return false
	}

	return json.Unmarshal([]byte(data), dest) == nil
}

func (g *GraphQLCatalog) setCache(ctx context.Context, key string, value interface{}) {
	if g.redis == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	g.redis.Set(ctx, g.getCacheKey(key), data, g.cacheTTL)
}

// ===== FETCH OPERATIONS =====

func (g *GraphQLCatalog) FetchUsers(ctx context.Context) ([]models.CatalogUser, error) {
	var cached []models.CatalogUser
	if g.getFromCache(ctx, "users", &cached) {
		return cached, nil
	}

	var data struct {
		GetAllUser []models.CatalogUser `json:"getAllUser"`
	}
	if err := g.execute(ctx, queryAllUsers, nil, &data); err != nil {
		return nil, err
	}

	g.setCache(ctx, "users", data.GetAllUser)
	return data.GetAllUser, nil
}

func (g *GraphQLCatalog) FetchRooms(ctx context.Context) ([]models.CatalogRoom, error) {
	var cached []models.CatalogRoom
	if g.getFromCache(ctx, "rooms", &cached) {
		return cached, nil
	}

	var data struct {
		GetAllRoom []models.CatalogRoom `json:"getAllRoom"`
	}
	if err := g.execute(ctx, queryAllRooms, nil, &data); err != nil {
		return nil, err
	}

	g.setCache(ctx, "rooms", data.GetAllRoom)
	return data.GetAllRoom, nil
}

func (g *GraphQLCatalog) FetchSubjects(ctx context.Context) ([]models.CatalogSubject, error) {
	var cached []models.CatalogSubject
	if g.getFromCache(ctx, "subjects", &cached) {
		return cached, nil
	}

	var data struct {
		GetAllSubject []models.CatalogSubject `json:"getAllSubject"`
	}
	if err := g.execute(ctx, queryAllSubjects, nil, &data); err != nil {
		return nil, err
	}

	g.setCache(ctx, "subjects", data.GetAllSubject)
	return data.GetAllSubject, nil
}

func (g *GraphQLCatalog) FetchEnrollments(ctx context.Context) ([]models.CatalogEnrollment, error) {
	var cached []models.CatalogEnrollment
	if g.getFromCache(ctx, "enrollments", &cached) {
		return cached, nil
	}

	var data struct {
		GetAllEnrollment []models.CatalogEnrollment `json:"getAllEnrollment"`
	}
	if err := g.execute(ctx, queryAllEnrollments, nil, &data); err != nil {
		return nil, err
	}

	g.setCache(ctx, "enrollments", data.GetAllEnrollment)
	return data.GetAllEnrollment, nil
}

// GetPasswordByNIM is a credential lookup and is deliberately never cached.
func (g *GraphQLCatalog) GetPasswordByNIM(ctx context.Context, nim string) (string, error) {
	var data struct {
		GetPasswordByNIM string `json:"getPasswordByNIM"`
	}
	err := g.execute(ctx, queryPasswordByNIM, map[string]any{"nim": nim}, &data)
	if err != nil {
		return "", err
	}
	return data.GetPasswordByNIM, nil
}

// IsUnavailable reports whether err came from the remote fetch channel.
func IsUnavailable(err error) bool {
	return errors.Is(err, repositories.ErrSourceUnavailable)
}
