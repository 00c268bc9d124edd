package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/MicahParks/jwkset"
	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/segyhp/propmgmt/internal/logging"
)

const (
	DefaultKeyTTL = time.Hour

	// unknown key ids trigger at most one refetch per interval
	defaultUnknownKIDInterval = time.Minute

	fetchTimeout     = 10 * time.Second
	rateLimitWaitMax = 5 * time.Second
)

// KeyStore shares a raw JWKS document between instances
type KeyStore interface {
	// Get returns the stored document, or nil when there is none
	Get(ctx context.Context) ([]byte, error)
	Set(ctx context.Context, document []byte, ttl time.Duration) error
}

// KeySet holds the signing keys published at a JWKS URL. Keys are refetched
// every TTL in the background and on demand when an unknown key id shows up.
type KeySet struct {
	keys keyfunc.Keyfunc
}

type keySetOptions struct {
	client             *http.Client
	store              KeyStore
	unknownKIDInterval time.Duration
	logger             *slog.Logger
}

type KeySetOption func(*keySetOptions)

func WithHTTPClient(client *http.Client) KeySetOption {
	return func(o *keySetOptions) { o.client = client }
}

// WithStore shares fetched documents through store
func WithStore(store KeyStore) KeySetOption {
	return func(o *keySetOptions) { o.store = store }
}

// WithUnknownKIDInterval sets the minimum time between refetches caused by
// unknown key ids
func WithUnknownKIDInterval(interval time.Duration) KeySetOption {
	return func(o *keySetOptions) { o.unknownKIDInterval = interval }
}

func WithLogger(logger *slog.Logger) KeySetOption {
	return func(o *keySetOptions) { o.logger = logger }
}

// NewKeySet fetches the key set at url and keeps it fresh until ctx ends.
// A failing first fetch is logged, not returned; keys are retried on use.
func NewKeySet(ctx context.Context, url string, ttl time.Duration, opts ...KeySetOption) (*KeySet, error) {
	if ttl <= 0 {
		ttl = DefaultKeyTTL
	}
	o := &keySetOptions{
		client:             &http.Client{Timeout: fetchTimeout},
		unknownKIDInterval: defaultUnknownKIDInterval,
		logger:             slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	logger := o.logger.With(logging.FieldComponent, "jwks")

	local := &sharedStorage{
		MemoryJWKSet: jwkset.NewMemoryStorage(),
		store:        o.store,
		ttl:          ttl,
		logger:       logger,
	}

	remote, err := jwkset.NewStorageFromHTTP(url, jwkset.HTTPClientStorageOptions{
		Client:                    o.client,
		Ctx:                       ctx,
		HTTPTimeout:               fetchTimeout,
		NoErrorReturnFirstHTTPReq: true,
		RefreshInterval:           ttl,
		Storage:                   local,
		RefreshErrorHandler: func(ctx context.Context, err error) {
			logger.ErrorContext(ctx, "refresh signing keys failed",
				slog.String("url", url),
				slog.Any(logging.FieldError, err),
			)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create JWKS storage: %w", err)
	}

	client, err := jwkset.NewHTTPClient(jwkset.HTTPClientOptions{
		HTTPURLs:          map[string]jwkset.Storage{url: remote},
		RateLimitWaitMax:  rateLimitWaitMax,
		RefreshUnknownKID: rate.NewLimiter(rate.Every(o.unknownKIDInterval), 1),
	})
	if err != nil {
		return nil, fmt.Errorf("create JWKS client: %w", err)
	}

	keys, err := keyfunc.New(keyfunc.Options{Ctx: ctx, Storage: client})
	if err != nil {
		return nil, fmt.Errorf("create keyfunc: %w", err)
	}
	return &KeySet{keys: keys}, nil
}

// Keyfunc resolves the verification key of a token by its kid header
func (k *KeySet) Keyfunc(ctx context.Context) jwt.Keyfunc {
	return k.keys.KeyfuncCtx(ctx)
}

// sharedStorage mirrors every fetched key set to a KeyStore. An unknown kid
// is looked up in the stored set before the caller refetches.
type sharedStorage struct {
	*jwkset.MemoryJWKSet
	store  KeyStore
	ttl    time.Duration
	logger *slog.Logger

	mu     sync.Mutex
	loaded []byte
}

func (s *sharedStorage) KeyReplaceAll(ctx context.Context, given []jwkset.JWK) error {
	if err := s.MemoryJWKSet.KeyReplaceAll(ctx, given); err != nil {
		return err
	}
	if s.store == nil {
		return nil
	}

	set := jwkset.JWKSMarshal{Keys: make([]jwkset.JWKMarshal, 0, len(given))}
	for _, jwk := range given {
		set.Keys = append(set.Keys, jwk.Marshal())
	}
	document, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("encode JWKS: %w", err)
	}

	s.mu.Lock()
	s.loaded = document
	s.mu.Unlock()

	// the local copy is already usable
	if err := s.store.Set(ctx, document, s.ttl); err != nil {
		s.logger.WarnContext(ctx, "share signing keys failed", slog.Any(logging.FieldError, err))
	}
	return nil
}

func (s *sharedStorage) KeyRead(ctx context.Context, keyID string) (jwkset.JWK, error) {
	jwk, err := s.MemoryJWKSet.KeyRead(ctx, keyID)
	if !errors.Is(err, jwkset.ErrKeyNotFound) || s.store == nil {
		return jwk, err
	}

	if loaded, loadErr := s.loadShared(ctx); loadErr != nil {
		s.logger.WarnContext(ctx, "load shared signing keys failed", slog.Any(logging.FieldError, loadErr))
	} else if loaded {
		return s.MemoryJWKSet.KeyRead(ctx, keyID)
	}
	return jwk, err
}

// loadShared replaces the local keys with the stored document when it
// differs from the last one seen
func (s *sharedStorage) loadShared(ctx context.Context) (bool, error) {
	document, err := s.store.Get(ctx)
	if err != nil || document == nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if bytes.Equal(document, s.loaded) {
		return false, nil
	}

	var set jwkset.JWKSMarshal
	if err := json.Unmarshal(document, &set); err != nil {
		return false, fmt.Errorf("decode JWKS: %w", err)
	}
	keys, err := set.JWKSlice()
	if err != nil {
		return false, err
	}
	if err := s.MemoryJWKSet.KeyReplaceAll(ctx, keys); err != nil {
		return false, err
	}
	s.loaded = document
	return true, nil
}

// RedisKeyStore keeps the JWKS document under one redis key
type RedisKeyStore struct {
	client *redis.Client
	key    string
}

func NewRedisKeyStore(client *redis.Client, key string) *RedisKeyStore {
	return &RedisKeyStore{client: client, key: key}
}

func (s *RedisKeyStore) Get(ctx context.Context) ([]byte, error) {
	document, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return document, err
}

func (s *RedisKeyStore) Set(ctx context.Context, document []byte, ttl time.Duration) error {
	return s.client.Set(ctx, s.key, document, ttl).Err()
}
