package render

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/eolymp/go-texmath"
	"github.com/eolymp/go-texmath/internal/config"
	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/sha3"
)

const keyPrefix = "texmath:"

// Request is a single expression to convert along with the options a client may change.
type Request struct {
	Source       string            `json:"source"`
	DisplayMode  bool              `json:"display_mode"`
	Annotate     bool              `json:"annotate"`
	Leqno        bool              `json:"leqno"`
	ThrowOnError bool              `json:"throw_on_error"`
	Wrap         string            `json:"wrap,omitempty"`
	Macros       map[string]string `json:"macros,omitempty"`
}

type Result struct {
	MathML string `json:"mathml"`
	Cached bool   `json:"cached"`
}

// Service converts expressions and memoizes the markup, first in process memory and then
// in redis when a client is configured.
type Service struct {
	base   texmath.Options
	ttl    time.Duration
	memory *cache.Cache
	redis  *redis.Client
	log    *zap.Logger
}

// New creates the service, rdb may be nil.
func New(base texmath.Options, ttl time.Duration, rdb *redis.Client, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}

	return &Service{
		base:   base,
		ttl:    ttl,
		memory: cache.New(ttl, 2*ttl),
		redis:  rdb,
		log:    log,
	}
}

// Options builds conversion defaults of the service from configuration.
func Options(cfg config.TexMathConfig, log *zap.Logger) texmath.Options {
	opts := texmath.Options{
		MaxExpand: cfg.MaxExpand,
		Strict:    texmath.StrictMode(cfg.Strict),
		Wrap:      texmath.WrapMode(cfg.Wrap),
		Logger:    log,
	}

	if cfg.Trust {
		opts.Trust = texmath.TrustAll
	}

	return opts
}

// NewRedisClient connects to redis, url may also be a plain host:port address.
func NewRedisClient(ctx context.Context, url string, log *zap.Logger) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Warn("failed to parse redis url, using it as address", zap.Error(err))
		opt = &redis.Options{Addr: url}
	}

	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Warn("failed to connect to redis", zap.Error(err))
	}

	return rdb
}

// Key identifies a request in caches
func Key(req Request) string {
	data, _ := json.Marshal(req) // map keys are sorted by encoding/json
	sum := sha3.Sum256(data)
	return keyPrefix + hex.EncodeToString(sum[:])
}

func (s *Service) Convert(ctx context.Context, req Request) (*Result, error) {
	key := Key(req)

	if markup, ok := s.memory.Get(key); ok {
		return &Result{MathML: markup.(string), Cached: true}, nil
	}

	if s.redis != nil {
		markup, err := s.redis.Get(ctx, key).Result()
		switch {
		case err == nil:
			s.memory.Set(key, markup, cache.DefaultExpiration)
			return &Result{MathML: markup, Cached: true}, nil
		case !errors.Is(err, redis.Nil):
			s.log.Warn("redis lookup failed", zap.String("key", key), zap.Error(err))
		}
	}

	markup, err := texmath.ConvertToString(req.Source, s.options(req))
	if err != nil {
		return nil, fmt.Errorf("unable to convert expression: %w", err)
	}

	s.memory.Set(key, markup, cache.DefaultExpiration)

	if s.redis != nil {
		if err := s.redis.Set(ctx, key, markup, s.ttl).Err(); err != nil {
			s.log.Warn("redis store failed", zap.String("key", key), zap.Error(err))
		}
	}

	return &Result{MathML: markup}, nil
}

// options merges the request into the service defaults, every request gets its own macro table
func (s *Service) options(req Request) texmath.Options {
	opts := s.base
	opts.DisplayMode = req.DisplayMode
	opts.Annotate = req.Annotate
	opts.Leqno = req.Leqno
	opts.ThrowOnError = req.ThrowOnError

	if req.Wrap != "" {
		opts.Wrap = texmath.WrapMode(req.Wrap)
	}

	opts.Macros = texmath.Macros{}
	for name, body := range req.Macros {
		opts.Macros[name] = texmath.MacroText(body)
	}

	return opts
}

// Flush drops the in-process cache
func (s *Service) Flush() {
	s.memory.Flush()
}
