package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"

	appconfig "github.com/wolfman30/rollerup-site/internal/config"
	"github.com/wolfman30/rollerup-site/internal/leadstore"
	"github.com/wolfman30/rollerup-site/internal/observability/metrics"
	"github.com/wolfman30/rollerup-site/pkg/logging"
)

// AWSConfigLoader builds the shared AWS SDK config. cmd/mainconfig provides it.
type AWSConfigLoader func(ctx context.Context, cfg *appconfig.Config) (aws.Config, error)

// StoreRuntime is the configured lead store plus whatever must be closed
// when the process exits.
type StoreRuntime struct {
	Store   *leadstore.Store
	Backend string
	closers []func()
}

// Close releases backend connections.
func (r *StoreRuntime) Close() {
	if r == nil {
		return
	}
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
	r.closers = nil
}

// BuildLeadStore selects the backend named by LEADS_STORE. Backends that need
// a remote service fail fast when it is unreachable or unconfigured.
func BuildLeadStore(ctx context.Context, cfg *appconfig.Config, loadAWS AWSConfigLoader, logger *logging.Logger, m *metrics.LeadMetrics) (*StoreRuntime, error) {
	if cfg == nil {
		return nil, errors.New("bootstrap: config is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	rt := &StoreRuntime{Backend: cfg.LeadsStore}
	var backend leadstore.Backend

	switch cfg.LeadsStore {
	case "", appconfig.StoreMemory:
		rt.Backend = appconfig.StoreMemory
		backend = leadstore.NewMemoryBackend()
		logger.Warn("lead store is in memory; saved leads are lost on restart")

	case appconfig.StoreFile:
		backend = leadstore.NewFileBackend(cfg.LeadsFileDir)

	case appconfig.StoreRedis:
		client := BuildRedisClient(ctx, cfg, logger, true)
		if client == nil {
			return nil, fmt.Errorf("bootstrap: redis store requires a reachable REDIS_ADDR (%q)", cfg.RedisAddr)
		}
		rt.closers = append(rt.closers, func() { _ = client.Close() })
		backend = leadstore.NewRedisBackend(client)

	case appconfig.StoreS3:
		if strings.TrimSpace(cfg.LeadsS3Bucket) == "" {
			return nil, errors.New("bootstrap: s3 store requires LEADS_S3_BUCKET")
		}
		if loadAWS == nil {
			return nil, errors.New("bootstrap: s3 store requires an AWS config loader")
		}
		awsCfg, err := loadAWS(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: load aws config: %w", err)
		}
		backend = leadstore.NewS3Backend(NewS3Client(awsCfg, cfg), cfg.LeadsS3Bucket, "leads/")

	case appconfig.StorePostgres:
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return nil, errors.New("bootstrap: postgres store requires DATABASE_URL")
		}
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: connect postgres: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("bootstrap: ping postgres: %w", err)
		}
		rt.closers = append(rt.closers, pool.Close)
		backend = leadstore.NewPostgresBackend(pool)

	default:
		return nil, fmt.Errorf("bootstrap: unknown LEADS_STORE %q", cfg.LeadsStore)
	}

	rt.Store = leadstore.New(backend, cfg.LeadsStoreKey, logger.Component("leadstore")).WithMetrics(m)
	logger.Info("lead store ready", "backend", rt.Backend, "key", rt.Store.Key())
	return rt, nil
}

// NewS3Client builds an S3 client, switching to path-style addressing when an
// endpoint override (LocalStack, MinIO) is configured.
func NewS3Client(awsCfg aws.Config, cfg *appconfig.Config) *s3.Client {
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg != nil && cfg.AWSEndpointOverride != "" {
			o.UsePathStyle = true
		}
	})
}
