// Package container builds the application graph from configuration.
// Router modules read their dependencies from a *Container.
package container

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-auth-portal/config"
	"github.com/oksasatya/go-auth-portal/internal/application"
	repo "github.com/oksasatya/go-auth-portal/internal/domain/repository"
	"github.com/oksasatya/go-auth-portal/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-auth-portal/internal/infrastructure/postgres"
	"github.com/oksasatya/go-auth-portal/internal/infrastructure/search"
	storageinfra "github.com/oksasatya/go-auth-portal/internal/infrastructure/storage"
	"github.com/oksasatya/go-auth-portal/pkg/helpers"
	"github.com/oksasatya/go-auth-portal/pkg/mailer"
	tpl "github.com/oksasatya/go-auth-portal/pkg/mailer/templates"
)

type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	// Redis is nil when REDIS_ADDR is empty; rate limiting is then disabled.
	Redis   *redis.Client
	JWT     *helpers.JWTManager
	Cookies *helpers.Manager

	Auth    *application.AuthService
	News    *application.NewsService
	Catalog *application.CatalogService

	// LocalUploads is true when uploads are written to UploadDir and must be served by the app.
	LocalUploads bool

	closers []func()
}

type stores struct {
	accounts repo.AccountRepository
	news     repo.NewsRepository
	services repo.ServiceRepository
}

// Build connects every backing service named by cfg and wires the use cases.
// On error, anything already opened is closed.
func Build(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (c *Container, err error) {
	c = &Container{Config: cfg, Logger: logger}
	defer func() {
		if err != nil {
			c.Close()
			c = nil
		}
	}()

	st, err := c.openStores(ctx)
	if err != nil {
		return c, err
	}

	c.Redis = helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if c.Redis != nil {
		rdb := c.Redis
		c.closers = append(c.closers, func() { _ = rdb.Close() })
		if perr := helpers.PingRedis(ctx, rdb); perr != nil {
			logger.WithError(perr).Warn("redis unreachable; rate limits fail open")
		}
	}

	c.JWT = helpers.NewJWTManager(helpers.JWTConfig{
		AccessSecret:  cfg.JWTAccessSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
		AccessTTL:     cfg.AccessTTL,
		RefreshTTL:    cfg.RefreshTTL,
		Issuer:        cfg.AppName,
	})
	c.Cookies = helpers.NewCookie(helpers.CookieConfig{
		Domain:     cfg.CookieDomain,
		Secure:     cfg.CookieSecure,
		AccessTTL:  cfg.AccessTTL,
		RefreshTTL: cfg.RefreshTTL,
	})

	notifier, err := c.openNotifier()
	if err != nil {
		return c, err
	}
	indexer, err := c.openIndexer(ctx)
	if err != nil {
		return c, err
	}
	uploads, err := c.openUploads(ctx)
	if err != nil {
		return c, err
	}

	c.Auth = application.NewAuthService(
		st.accounts,
		helpers.NewPasswordHasher(cfg.BcryptCost),
		c.JWT,
		helpers.NewCodeGenerator(cfg.VerificationTTL, cfg.ResetTTL),
		notifier,
		indexer,
		logger,
		application.AuthConfig{
			ResetPasswordURL:    cfg.ResetPasswordURL,
			ConcealUnknownEmail: cfg.ConcealUnknownEmail,
		},
	)
	c.News = application.NewNewsService(st.news, uploads, logger)
	c.Catalog = application.NewCatalogService(st.services)
	return c, nil
}

func (c *Container) openStores(ctx context.Context) (stores, error) {
	cfg := c.Config
	switch cfg.StoreDriver {
	case "memory":
		c.Logger.Warn("using in-memory store; data is lost on restart")
		return stores{
			accounts: memory.NewAccountRepository(),
			news:     memory.NewNewsRepository(),
			services: memory.NewServiceRepository(),
		}, nil
	case "postgres", "":
		pool, err := pginfra.NewPool(ctx, pginfra.PoolConfig{
			DSN:             cfg.PostgresDSN(),
			MaxConns:        cfg.DBMaxConns,
			MinConns:        cfg.DBMinConns,
			MaxConnLifetime: cfg.DBMaxConnLife,
			ApplicationName: cfg.AppName,
		})
		if err != nil {
			return stores{}, fmt.Errorf("connect postgres: %w", err)
		}
		c.closers = append(c.closers, pool.Close)
		return postgresStores(pool), nil
	default:
		return stores{}, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

func postgresStores(pool *pgxpool.Pool) stores {
	return stores{
		accounts: pginfra.NewAccountRepository(pool),
		news:     pginfra.NewNewsRepository(pool),
		services: pginfra.NewServiceRepository(pool),
	}
}

func (c *Container) branding() tpl.Branding {
	cfg := c.Config
	return tpl.Branding{
		AppName:        cfg.AppName,
		CompanyName:    cfg.CompanyName,
		CompanyAddress: cfg.CompanyAddress,
		LogoURL:        cfg.LogoURL,
		SupportURL:     cfg.SupportURL,
		LoginURL:       cfg.LoginURL,
	}
}

func (c *Container) openNotifier() (application.Notifier, error) {
	cfg := c.Config
	if !cfg.MailSendEnabled {
		return mailer.NewLogNotifier(c.Logger, c.branding()), nil
	}
	switch cfg.MailDelivery {
	case "queue":
		pub, err := mailer.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			return nil, fmt.Errorf("connect rabbitmq: %w", err)
		}
		c.closers = append(c.closers, pub.Close)
		return mailer.NewQueueNotifier(pub, c.branding()), nil
	case "direct":
		mg, err := mailer.NewMailgun(mailgunConfig(cfg))
		if err != nil {
			return nil, fmt.Errorf("MAIL_DELIVERY=direct: %w", err)
		}
		return mailer.NewDirectNotifier(mg, c.branding()), nil
	case "log", "":
		return mailer.NewLogNotifier(c.Logger, c.branding()), nil
	default:
		return nil, fmt.Errorf("unknown MAIL_DELIVERY %q", cfg.MailDelivery)
	}
}

func mailgunConfig(cfg *config.Config) mailer.MailgunConfig {
	return mailer.MailgunConfig{
		Domain:  cfg.MailgunDomain,
		APIKey:  cfg.MailgunAPIKey,
		Sender:  cfg.MailgunSender,
		APIBase: cfg.MailgunAPIBase,
	}
}

// openIndexer returns a nil interface when Elasticsearch is not configured.
func (c *Container) openIndexer(ctx context.Context) (application.AccountIndexer, error) {
	cfg := c.Config
	es, err := search.NewClient(search.ClientConfig{
		Addresses: cfg.ESAddrs(),
		Username:  cfg.ElasticsearchUser,
		Password:  cfg.ElasticsearchPass,
	})
	if err != nil {
		return nil, fmt.Errorf("init elasticsearch: %w", err)
	}
	if es == nil {
		return nil, nil
	}
	x := search.NewAccountIndexer(es, cfg.ESAccountsIndex)
	if err := x.EnsureIndex(ctx); err != nil {
		c.Logger.WithError(err).Warn("elasticsearch index setup failed; indexing stays best-effort")
	}
	return x, nil
}

func (c *Container) openUploads(ctx context.Context) (application.UploadSink, error) {
	cfg := c.Config
	if cfg.GCSBucket == "" {
		c.LocalUploads = true
		return storageinfra.NewLocalSink(cfg.UploadDir, cfg.UploadPublicPath), nil
	}
	client, err := storageinfra.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
	if err != nil {
		return nil, fmt.Errorf("init gcs: %w", err)
	}
	c.closers = append(c.closers, func() { _ = client.Close() })
	return storageinfra.NewGCSSink(client, cfg.GCSBucket), nil
}

// Close releases connections in reverse order of opening.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
