package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"tourbook/internal/application/permission/usecases"
	"tourbook/internal/domain/permission"
	"tourbook/internal/infrastructure/auth"
	"tourbook/internal/infrastructure/config"
	infraPermission "tourbook/internal/infrastructure/permission"
	"tourbook/internal/infrastructure/pubsub"
	"tourbook/internal/infrastructure/ratelimit"
	"tourbook/internal/interfaces/http/handlers"
	"tourbook/internal/interfaces/http/middleware"
	"tourbook/internal/shared/goroutine"
	"tourbook/internal/shared/logger"
)

// Container wires repositories, use cases, handlers and the optional
// casbin and redis components, and owns their background work.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client // nil when redis is disabled

	repos             *repositories
	ucs               *allUseCases
	permissionHandler *handlers.PermissionHandler

	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	writeRateLimit       *middleware.WriteRateLimit

	enforcer   *infraPermission.Enforcer
	policySync *infraPermission.PolicySync
	grantBus   *pubsub.RedisGrantEventBus

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewContainer(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
		redis:  redisClient,
		repos:  newRepositories(db),
	}

	var syncer usecases.PolicySyncer
	var enforcer permission.PolicyEnforcer
	if cfg.Permission.CasbinEnabled {
		e, err := infraPermission.NewEnforcer(db, log.Named("casbin"))
		if err != nil {
			return nil, fmt.Errorf("failed to create policy enforcer: %w", err)
		}
		c.enforcer = e
		c.policySync = infraPermission.NewPolicySync(c.repos.roleRepo, c.repos.permissionRepo, c.repos.grantRepo, e, log.Named("policy-sync"))
		syncer = c.policySync
		enforcer = e
	}

	var publisher permission.GrantEventPublisher
	if redisClient != nil {
		c.grantBus = pubsub.NewRedisGrantEventBus(redisClient, cfg.Permission.GrantsChannel, log.Named("grant-bus"))
		publisher = c.grantBus

		limit := cfg.Permission.WriteLimit
		c.writeRateLimit = middleware.NewWriteRateLimit(
			ratelimit.NewRedisRateLimiter(redisClient),
			ratelimit.RateLimitConfig{RequestsPerMinute: limit.RequestsPerMinute, RequestsPerHour: limit.RequestsPerHour},
			log,
		)
	}

	c.ucs = newUseCases(c.repos, syncer, publisher, log)
	c.permissionHandler = handlers.NewPermissionHandler(
		c.ucs.getMatrix, c.ucs.update, c.ucs.copy, c.ucs.toggle, c.ucs.createRole, log,
	)

	jwtSvc := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer, time.Duration(cfg.Auth.JWT.AccessTTLMinutes)*time.Minute)
	c.authMiddleware = middleware.NewAuthMiddleware(jwtSvc, log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(enforcer, log)

	c.setupRoutes()
	return c, nil
}

func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Start mirrors every role's grants into the enforcer and, with redis,
// reloads policies whenever another instance announces a grant change.
func (c *Container) Start(ctx context.Context) error {
	if c.policySync != nil {
		if err := c.policySync.SyncAll(ctx); err != nil {
			return fmt.Errorf("failed to sync policies: %w", err)
		}
	}

	if c.grantBus == nil || c.enforcer == nil {
		return nil
	}

	subCtx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	goroutine.Tracked(&c.wg, c.log, "grants-subscriber", func() {
		err := c.grantBus.SubscribeGrantsChanged(subCtx, func(event permission.GrantsChangedEvent) {
			if err := c.enforcer.LoadPolicy(); err != nil {
				c.log.Errorw("failed to reload policies", "role_ids", event.RoleIDs, "error", err)
				return
			}
			c.log.Infow("policies reloaded after remote grant change", "role_ids", event.RoleIDs, "changed_by", event.ChangedBy)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			c.log.Errorw("grants subscriber stopped", "error", err)
		}
	})

	return nil
}

// Shutdown stops background work started by Start.
func (c *Container) Shutdown() {
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()
}

func (c *Container) healthCheck(ctx *gin.Context) {
	status := http.StatusOK
	body := gin.H{"status": "ok"}

	if sqlDB, err := c.db.DB(); err != nil || sqlDB.PingContext(ctx.Request.Context()) != nil {
		status = http.StatusServiceUnavailable
		body["status"] = "degraded"
		body["database"] = "unreachable"
	}
	if c.redis != nil {
		if err := c.redis.Ping(ctx.Request.Context()).Err(); err != nil {
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
			body["redis"] = "unreachable"
		}
	}

	ctx.JSON(status, body)
}
