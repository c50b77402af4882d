package main

import (
	"context"

	"github.com/turtacn/Jyotish-Intelligence/internal/infrastructure/database/redis"
)

// redisHealthAdapter exposes the cache connection to the readiness probe.
type redisHealthAdapter struct {
	client *redis.Client
}

func (a *redisHealthAdapter) Name() string {
	return "redis"
}

func (a *redisHealthAdapter) Check(ctx context.Context) error {
	return a.client.Ping(ctx)
}

//Personal.AI order the ending
