package db

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

const healthPingTimeout = 5 * time.Second

// PoolStatus is the connection-pool section of the /health/db payload.
type PoolStatus struct {
	Open        int32  `json:"open"`
	Idle        int32  `json:"idle"`
	InUse       int32  `json:"in_use"`
	Max         int32  `json:"max"`
	WaitCount   int64  `json:"wait_count"`
	WaitTime    string `json:"wait_time"`
	Utilization string `json:"utilization"`
}

// Saturated reports whether every pooled connection is checked out.
func (p PoolStatus) Saturated() bool {
	return p.Max > 0 && p.InUse >= p.Max
}

func utilizationPercent(inUse, max int32) string {
	if max <= 0 {
		return "0%"
	}
	return fmt.Sprintf("%d%%", int(float64(inUse)/float64(max)*100))
}

func poolStatus(pool *pgxpool.Pool) PoolStatus {
	stat := pool.Stat()
	return PoolStatus{
		Open:        stat.TotalConns(),
		Idle:        stat.IdleConns(),
		InUse:       stat.AcquiredConns(),
		Max:         stat.MaxConns(),
		WaitCount:   stat.EmptyAcquireCount(),
		WaitTime:    stat.AcquireDuration().String(),
		Utilization: utilizationPercent(stat.AcquiredConns(), stat.MaxConns()),
	}
}

// HealthHandler serves /health/db. A failed ping answers 503 so load
// balancers pull the instance; the pool snapshot goes out either way.
func HealthHandler(pool *pgxpool.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthPingTimeout)
		defer cancel()

		if err := pool.Ping(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
				"database": "down",
				"error":    err.Error(),
				"pool":     poolStatus(pool),
			})
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"database": "up",
			"pool":     poolStatus(pool),
		})
	}
}
