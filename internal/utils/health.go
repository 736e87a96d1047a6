package utils

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Services  []Service `json:"services"`
}

type Service struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Probe is a named dependency check.
type Probe struct {
	Name string
	Ping func(ctx context.Context) error
}

func DBProbe(db *gorm.DB) Probe {
	return Probe{
		Name: "PostgreSQL",
		Ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
}

func RedisProbe(client *redis.Client) Probe {
	return Probe{
		Name: "Redis",
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
	}
}

type HealthChecker struct {
	Probes  []Probe
	Timeout time.Duration
}

func (h *HealthChecker) Check(ctx context.Context) HealthStatus {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}

	services := make([]Service, 0, len(h.Probes))
	overallStatus := "healthy"

	for _, p := range h.Probes {
		service := Service{Name: p.Name}
		pctx, cancel := context.WithTimeout(ctx, timeout)
		if err := p.Ping(pctx); err != nil {
			service.Status = "down"
			service.Message = err.Error()
			overallStatus = "degraded"
		} else {
			service.Status = "up"
		}
		cancel()
		services = append(services, service)
	}

	return HealthStatus{
		Status:    overallStatus,
		Timestamp: time.Now().UTC(),
		Services:  services,
	}
}
