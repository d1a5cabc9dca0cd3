package get_tenant_config

import (
	"context"

	"github.com/m04kA/SMC-SalonService/internal/service/tenantconfig/models"
)

type ConfigService interface {
	Get(ctx context.Context, tenantID int64) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
