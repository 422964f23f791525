package config

import (
	"flexera-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "flexera"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "defaultPassword"),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                       utils.GetEnvString("APP_ENV", "development"),
			Port:                      utils.GetEnvString("APP_PORT", ":8080"),
			Version:                   utils.GetEnvString("APP_VERSION", "v1"),
			Timezone:                  utils.GetEnvString("APP_TIMEZONE", "Africa/Cairo"),
			EndpointPrefix:            utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:               utils.GetEnvInt("APP_MAX_REQUEST", 10),
			MaxTimeRequestsPerSeconds: utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 1),
			ShutdownTimeout:           utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			BookingEventsQueue:        utils.GetEnvString("APP_RABBITMQ_BOOKING_EVENTS_QUEUE", "booking-events"),
		},
		JWT: JWT{
			Secret: utils.GetEnvString("JWT_SECRET", "anyjwt"),
		},
		PaymentGateway: PaymentGateway{
			BaseUrl:       utils.GetEnvString("PAYMOB_API_URL", "https://accept.paymob.com/api"),
			ApiKey:        utils.GetEnvString("PAYMOB_API_KEY", ""),
			IntegrationID: utils.GetEnvString("PAYMOB_INTEGRATION_ID", ""),
			IframeBaseUrl: utils.GetEnvString("PAYMOB_IFRAME_URL", "https://accept.paymob.com/api/acceptance/iframes/"),
			IframeID:      utils.GetEnvString("PAYMOB_IFRAME_ID", ""),
			HmacSecret:    utils.GetEnvString("PAYMOB_HMAC_SECRET", ""),
			Currency:      utils.GetEnvString("PAYMOB_CURRENCY", "EGP"),
		},
		Booking: Booking{
			ReservationTTLMinutes: utils.GetEnvInt("BOOKING_RESERVATION_TTL_MINUTES", 15),
			SweepCronSpec:         utils.GetEnvString("BOOKING_SWEEP_CRON_SPEC", "@every 1m"),
		},
	}
}
