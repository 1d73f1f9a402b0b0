package config

// EnvPrefix is intentionally empty; every field names its variable in full.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

// Canonical environment variable names, kept in one place for tests
// and deploy manifests.
const (
	EnvAppEnv         = "POS_APP_ENV"
	EnvAppPort        = "POS_APP_PORT"
	EnvLogLevel       = "POS_LOG_LEVEL"
	EnvBackendBaseURL = "POS_BACKEND_BASE_URL"
	EnvBackendTimeout = "POS_BACKEND_TIMEOUT"
	EnvSearchMinQuery = "POS_SEARCH_MIN_QUERY_LENGTH"
	EnvSearchPageSize = "POS_SEARCH_PAGE_SIZE"
	EnvCardEnabled    = "POS_CHECKOUT_CARD_ENABLED"
	EnvCurrencyCode   = "POS_CHECKOUT_CURRENCY_CODE"
	EnvJWTSecret      = "POS_JWT_SECRET"
	EnvJWTIssuer      = "POS_JWT_ISSUER"
	EnvRedisURL       = "POS_REDIS_URL"
)
