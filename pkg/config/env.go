package config

// EnvPrefix scopes every environment variable consumed by the service.
const EnvPrefix = "TEAMFLOW"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "TEAMFLOW_DB_DSN"
	EnvDBHost = "TEAMFLOW_DB_HOST"
	EnvDBUser = "TEAMFLOW_DB_USER"
	EnvDBName = "TEAMFLOW_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
