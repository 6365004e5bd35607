package config

// EnvPrefix is passed to envconfig when processing the environment.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "CRMPLUS_DB_DSN"
	EnvDBHost = "CRMPLUS_DB_HOST"
	EnvDBUser = "CRMPLUS_DB_USER"
	EnvDBName = "CRMPLUS_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
