package config

// EnvPrefix namespaces every environment variable this service reads.
const EnvPrefix = "COMANDA"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "COMANDA_DB_DSN"
	EnvDBHost = "COMANDA_DB_HOST"
	EnvDBUser = "COMANDA_DB_USER"
	EnvDBName = "COMANDA_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
