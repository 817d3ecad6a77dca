package config

type Config interface {
	EnvConfig
	SessionConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetDataFolder() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
	Session
	Security
}

func New() Config {
	return mainConfig{}
}
