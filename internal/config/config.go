package config

type Config interface {
	EnvConfig
	AuthConfig
}

type mainConfig struct {
	EnvVars
	Auth
}

func New() Config {
	loadDotEnv()
	return mainConfig{}
}
