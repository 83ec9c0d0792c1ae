package config

// Config is the root application configuration.
type Config struct {
	App     AppConfig     `yaml:"app"`
	Web     WebConfig     `yaml:"web"`
	Sources SourcesConfig `yaml:"sources"`
}

// AppConfig holds the settings of the interactive program.
type AppConfig struct {
	Name          string `yaml:"name"            env:"FATASHI_NAME"            env-default:"fatashi"`
	ListLineCount int    `yaml:"list_line_count" env:"FATASHI_LIST_LINE_COUNT" env-default:"20"`
	Verbose       bool   `yaml:"verbose"         env:"FATASHI_VERBOSE"`
	Debug         bool   `yaml:"debug"           env:"FATASHI_DEBUG"`
	Prod          bool   `yaml:"prod"            env:"FATASHI_PROD"`
}

// WebConfig holds the HTTP listener settings.
type WebConfig struct {
	Addr string `yaml:"addr" env:"FATASHI_WEB_ADDR" env-default:"localhost:8080"`
}

// SourcesConfig lists the format files of each chain, head first.
type SourcesConfig struct {
	Kamusi  []string `yaml:"kamusi"  env:"FATASHI_KAMUSI"  env-separator:","`
	Methali []string `yaml:"methali" env:"FATASHI_METHALI" env-separator:","`
	Test    []string `yaml:"test"    env:"FATASHI_TEST"    env-separator:","`
}

// Vocabulary gives the format files of the chain plain searches go to.
func (c *Config) Vocabulary() []string {
	if c.App.Prod {
		return c.Sources.Kamusi
	}

	return c.Sources.Test
}
