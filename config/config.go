package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "config.json"

// Selectors locate the board and clue markup in the rendered page.
type Selectors struct {
	Board     string `mapstructure:"board"`
	Cell      string `mapstructure:"cell"`
	Token     string `mapstructure:"token"`
	ClueItem  string `mapstructure:"clue_item"`
	ClueLabel string `mapstructure:"clue_label"`
	ClueText  string `mapstructure:"clue_text"`
}

// Reveal holds the XPaths clicked to reveal the solution.
type Reveal struct {
	Popup   string `mapstructure:"popup"`
	Button  string `mapstructure:"button"`
	Option  string `mapstructure:"option"`
	Confirm string `mapstructure:"confirm"`
}

// GitHub is where the bank gets published.
type GitHub struct {
	Token   string `mapstructure:"token"`
	Repo    string `mapstructure:"repo"`
	Path    string `mapstructure:"path"`
	Message string `mapstructure:"message"`
	APIURL  string `mapstructure:"api_url"`
}

// Daemon controls the long-running daily scrape.
type Daemon struct {
	Interval  time.Duration `mapstructure:"interval"`
	Retries   int           `mapstructure:"retries"`
	RetryWait time.Duration `mapstructure:"retry_wait"`
}

// Serve is the puzzle site listener. TLS is used when both Cert and Key are set.
type Serve struct {
	Addr string `mapstructure:"addr"`
	Cert string `mapstructure:"cert"`
	Key  string `mapstructure:"key"`
}

type Config struct {
	URL       string        `mapstructure:"url"`
	BankPath  string        `mapstructure:"bank_path"`
	Rows      int           `mapstructure:"rows"`
	Cols      int           `mapstructure:"cols"`
	Headless  bool          `mapstructure:"headless"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Step      bool          `mapstructure:"step"`
	StepDelay time.Duration `mapstructure:"step_delay"`
	Selectors Selectors     `mapstructure:"selectors"`
	Reveal    Reveal        `mapstructure:"reveal"`
	GitHub    GitHub        `mapstructure:"github"`
	Daemon    Daemon        `mapstructure:"daemon"`
	Serve     Serve         `mapstructure:"serve"`
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("url", "https://www.nytimes.com/crosswords/game/mini")
	v.SetDefault("bank_path", "puzzlebank.txt")
	v.SetDefault("rows", 5)
	v.SetDefault("cols", 5)
	v.SetDefault("headless", true)
	v.SetDefault("timeout", 60*time.Second)
	v.SetDefault("step", false)
	v.SetDefault("step_delay", time.Second)

	v.SetDefault("selectors.board", "#xwd-board [role=table]")
	v.SetDefault("selectors.cell", "g")
	v.SetDefault("selectors.token", "text")
	v.SetDefault("selectors.clue_item", `li[class*="Clue-li"]`)
	v.SetDefault("selectors.clue_label", `[class*="Clue-label"]`)
	v.SetDefault("selectors.clue_text", `[class*="Clue-text"]`)

	v.SetDefault("reveal.popup", `//*[@id="root"]/div/div/div[4]/div/main/div[2]/div/div[2]/div[3]/div/article/div[2]/button`)
	v.SetDefault("reveal.button", `//*[@id="root"]/div/div/div[4]/div/main/div[2]/div/div/ul/div[2]/li[2]/button`)
	v.SetDefault("reveal.option", `//*[@id="root"]/div/div/div[4]/div/main/div[2]/div/div/ul/div[2]/li[2]/ul/li[3]/a`)
	v.SetDefault("reveal.confirm", `//*[@id="root"]/div/div[2]/div[2]/article/div[2]/button[2]/div/span`)

	v.SetDefault("github.token", "")
	v.SetDefault("github.repo", "")
	v.SetDefault("github.path", "puzzlebank.txt")
	v.SetDefault("github.message", "Update puzzlebank.txt")
	v.SetDefault("github.api_url", "https://api.github.com")

	v.SetDefault("daemon.interval", time.Hour)
	v.SetDefault("daemon.retries", 3)
	v.SetDefault("daemon.retry_wait", 5*time.Second)

	v.SetDefault("serve.addr", ":8100")
	v.SetDefault("serve.cert", "")
	v.SetDefault("serve.key", "")
}

// New returns a viper instance with defaults and MINISCRAPER_* env overrides.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix("MINISCRAPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig reads filename (JSON) over the defaults. A missing file is not
// an error when filename is the default; an explicit file must exist.
func LoadConfig(v *viper.Viper, filename string) (*Config, error) {
	if filename == "" {
		v.SetConfigName(strings.TrimSuffix(DefaultFile, ".json"))
		v.SetConfigType("json")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(filename)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if filename != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Rows <= 0 || cfg.Cols <= 0 {
		return nil, fmt.Errorf("invalid grid size %dx%d", cfg.Rows, cfg.Cols)
	}
	if cfg.Daemon.Retries < 1 {
		cfg.Daemon.Retries = 1
	}
	return &cfg, nil
}
