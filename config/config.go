package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging       LoggingConfig       `yaml:"logging"`
	GeminiModel   string              `yaml:"gemini_model"`
	AnalysisQuota AnalysisQuotaConfig `yaml:"analysis_quota"`
	Scrape        ScrapeConfig        `yaml:"scrape"`
	Community     CommunityConfig     `yaml:"community"`
	Watchlist     []WatchlistSource   `yaml:"watchlist"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// AnalysisQuotaConfig caps outbound model calls for the analysis endpoints.
// A value of 0 or below means no limit in that direction.
type AnalysisQuotaConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
	RequestsPerDay    int `yaml:"requests_per_day"`
}

// ScrapeConfig tunes the content-service page extraction.
type ScrapeConfig struct {
	// MaxContentChars is the cap applied to extracted page text.
	MaxContentChars int `yaml:"max_content_chars"`

	// MinContentChars is the minimum extracted length below which the page
	// is reported as having no readable content.
	MinContentChars int `yaml:"min_content_chars"`

	// RenderThresholdChars triggers a headless-browser re-render when the
	// static fetch yields less text than this (client-rendered sites).
	RenderThresholdChars int `yaml:"render_threshold_chars"`

	TimeoutSeconds int `yaml:"timeout_seconds"`
}

type CommunityConfig struct {
	// FeedLimit bounds the number of entries returned per feed listing.
	FeedLimit int `yaml:"feed_limit"`
}

// WatchlistSource is a single RSS source seeded into the community feed.
type WatchlistSource struct {
	Name   string `yaml:"name"`
	RSSURL string `yaml:"rss_url"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}
	config = &c
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
