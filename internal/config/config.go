package config

import "time"

type Config struct {
	Port      string
	Host      string
	PublicDir string
	Shopify   ShopifyConfig
	Store     StoreConfig
	Scheduler SchedulerConfig
}

type ShopifyConfig struct {
	APIKey     string
	APISecret  string
	Scopes     string
	APIVersion string
	Timeout    time.Duration
}

// StoreConfig selects the credential/state store backend. "memory" keeps
// everything in process and loses it on restart; "redis" and "mongo"
// survive restarts.
type StoreConfig struct {
	Backend       string
	RedisURL      string
	MongoURI      string
	MongoDatabase string
}

type SchedulerConfig struct {
	Interval time.Duration
}

func Load() (*Config, error) {
	apiKey, err := requiredString("SHOPIFY_API_KEY")
	if err != nil {
		return nil, err
	}
	apiSecret, err := requiredString("SHOPIFY_API_SECRET")
	if err != nil {
		return nil, err
	}
	host, err := requiredString("HOST")
	if err != nil {
		return nil, err
	}

	interval, err := durationWithDefault("SCHEDULE_INTERVAL", 6*time.Hour)
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:      stringWithDefault("PORT", "3000"),
		Host:      host,
		PublicDir: stringWithDefault("PUBLIC_DIR", "public"),
		Shopify: ShopifyConfig{
			APIKey:     apiKey,
			APISecret:  apiSecret,
			Scopes:     stringWithDefault("SHOPIFY_SCOPES", "read_products,read_collections,read_content"),
			APIVersion: stringWithDefault("SHOPIFY_API_VERSION", ""),
			Timeout:    30 * time.Second,
		},
		Store: StoreConfig{
			Backend:       stringWithDefault("STORE_BACKEND", "memory"),
			RedisURL:      stringWithDefault("REDIS_URL", "redis://localhost:6379"),
			MongoURI:      stringWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			MongoDatabase: stringWithDefault("MONGODB_DATABASE", "sitemaps"),
		},
		Scheduler: SchedulerConfig{
			Interval: interval,
		},
	}, nil
}
