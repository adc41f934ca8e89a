package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Rates.validate(); err != nil {
		return fmt.Errorf("rates: %w", err)
	}
	if err := c.Catalog.validate(); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	return nil
}

func (r *RatesConfig) validate() error {
	if r.BaseURL == "" {
		return fmt.Errorf("base_url must not be empty")
	}
	if r.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be > 0 (got %v)", r.RequestTimeout)
	}
	if r.FreshTTL <= 0 {
		return fmt.Errorf("fresh_ttl must be > 0 (got %v)", r.FreshTTL)
	}
	if r.FallbackMaxAge < r.FreshTTL {
		return fmt.Errorf("fallback_max_age (%v) must be >= fresh_ttl (%v)", r.FallbackMaxAge, r.FreshTTL)
	}
	return nil
}

func (c *CatalogConfig) validate() error {
	if c.DefaultPageSize <= 0 {
		return fmt.Errorf("default_page_size must be > 0 (got %d)", c.DefaultPageSize)
	}
	if c.MaxPageSize < c.DefaultPageSize {
		return fmt.Errorf("max_page_size (%d) must be >= default_page_size (%d)", c.MaxPageSize, c.DefaultPageSize)
	}
	return nil
}
