package config

import (
	"fmt"
)

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if c.App.ListLineCount <= 0 {
		return fmt.Errorf("app.list_line_count must be > 0 (got %d)", c.App.ListLineCount)
	}

	if len(c.Vocabulary()) == 0 {
		chain := "test"
		if c.App.Prod {
			chain = "kamusi"
		}

		return fmt.Errorf("sources.%s must list at least one format file", chain)
	}

	return nil
}
