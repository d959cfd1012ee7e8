package config

import (
	"fmt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if !c.Auth.HasGoogleOAuth() {
		return fmt.Errorf("google oauth must be configured (client id and secret)")
	}

	if c.Curriculum.ModuleCount <= 0 {
		return fmt.Errorf("curriculum.module_count must be > 0 (got %d)", c.Curriculum.ModuleCount)
	}
	if c.Curriculum.CheckpointsPerModule <= 0 {
		return fmt.Errorf("curriculum.checkpoints_per_module must be > 0 (got %d)", c.Curriculum.CheckpointsPerModule)
	}

	return nil
}
