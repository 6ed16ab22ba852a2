// internal/config/database.go
package config

import (
	"fmt"
)

// DSN prefers DATABASE_URL and falls back to the discrete DB_* settings.
func (d *DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}
