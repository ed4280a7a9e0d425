// internal/config/database.go
package config

import (
	"fmt"
	"strings"
	"time"
)

// DSN renders the libpq key/value connection string. Values are quoted so
// passwords may contain spaces or quotes.
func (d *DatabaseConfig) DSN() string {
	pairs := []struct{ key, value string }{
		{"host", d.Host},
		{"port", d.Port},
		{"user", d.User},
		{"password", d.Password},
		{"dbname", d.Database},
		{"sslmode", d.SSLMode},
	}

	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		if p.value == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%s", p.key, quoteDSNValue(p.value)))
	}
	return strings.Join(parts, " ")
}

func quoteDSNValue(v string) string {
	if !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

// ConnMaxLifetime is MaxLifetime in seconds as a duration. Zero keeps
// connections forever.
func (d *DatabaseConfig) ConnMaxLifetime() time.Duration {
	return time.Duration(d.MaxLifetime) * time.Second
}
