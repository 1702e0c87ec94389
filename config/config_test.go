package config

import (
	"testing"
	"time"

	"hotel-booking-api/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveMySQLDSN(t *testing.T) {
	tests := []struct {
		name    string
		cfg     DatabaseConfig
		want    string
		wantErr bool
	}{
		{
			name: "mysql url gets defaults",
			cfg:  DatabaseConfig{URL: "mysql://app:pw@db.internal/hotel"},
			want: "app:pw@tcp(db.internal:3306)/hotel?charset=utf8mb4&loc=UTC&parseTime=True",
		},
		{
			name: "mysql url keeps explicit options",
			cfg:  DatabaseConfig{URL: "mysql://app:pw@db.internal:3307/hotel?charset=latin1"},
			want: "app:pw@tcp(db.internal:3307)/hotel?charset=latin1&loc=UTC&parseTime=True",
		},
		{
			name:    "mysql url without database",
			cfg:     DatabaseConfig{URL: "mysql://app:pw@db.internal/"},
			wantErr: true,
		},
		{
			name: "raw dsn passes through",
			cfg:  DatabaseConfig{URL: "u:p@tcp(h:1)/d?parseTime=true"},
			want: "u:p@tcp(h:1)/d?parseTime=true",
		},
		{
			name: "parts",
			cfg:  DatabaseConfig{User: "root", Password: "pw", Host: "127.0.0.1", Port: "3306", Name: "hotel_db"},
			want: "root:pw@tcp(127.0.0.1:3306)/hotel_db?charset=utf8mb4&parseTime=True&loc=UTC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveMySQLDSN(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_MODE", "")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("ROOMTYPE_DELETE_POLICY", "")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("MYSQL_URL", "")
	t.Setenv("DATABASE_URL", "mysql://a:b@c/d")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, AuthModeLocal, cfg.Auth.Mode)
	assert.Equal(t, "hotel-booking-api", cfg.Auth.JWTIssuer)
	assert.Equal(t, 24*time.Hour, cfg.Auth.JWTTTL)
	assert.Equal(t, 20, cfg.RateLimitPerMinute)
	assert.Equal(t, services.DeleteRestrict, cfg.DeletePolicy)
	assert.Equal(t, "booking.confirmed", cfg.BookingEventsQueue)
	assert.Equal(t, "mysql://a:b@c/d", cfg.Database.URL)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"local mode without secret", map[string]string{"AUTH_MODE": "local", "JWT_SECRET": ""}},
		{"external mode without key", map[string]string{"AUTH_MODE": "external", "AUTH_EXTERNAL_PUBLIC_KEY": ""}},
		{"unknown mode", map[string]string{"AUTH_MODE": "saml", "JWT_SECRET": "x"}},
		{"unknown delete policy", map[string]string{"JWT_SECRET": "x", "ROOMTYPE_DELETE_POLICY": "orphan"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("AUTH_MODE", "")
			t.Setenv("ROOMTYPE_DELETE_POLICY", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
