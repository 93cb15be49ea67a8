package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Redis   RedisConfig
	Store   StoreConfig
	Uploads UploadConfig
	Admin   AdminConfig
	Login   LoginLimitConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string // trace, debug, info, warn, error
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	MinConns    int
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig conexión a Redis. Addr vacío = carrito en memoria y sin caché de catálogo.
type RedisConfig struct {
	Addr            string
	Password        string
	DB              int
	CatalogCacheTTL time.Duration
}

// Enabled indica si hay Redis configurado.
func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// StoreConfig parámetros comerciales de la tienda.
type StoreConfig struct {
	CartTTL      time.Duration
	IVARate      decimal.Decimal // 0.05 = 5%
	ShippingCost decimal.Decimal // envío base en pesos
}

// UploadConfig almacenamiento de imágenes subidas.
type UploadConfig struct {
	Dir      string
	MaxBytes int64
}

// AdminConfig cuenta dueña de la tienda: única autorizada a crear o elevar usuarios a admin.
type AdminConfig struct {
	OwnerEmail    string
	OwnerPassword string
	OwnerName     string
}

// LoginLimitConfig limitador por IP del endpoint de login.
type LoginLimitConfig struct {
	RatePerSec float64
	Burst      int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, REDIS_ADDR, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	ivaRate, err := decimal.NewFromString(getString(v, "STORE_IVA_RATE", "0.05"))
	if err != nil {
		return nil, fmt.Errorf("STORE_IVA_RATE inválido: %w", err)
	}
	shipping, err := decimal.NewFromString(getString(v, "STORE_SHIPPING_COST", "3000"))
	if err != nil {
		return nil, fmt.Errorf("STORE_SHIPPING_COST inválido: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "zonekids-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "zonekids"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 15),
			MinConns:    getInt(v, "DB_MIN_CONNS", 1),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60*24),
			Issuer:     getString(v, "JWT_ISSUER", "zonekids"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			CORSOrigins: getString(v, "CORS_ORIGINS", "http://localhost:5173"),
		},
		Redis: RedisConfig{
			Addr:            getString(v, "REDIS_ADDR", ""),
			Password:        getString(v, "REDIS_PASSWORD", ""),
			DB:              getInt(v, "REDIS_DB", 0),
			CatalogCacheTTL: time.Duration(getInt(v, "CATALOG_CACHE_TTL_SECONDS", 60)) * time.Second,
		},
		Store: StoreConfig{
			CartTTL:      time.Duration(getInt(v, "CART_TTL_HOURS", 24)) * time.Hour,
			IVARate:      ivaRate,
			ShippingCost: shipping,
		},
		Uploads: UploadConfig{
			Dir:      getString(v, "UPLOAD_DIR", "uploads"),
			MaxBytes: int64(getInt(v, "UPLOAD_MAX_BYTES", 10*1024*1024)),
		},
		Admin: AdminConfig{
			OwnerEmail:    strings.ToLower(getString(v, "ADMIN_OWNER_EMAIL", "")),
			OwnerPassword: getString(v, "ADMIN_OWNER_PASSWORD", ""),
			OwnerName:     getString(v, "ADMIN_OWNER_NAME", "Administrador ZoneKids"),
		},
		Login: LoginLimitConfig{
			RatePerSec: getFloat(v, "LOGIN_RATE_PER_SEC", 1),
			Burst:      getInt(v, "LOGIN_BURST", 5),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		f, err := strconv.ParseFloat(v.GetString(key), 64)
		if err != nil {
			return def
		}
		return f
	}
	return def
}
