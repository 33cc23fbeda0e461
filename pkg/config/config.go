package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	PinAPI  PinAPIConfig
	Backend BackendConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
	Timezone string // zona para agrupar ventas por día/semana/mes
}

// Location carga la zona horaria; si no existe usa UTC.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DBConfig configuración de PostgreSQL (diario de pines).
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
}

// DSN devuelve el connection string con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + c.SSLMode,
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
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// PinAPIConfig proveedor de pines. Key y Secret solo los usa la CLI;
// en el dashboard cada usuario ingresa los suyos al iniciar sesión.
type PinAPIConfig struct {
	BaseURL      string
	Key          string
	Secret       string
	ChunkTimeout time.Duration
	FaultPolicy  string // best-effort | fail-fast
}

// BackendConfig API REST del negocio.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad.
func Load() (*Config, error) {
	cfg := read()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadPinAPI configuración mínima para herramientas que solo hablan con el proveedor de pines.
func LoadPinAPI() (*Config, error) {
	cfg := read()
	if err := cfg.validatePinAPI(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func read() *Config {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "pines-admin"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
			Timezone: getString(v, "APP_TIMEZONE", "America/Bogota"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "pines_admin"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 10),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "pines-admin"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		PinAPI: PinAPIConfig{
			BaseURL:      getString(v, "PIN_API_BASE_URL", ""),
			Key:          getString(v, "PIN_API_KEY", ""),
			Secret:       getString(v, "PIN_API_SECRET", ""),
			ChunkTimeout: time.Duration(getInt(v, "PIN_API_CHUNK_TIMEOUT_SECONDS", 20)) * time.Second,
			FaultPolicy:  getString(v, "PIN_API_FAULT_POLICY", "best-effort"),
		},
		Backend: BackendConfig{
			BaseURL: getString(v, "BACKEND_BASE_URL", ""),
			Timeout: time.Duration(getInt(v, "BACKEND_TIMEOUT_SECONDS", 15)) * time.Second,
		},
	}
	return cfg
}

func (c *Config) validate() error {
	if err := c.validatePinAPI(); err != nil {
		return err
	}
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("config: BACKEND_BASE_URL es obligatorio")
	}
	return nil
}

func (c *Config) validatePinAPI() error {
	if c.PinAPI.BaseURL == "" {
		return fmt.Errorf("config: PIN_API_BASE_URL es obligatorio")
	}
	if c.PinAPI.ChunkTimeout <= 0 {
		return fmt.Errorf("config: PIN_API_CHUNK_TIMEOUT_SECONDS debe ser positivo")
	}
	switch c.PinAPI.FaultPolicy {
	case "best-effort", "fail-fast":
	default:
		return fmt.Errorf("config: PIN_API_FAULT_POLICY inválido %q", c.PinAPI.FaultPolicy)
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if !v.IsSet(key) {
		return def
	}
	if s, ok := v.Get(key).(string); ok {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return def
		}
		return n
	}
	return v.GetInt(key)
}
