package cfg

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vitrine-shop/go-backend/pkg/e"
	"github.com/vitrine-shop/go-backend/pkg/logger"
	"github.com/jimlawless/whereami"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Http  *HTTPConfig
	Mongo *MongoCfg
	Guard *GuardCfg
	Redis *RedisCfg
	Kafka *KafkaCfg
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	AppEnv       string // development | production
	StaticDir    string // каталог собранного фронтенда, отдаётся в production
}

type MongoCfg struct {
	URI            string
	Database       string
	Collection     string
	ConnectTimeout time.Duration
}

// GuardCfg описывает контроль доступа к мутирующим операциям.
// Пустой AdminPassword отключает проверку пароля.
type GuardCfg struct {
	AdminPassword  string
	AllowedIPs     []string
	IPCheckEnabled bool
}

type RedisCfg struct {
	Addr        string
	Password    string
	User        string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
	ProductTTL  time.Duration
}

type KafkaCfg struct {
	Topic             string
	Brokers           []string
	NetworkMode       string
	Partitions        int
	ReplicationFactor int
	Enabled           bool
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	mongo, err := loadMongoCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	guard, err := loadGuardCfg(log, http.AppEnv)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redis, err := loadRedisCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	kafka, err := loadKafkaCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Http:  http,
		Mongo: mongo,
		Guard: guard,
		Redis: redis,
		Kafka: kafka,
	}, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "3000"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 10 * time.Second
		defaultIdleTimeout  = 60 * time.Second
		defaultAppEnv       = EnvDevelopment
		defaultStaticDir    = "frontend/dist"
	)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	appEnv := getEnvOrDefault("APP_ENV", defaultAppEnv)
	if appEnv != EnvDevelopment && appEnv != EnvProduction {
		return nil, fmt.Errorf("APP_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, appEnv)
	}

	return &HTTPConfig{
		Port:         getEnvOrDefault("HTTP_PORT", defaultPort),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
		AppEnv:       appEnv,
		StaticDir:    getEnvOrDefault("STATIC_DIR", defaultStaticDir),
	}, nil
}

func loadMongoCfg() (*MongoCfg, error) {
	const (
		defaultDatabase       = "products_db"
		defaultCollection     = "products"
		defaultConnectTimeout = 10 * time.Second
	)

	uri := getEnv("MONGO_URI")
	if uri == "" {
		return nil, fmt.Errorf("MONGO_URI environment variable is required")
	}

	connectTimeout, err := parseDurationEnv("MONGO_CONNECT_TIMEOUT", defaultConnectTimeout)
	if err != nil {
		return nil, e.Wrap("MONGO_CONNECT_TIMEOUT", err)
	}

	return &MongoCfg{
		URI:            uri,
		Database:       getEnvOrDefault("MONGO_DB", defaultDatabase),
		Collection:     getEnvOrDefault("MONGO_COLLECTION", defaultCollection),
		ConnectTimeout: connectTimeout,
	}, nil
}

// loadGuardCfg загружает настройки контроля доступа.
// Проверка адреса по умолчанию включена только в development-режиме;
// IP_ALLOWLIST_ENABLED переопределяет это поведение явно.
func loadGuardCfg(log logger.Logger, appEnv string) (*GuardCfg, error) {
	password := getEnv("ADMIN_PASSWORD")
	if password == "" {
		log.Warnf("ADMIN_PASSWORD is not set, password check is disabled")
	}

	var allowedIPs []string
	if raw := getEnv("ALLOWED_IPS"); raw != "" {
		for _, ip := range strings.Split(raw, ",") {
			if ip = strings.TrimSpace(ip); ip != "" {
				allowedIPs = append(allowedIPs, ip)
			}
		}
	}

	ipCheckEnabled, err := parseBoolEnv("IP_ALLOWLIST_ENABLED", appEnv == EnvDevelopment)
	if err != nil {
		log.Errorf(err, "invalid IP_ALLOWLIST_ENABLED")
		return nil, err
	}

	if ipCheckEnabled && len(allowedIPs) == 0 {
		return nil, fmt.Errorf("IP_ALLOWLIST_ENABLED is set but ALLOWED_IPS is empty")
	}

	return &GuardCfg{
		AdminPassword:  password,
		AllowedIPs:     allowedIPs,
		IPCheckEnabled: ipCheckEnabled,
	}, nil
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultAddr         = "localhost:6379"
		defaultDB           = 0
		defaultMaxRetries   = 3
		defaultDialTimeout  = 5 * time.Second
		defaultReadTimeout  = 3 * time.Second
		defaultWriteTimeout = 3 * time.Second
		defaultProductTTL   = 3 * time.Minute
	)

	addr := getEnvOrDefault("REDIS_ADDR", defaultAddr)
	password := getEnv("REDIS_PASSWORD")
	user := getEnv("REDIS_USER")

	dbStr := getEnvOrDefault("REDIS_DB_ID", strconv.Itoa(defaultDB))
	db, err := strconv.Atoi(dbStr)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetries, err := parseIntEnv("MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid DIAL_TIMEOUT")
		return nil, err
	}

	readTimeout, err := parseDurationEnv("READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid WRITE_TIMEOUT")
		return nil, err
	}

	productTTL, err := parseDurationEnv("PRODUCT_TTL", defaultProductTTL)
	if err != nil {
		log.Errorf(err, "invalid PRODUCT_TTL")
		return nil, err
	}

	timeout := readTimeout
	if writeTimeout > timeout {
		timeout = writeTimeout
	}

	return &RedisCfg{
		Addr:        addr,
		Password:    password,
		User:        user,
		DB:          db,
		MaxRetries:  maxRetries,
		DialTimeout: dialTimeout,
		Timeout:     timeout,
		ProductTTL:  productTTL,
	}, nil
}

// loadKafkaCfg загружает настройки продюсера событий каталога.
// Без KAFKA_BROKERS продюсер отключается, а не падает: события
// изменений — вспомогательный контур, не условие работы API.
func loadKafkaCfg() (*KafkaCfg, error) {
	const (
		defaultTopic             = "catalog.product-changes"
		defaultPartitions        = 3
		defaultReplicationFactor = 1
		defaultNetworkMode       = "tcp"
	)

	brokerStr := os.Getenv("KAFKA_BROKERS")
	if brokerStr == "" {
		return &KafkaCfg{Enabled: false}, nil
	}
	brokers := strings.Split(brokerStr, ",")

	partitions, err := parseIntEnv("KAFKA_PARTITIONS", defaultPartitions)
	if err != nil {
		return nil, e.Wrap("KAFKA_PARTITIONS", err)
	}

	replicationFactor, err := parseIntEnv("REPLICATION_FACTOR", defaultReplicationFactor)
	if err != nil {
		return nil, e.Wrap("REPLICATION_FACTOR", err)
	}

	return &KafkaCfg{
		Brokers:           brokers,
		Topic:             getEnvOrDefault("KAFKA_TOPIC", defaultTopic),
		Partitions:        partitions,
		ReplicationFactor: replicationFactor,
		NetworkMode:       getEnvOrDefault("KAFKA_NETWORK_MODE", defaultNetworkMode),
		Enabled:           true,
	}, nil
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	return strconv.Atoi(v)
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	return strconv.ParseBool(v)
}
