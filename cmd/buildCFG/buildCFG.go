package buildCFG

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/config"
	"github.com/wb-go/wbf/dbpg"

	"confreg/internal/mailer"
	"confreg/internal/payment"
)

type ServerConfig struct {
	Port        string
	CORSOrigins []string
}

type RabbitConfig struct {
	Url             string
	Exchange        string
	Queue           string
	ReminderMinutes int
}

func BuildServerConfig(cfg *config.Config, log *zerolog.Logger) ServerConfig {
	port := cfg.GetString("server.port")
	if port == "" {
		port = "8080"
		log.Warn().Msg("server.port not set, defaulting to 8080")
	}

	var origins []string
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" && raw != "*" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return ServerConfig{Port: port, CORSOrigins: origins}
}

func BuildDBConfig(cfg *config.Config, log *zerolog.Logger) (string, []string, *dbpg.Options, error) {
	masterDSN := cfg.GetString("database.master_dsn")
	if masterDSN == "" {
		return "", nil, nil, fmt.Errorf("database.master_dsn is not set")
	}

	opts := &dbpg.Options{
		MaxOpenConns:    cfg.GetInt("database.max_open_conns"),
		MaxIdleConns:    cfg.GetInt("database.max_idle_conns"),
		ConnMaxLifetime: time.Duration(cfg.GetInt("database.conn_max_lifetime_seconds")) * time.Second,
	}

	log.Info().Msg("database configuration loaded")
	return masterDSN, nil, opts, nil
}

func BuildRabbitConfig(cfg *config.Config, log *zerolog.Logger) (RabbitConfig, error) {
	rc := RabbitConfig{
		Url:             cfg.GetString("rabbit.url"),
		Exchange:        cfg.GetString("rabbit.exchange"),
		Queue:           cfg.GetString("rabbit.queue"),
		ReminderMinutes: cfg.GetInt("rabbit.reminder_minutes"),
	}
	if rc.Url == "" || rc.Exchange == "" || rc.Queue == "" {
		return rc, fmt.Errorf("rabbit configuration is incomplete")
	}
	if rc.ReminderMinutes <= 0 {
		rc.ReminderMinutes = 30
	}

	log.Info().Msg("rabbit configuration loaded")
	return rc, nil
}

func BuildSMTPConfig(cfg *config.Config) mailer.Config {
	return mailer.Config{
		Host:     cfg.GetString("smtp.host"),
		Port:     cfg.GetString("smtp.port"),
		From:     cfg.GetString("smtp.from"),
		Password: cfg.GetString("smtp.password"),
	}
}

// BuildGatewayKeys reads the Razorpay credential pair from the environment.
// Missing keys are not fatal: order creation and verification degrade to a
// configuration error while the rest of the API keeps serving.
func BuildGatewayKeys(log *zerolog.Logger) payment.Keys {
	keys := payment.Keys{
		KeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		KeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
	}
	if !keys.Configured() {
		log.Warn().Msg("razorpay keys not configured, payment endpoints will be degraded")
	}
	return keys
}
