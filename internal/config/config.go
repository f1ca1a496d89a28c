package config

import (
	"log"
	"os"
)

type Config struct {
	Port      string
	DBDSN     string
	LogFile   string
	RedisAddr string
	SeedDemo  bool
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "shopforge.db"
	} // sqlite file in project root
	logFile := os.Getenv("LOG_FILE")
	redisAddr := os.Getenv("REDIS_ADDR") // empty disables the stats cache
	seed := os.Getenv("SEED_DEMO_DATA") != "false"

	cfg := Config{Port: port, DBDSN: dsn, LogFile: logFile, RedisAddr: redisAddr, SeedDemo: seed}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s REDIS_ADDR=%s SEED_DEMO_DATA=%v",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.RedisAddr, cfg.SeedDemo)
	return cfg
}
