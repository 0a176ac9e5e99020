package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"price-recon/internal/utils"
)

type Config struct {
	Host         string
	Port         int
	AllowOrigins []string
	LogLevel     string
	MaxUploadMB  int
	LogFile      string
	Pprof        bool // /debug/pprof на роутере

	// дефолты сверки, форма запроса их перекрывает
	Threshold      float64
	ChangePercent  float64
	DefaultProfile string
}

// Load читает окружение. .env рядом с бинарником необязателен.
func Load() Config {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getenv("PORT", "8082"))
	mb, _ := strconv.Atoi(getenv("MAX_UPLOAD_MB", "256"))
	origins := strings.Split(getenv("ALLOW_ORIGINS", "*"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return Config{
		Host:           getenv("HOST", "127.0.0.1"),
		Port:           port,
		AllowOrigins:   origins,
		LogLevel:       getenv("LOG_LEVEL", "info"),
		MaxUploadMB:    mb,
		LogFile:        getenv("LOG_FILE", "logs/price-recon.log"),
		Pprof:          getbool("PPROF", false),
		Threshold:      getfloat("RECON_THRESHOLD", 0.33),
		ChangePercent:  getfloat("RECON_CHANGE_PERCENT", 5),
		DefaultProfile: getenv("RECON_DEFAULT_PROFILE", "auto"),
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getbool(k string, def bool) bool {
	b, err := strconv.ParseBool(os.Getenv(k))
	if err != nil {
		return def
	}
	return b
}

func getfloat(k string, def float64) float64 {
	f, ok := utils.ParseFloatRU(os.Getenv(k))
	if !ok || f <= 0 {
		return def
	}
	return f
}
