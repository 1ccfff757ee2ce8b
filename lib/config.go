package lib

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Configuration struct {
	APP_URL   string
	DB_URL    string
	DB_NAME   string
	MODE      string
	PORT      string
	TMP_DIR   string
	LOG_LEVEL string
	ENGINE    string

	// generation defaults
	OUT      string
	ERROR    string
	BOX_SIZE int
	BORDER   int
	FILL     string
	BACK     string
}

var defaultConfig = map[string]interface{}{
	"app_url":   "http://localhost:3030",
	"db_url":    "mongodb://localhost:27017/cuerre",
	"db_name":   "cuerre",
	"mode":      "development",
	"port":      "3030",
	"tmp_dir":   os.TempDir(),
	"log_level": "warn",
	"engine":    EngineSkip2,
	"out":       "qr.png",
	"error":     string(ECMedium),
	"box_size":  10,
	"border":    4,
	"fill":      "black",
	"back":      "white",
}

// NewViper returns a viper instance reading CUERRE_* environment variables on
// top of the built-in defaults.
func NewViper() *viper.Viper {
	v := viper.New()

	for key, value := range defaultConfig {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix("cuerre")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

// LoadConfig resolves the configuration. A non-empty file (or CUERRE_CONFIG)
// is merged under the environment.
func LoadConfig(v *viper.Viper, file string) (*Configuration, error) {
	if file == "" {
		file = v.GetString("config")
	}

	if file != "" {
		v.SetConfigFile(file)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", file, err)
		}
	}

	return &Configuration{
		APP_URL:   strings.TrimRight(v.GetString("app_url"), "/"),
		DB_URL:    v.GetString("db_url"),
		DB_NAME:   v.GetString("db_name"),
		MODE:      v.GetString("mode"),
		PORT:      v.GetString("port"),
		TMP_DIR:   v.GetString("tmp_dir"),
		LOG_LEVEL: v.GetString("log_level"),
		ENGINE:    v.GetString("engine"),
		OUT:       v.GetString("out"),
		ERROR:     strings.ToUpper(v.GetString("error")),
		BOX_SIZE:  v.GetInt("box_size"),
		BORDER:    v.GetInt("border"),
		FILL:      v.GetString("fill"),
		BACK:      v.GetString("back"),
	}, nil
}

// GetConfig loads the configuration from the environment only.
func GetConfig() (*Configuration, error) {
	return LoadConfig(NewViper(), "")
}

func (c *Configuration) IsProduction() bool {
	return c.MODE == "production"
}
