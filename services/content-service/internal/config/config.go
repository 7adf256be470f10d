package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort      string `mapstructure:"HTTP_PORT"`
	DBHost        string `mapstructure:"DB_HOST"`
	DBPort        string `mapstructure:"DB_PORT"`
	DBUser        string `mapstructure:"DB_USER"`
	DBPassword    string `mapstructure:"DB_PASSWORD"`
	DBName        string `mapstructure:"DB_NAME"`
	UserURL       string `mapstructure:"USER_SERVICE_URL"`
	CourseURL     string `mapstructure:"COURSE_SERVICE_URL"`
	EnrollmentURL string `mapstructure:"ENROLLMENT_SERVICE_URL"`
}

func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	viper.BindEnv("HTTP_PORT")
	viper.BindEnv("DB_HOST")
	viper.BindEnv("DB_PORT")
	viper.BindEnv("DB_USER")
	viper.BindEnv("DB_PASSWORD")
	viper.BindEnv("DB_NAME")
	viper.BindEnv("USER_SERVICE_URL")
	viper.BindEnv("COURSE_SERVICE_URL")
	viper.BindEnv("ENROLLMENT_SERVICE_URL")

	viper.SetDefault("HTTP_PORT", ":3000")
	viper.SetDefault("USER_SERVICE_URL", "http://localhost:8000")
	viper.SetDefault("COURSE_SERVICE_URL", "http://localhost:5000")
	viper.SetDefault("ENROLLMENT_SERVICE_URL", "http://localhost:8002")

	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	err = viper.Unmarshal(&config)
	return
}
