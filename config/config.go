package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config holds the application's configuration values.
type Config struct {
	AppName    string `json:"appname"`
	AppEnv     string `json:"appenv"`
	AppPort    uint16 `json:"appport"`
	GinMode    string `json:"ginmode"`
	DBHost     string `json:"dbhost"`
	DBPort     uint16 `json:"dbport"`
	DBName     string `json:"dbname"`
	DBUser     string `json:"dbuser"`
	DBPass     string `json:"dbpass"`
	AdminEmail string `json:"adminemail"`
	AdminPass  string `json:"adminpass"`
}

var config *Config
var once sync.Once

// LoadConfig loads the environment variables from a .env file, and returns a singleton Config instance.
func LoadConfig() *Config {
	once.Do(func() {
		// A missing .env file is fine when the variables come from the environment.
		if err := godotenv.Load(); err != nil {
			log.Printf("No .env file loaded: %v", err)
		}

		appPort, _ := strconv.ParseUint(os.Getenv("APPPORT"), 10, 16)
		dbPort, _ := strconv.ParseUint(os.Getenv("DBPORT"), 10, 16)

		config = &Config{
			AppName:    os.Getenv("APPNAME"),
			AppEnv:     os.Getenv("APPENV"),
			AppPort:    uint16(appPort),
			GinMode:    os.Getenv("GINMODE"),
			DBHost:     os.Getenv("DBHOST"),
			DBPort:     uint16(dbPort),
			DBName:     os.Getenv("DBNAME"),
			DBUser:     os.Getenv("DBUSER"),
			DBPass:     os.Getenv("DBPASS"),
			AdminEmail: os.Getenv("ADMIN_EMAIL"),
			AdminPass:  os.Getenv("ADMIN_PASSWORD"),
		}
	})
	return config
}

// ConnectDB establishes the database connection. In the test environment it
// opens an in-memory SQLite database so the suite never needs a MySQL server;
// otherwise it connects to MySQL using the configuration values.
func ConnectDB() (*gorm.DB, error) {
	cfg := LoadConfig()

	if cfg.AppEnv == "test" {
		return gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}
