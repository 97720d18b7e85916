package config

import (
	"fmt"
	"os"
	"strings"
)

type LogLevel string

const (
	Debug LogLevel = "debug"
	Info  LogLevel = "info"
	Warn  LogLevel = "warn"
	Error LogLevel = "error"
)

var (
	name    = "TUN-Status"
	version = "1.2.0"
)

func GetVersion() string {
	return version
}

func GetName() string {
	return name
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("TSE_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(strings.ToLower(logLevel))
}

func IsDebug() bool {
	return os.Getenv("TSE_DEBUG") == "true"
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("TSE_DB_FOLDER")
	if dbFolderPath == "" {
		return "db"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), strings.ToLower(GetName()))
}

func GetTelegramConfigPath() string {
	path := os.Getenv("TSE_TG_CONFIG")
	if path == "" {
		return "telegram.yaml"
	}
	return path
}
