package config

import "os"

func IsDebug() bool {
	return os.Getenv("PASTCAST_DEBUG") == "1"
}
