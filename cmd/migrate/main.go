package main

import (
	config "efood-checkout/configs"
	database "efood-checkout/internal/pkg/db"
	"efood-checkout/internal/pkg/logger"
)

func main() {
	env, err := config.GetEnv()
	if err != nil {
		logger.Error.Println("Error getting environment", err)
		panic(err)
	}

	if err := logger.Setup(env.LogLevel, env.LogFormat); err != nil {
		logger.Error.Println("Error setting up logger", err)
		panic(err)
	}
	defer logger.Sync()

	// Setup Database
	db, err := setupDB(env)
	if err != nil {
		logger.Error.Println("Error setting up Database", err)
		return
	}

	defer func() {
		if db != nil {
			_ = db.Close()
		}
	}()

	err = db.RunMigrations()
	if err != nil {
		logger.Error.Println("Error running migrations", err)
		return
	}

	logger.Info.Println("Migrations completed successfully")
}

func setupDB(env *config.Config) (*database.Database, error) {
	return database.Setup(&database.Config{
		Host:     env.DBHost,
		Port:     env.DBPort,
		User:     env.DBUser,
		Password: env.DBPass,
		Database: env.DBName,
		SSLMode:  env.DBSSLMode,
		Driver:   env.DBDriver,
	})
}
