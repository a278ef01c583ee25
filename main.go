package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	apimod "github.com/anjaya02/task-based-web-app/modules/api"
	authmod "github.com/anjaya02/task-based-web-app/modules/auth"
	cachemod "github.com/anjaya02/task-based-web-app/modules/cache"
	tasksmod "github.com/anjaya02/task-based-web-app/modules/tasks"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load configuration from environment
	dbPath := getEnv("DB_PATH", "./tasks.db")
	httpPort := getEnvInt("HTTP_PORT", 3000)
	redisAddr := os.Getenv("REDIS_ADDR")
	cacheTTL := getEnvDuration("CACHE_TTL", 5*time.Minute)
	cachePrefix := getEnv("CACHE_PREFIX", "tasks:")

	log.Println("=== Task Tracker ===")
	log.Printf("Database: %s", dbPath)
	log.Printf("HTTP Port: %d", httpPort)
	if redisAddr != "" {
		log.Printf("Redis: %s (prefix: %s, TTL: %s)", redisAddr, cachePrefix, cacheTTL)
	} else {
		log.Println("Redis: disabled (set REDIS_ADDR to enable stats caching)")
	}

	// Create modules
	authModule := authmod.NewModule(dbPath)
	tasksModule := tasksmod.NewModule(dbPath)
	apiModule := apimod.NewModule(httpPort)

	var cacheModule *cachemod.Module
	if redisAddr != "" {
		cacheModule = cachemod.NewModule(redisAddr, cachePrefix, cacheTTL)
	}

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
	)
	if err != nil {
		log.Fatalf("Failed to create mono application: %v", err)
	}

	// Register modules
	if cacheModule != nil {
		app.Register(cacheModule)
	}
	app.Register(authModule)
	app.Register(tasksModule)
	app.Register(apiModule)

	// Start modules (this handles Init and Start)
	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		log.Fatalf("Failed to start app: %v", err)
	}

	// Wire the stats cache after start, once the Redis client exists
	if cacheModule != nil {
		tasksModule.SetCache(cacheModule.GetCache())
	}

	log.Println("=== Application Started ===")
	log.Printf("API available at http://localhost:%d", httpPort)
	log.Println("Endpoints:")
	log.Println("  GET    /health              - Health check")
	log.Println("  POST   /api/auth/register   - Register")
	log.Println("  POST   /api/auth/login      - Login")
	log.Println("  POST   /api/auth/refresh    - Refresh tokens")
	log.Println("  GET    /api/auth/profile    - Current user (auth)")
	log.Println("  GET    /api/tasks           - List tasks (auth)")
	log.Println("  POST   /api/tasks           - Create task (auth)")
	log.Println("  GET    /api/tasks/stats     - Task statistics (auth)")
	log.Println("  GET    /api/tasks/:id       - Get task (auth)")
	log.Println("  PUT    /api/tasks/:id       - Update task (auth)")
	log.Println("  DELETE /api/tasks/:id       - Delete task (auth)")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown")

	// Setup graceful shutdown using gelmium/graceful-shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	// Wait for shutdown signal and exit with appropriate code
	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns environment variable as int or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvDuration returns environment variable as duration or default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Printf("Warning: invalid duration value for %s: %s, using default: %s", key, value, defaultValue)
	}
	return defaultValue
}
