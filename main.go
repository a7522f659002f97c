package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rpupo63/portfolio-backend/api"
	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rpupo63/portfolio-backend/sessions"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}
	c := config.New()

	connStr := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		config.GetString(c, "DB_HOST", "localhost"),
		config.GetString(c, "DB_USER", "portfolio"),
		config.GetString(c, "DB_PASSWORD", ""),
		config.GetString(c, "DB_NAME", "portfolio"),
		config.GetString(c, "DB_PORT", "5432"),
		config.GetString(c, "DB_SSLMODE", "disable"),
	)

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	// Run pending schema migrations before accepting any traffic
	if err := database.Migrate(db); err != nil {
		fmt.Printf("Error running migrations: %v\n", err)
		os.Exit(1)
	}

	currentDB := database.New(db)

	if err := bootstrapAdmin(currentDB, c); err != nil {
		fmt.Printf("Error bootstrapping admin user: %v\n", err)
		os.Exit(1)
	}

	sessionStore := newSessionStore(c)
	attachments, err := newAttachments(c)
	if err != nil {
		fmt.Printf("Error initializing attachment service: %v\n", err)
		os.Exit(1)
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB, sessionStore, attachments)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// bootstrapAdmin creates the administrator account on first boot. The
// admin routes are unreachable until at least one user exists.
func bootstrapAdmin(db database.Database, c map[string]string) error {
	count, err := db.UserRepo().Count()
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	username := config.GetString(c, "ADMIN_USERNAME", "admin")
	password := config.GetString(c, "ADMIN_PASSWORD", "")
	if password == "" {
		return fmt.Errorf("users table is empty and ADMIN_PASSWORD is not set")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	if err := db.UserRepo().Add(&models.User{Username: username, PasswordHash: hash}); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	fmt.Printf("Created admin user %q\n", username)
	return nil
}

// newSessionStore picks Redis when configured, in-memory otherwise.
func newSessionStore(c map[string]string) sessions.Store {
	if addr := config.GetString(c, "REDIS_ADDR", ""); addr != "" {
		fmt.Printf("Using Redis session store at %s\n", addr)
		return sessions.NewRedisStore(addr, config.GetString(c, "REDIS_PASSWORD", ""))
	}
	return sessions.NewMemoryStore()
}

// newAttachments picks the object-storage attachment service when
// configured, the local upload directory otherwise.
func newAttachments(c map[string]string) (services.Attachments, error) {
	if endpoint := config.GetString(c, "MINIO_ENDPOINT", ""); endpoint != "" {
		fmt.Printf("Using object storage at %s\n", endpoint)
		return services.NewMinioAttachments(
			endpoint,
			config.GetString(c, "MINIO_ACCESS_KEY", ""),
			config.GetString(c, "MINIO_SECRET_KEY", ""),
			config.GetString(c, "MINIO_BUCKET", "portfolio-media"),
			config.GetBool(c, "MINIO_USE_SSL", true),
		)
	}
	return services.NewDiskAttachments(config.GetString(c, "UPLOAD_DIR", "uploads"), "/uploads")
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
