package config

import (
	"fmt"
)

// WithPort sets the server port
func WithPort(port string) Option {
	return func(c *ServerConfig) error {
		if port == "" {
			return fmt.Errorf("port cannot be empty")
		}
		c.Port = port
		return nil
	}
}

// WithEnvironment sets the environment (development, production, testing)
func WithEnvironment(env string) Option {
	return func(c *ServerConfig) error {
		if env == "" {
			return fmt.Errorf("environment cannot be empty")
		}
		c.Environment = env
		return nil
	}
}

// WithDatabase configures the database backend
func WithDatabase(dbType, url string) Option {
	return func(c *ServerConfig) error {
		if dbType != "memory" && dbType != "postgres" {
			return fmt.Errorf("database type must be 'memory' or 'postgres', got: %s", dbType)
		}
		if dbType == "postgres" && url == "" {
			return fmt.Errorf("database URL is required for postgres")
		}
		c.DatabaseType = dbType
		c.DatabaseURL = url
		return nil
	}
}

// WithDatabaseSchema sets the database schema (for Postgres)
func WithDatabaseSchema(schema string) Option {
	return func(c *ServerConfig) error {
		c.DBSchema = schema
		return nil
	}
}

// WithMemoryStorage selects the in-memory media backend (for testing)
func WithMemoryStorage() Option {
	return func(c *ServerConfig) error {
		c.StorageType = "memory"
		return nil
	}
}

// WithFilesystemStorage selects the filesystem media backend
func WithFilesystemStorage(baseDir, urlPrefix string) Option {
	return func(c *ServerConfig) error {
		if baseDir == "" {
			return fmt.Errorf("filesystem base directory cannot be empty")
		}
		c.StorageType = "fs"
		c.FSBaseDir = baseDir
		c.FSURLPrefix = urlPrefix
		return nil
	}
}

// WithS3Storage selects the S3/MinIO media backend
func WithS3Storage(s3 S3Config) Option {
	return func(c *ServerConfig) error {
		if s3.Bucket == "" {
			return fmt.Errorf("S3 bucket cannot be empty")
		}
		if s3.Region == "" {
			s3.Region = "us-east-1"
		}
		c.StorageType = "s3"
		c.S3 = s3
		return nil
	}
}

// WithJWTSecret sets the HMAC secret for admin tokens
func WithJWTSecret(secret string) Option {
	return func(c *ServerConfig) error {
		c.JWTSecret = secret
		return nil
	}
}

// WithGemini configures the chat assistant credentials
func WithGemini(apiKey, model string) Option {
	return func(c *ServerConfig) error {
		c.GeminiAPIKey = apiKey
		if model != "" {
			c.GeminiModel = model
		}
		return nil
	}
}
