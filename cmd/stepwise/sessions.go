package main

import (
	"os"

	"github.com/aretw0/stepwise/internal/cli"
	"github.com/spf13/cobra"
)

func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().String("redis", "", "Redis address for sessions (enables distributed locking)")
	cmd.Flags().String("redis-password", "", "Redis password")
	cmd.Flags().Int("redis-db", 0, "Redis database")
	cmd.Flags().Duration("session-ttl", 0, "Expire idle redis sessions after this long (0 keeps them)")
	cmd.Flags().String("sessions", "", "Directory for file-backed sessions")
	cmd.Flags().String("session-key", "", "Hex AES-256 key sealing stored scenarios (env STEPWISE_SESSION_KEY)")
	cmd.Flags().StringSlice("session-fallback-key", nil, "Previous session keys accepted on load")
}

func sessionOptions(cmd *cobra.Command) cli.SessionOptions {
	addr, _ := cmd.Flags().GetString("redis")
	password, _ := cmd.Flags().GetString("redis-password")
	db, _ := cmd.Flags().GetInt("redis-db")
	ttl, _ := cmd.Flags().GetDuration("session-ttl")
	dir, _ := cmd.Flags().GetString("sessions")
	key, _ := cmd.Flags().GetString("session-key")
	if key == "" {
		key = os.Getenv("STEPWISE_SESSION_KEY")
	}
	fallback, _ := cmd.Flags().GetStringSlice("session-fallback-key")

	return cli.SessionOptions{
		RedisAddr:     addr,
		RedisPassword: password,
		RedisDB:       db,
		TTL:           ttl,
		Dir:           dir,
		EncryptionKey: key,
		FallbackKeys:  fallback,
	}
}
