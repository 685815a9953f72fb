package cmd

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/skillpath/internal/config"
	"github.com/abhisek/skillpath/internal/server"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a development bearer token",
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configDir)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		userStr, _ := cmd.Flags().GetString("user")
		name, _ := cmd.Flags().GetString("name")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		userID := uuid.New()
		if userStr != "" {
			userID, err = uuid.Parse(userStr)
			if err != nil {
				return fmt.Errorf("invalid user id %q: %w", userStr, err)
			}
		}

		token, err := server.SignToken(cfg.JWTSecret, userID, name, ttl)
		if err != nil {
			return fmt.Errorf("sign token: %w", err)
		}

		fmt.Println("user:", userID)
		fmt.Println("token:", token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().String("user", "", "User ID (random when omitted)")
	tokenCmd.Flags().String("name", "", "Display name claim")
	tokenCmd.Flags().Duration("ttl", 24*time.Hour, "Token lifetime")
}
