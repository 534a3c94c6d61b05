package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gokatarajesh/trivia-api/internal/auth/jwt"
	"github.com/gokatarajesh/trivia-api/internal/config"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an editor token for question mutations",
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().String("subject", "", "Who the token is issued to")
	tokenCmd.Flags().Duration("ttl", 0, "Token lifetime (default 24h)")
	_ = tokenCmd.MarkFlagRequired("subject")
}

func runToken(cmd *cobra.Command, args []string) error {
	sec, err := config.Section[config.Security]()
	if err != nil {
		return err
	}
	if sec.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}

	subject, _ := cmd.Flags().GetString("subject")
	ttl, _ := cmd.Flags().GetDuration("ttl")

	tokens := jwt.NewManager(jwt.TokenConfig{
		Secret: []byte(sec.JWTSecret),
		Issuer: sec.JWTIssuer,
	})
	token, err := tokens.Issue(subject, jwt.RoleEditor, ttl)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
