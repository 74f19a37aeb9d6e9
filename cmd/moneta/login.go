package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/moneta-cli/moneta/internal/api"
	"github.com/moneta-cli/moneta/internal/cli"
	"github.com/moneta-cli/moneta/internal/session"
)

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the backend and save the session",
		RunE:  runLogin,
	}

	cmd.Flags().StringP("email", "e", "", "account email (prompted if omitted)")

	return cmd
}

func runLogin(cmd *cobra.Command, _ []string) error {
	url, err := apiBaseURL()
	if err != nil {
		return err
	}

	email, _ := cmd.Flags().GetString("email")
	if email == "" {
		fmt.Print("Email: ")
		reader := bufio.NewReader(os.Stdin)
		line, readErr := reader.ReadString('\n')
		if readErr != nil {
			return fmt.Errorf("failed to read email: %w", readErr)
		}
		email = strings.TrimSpace(line)
	}

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	resp, err := api.Login(cmd.Context(), url, api.LoginRequest{
		Email:    email,
		Password: string(password),
	})
	if err != nil {
		return err
	}

	if err := session.Save(&session.Session{
		Token:      resp.Token,
		UserID:     resp.UserID,
		Email:      resp.Email,
		LoggedInAt: time.Now(),
	}); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Println(cli.FormatSuccess("Logged in as " + resp.Email))
	return nil
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the saved session",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := session.Clear(); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Logged out"))
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(_ *cobra.Command, _ []string) error {
			sess, err := session.Load()
			if err != nil {
				return err
			}
			slog.Info("Current session",
				"email", sess.Email,
				"user_id", sess.UserID,
				"logged_in_at", sess.LoggedInAt.Format("2006-01-02 15:04"))
			return nil
		},
	}
}
