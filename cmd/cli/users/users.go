package users

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Haitham314s/blog-api/cmd/cli/config"
)

const tokenFileName = ".blog_token"

// ==========================
// CLI Command Init
// ==========================
func InitUsers(rootCmd *cobra.Command) {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users and authentication",
		Long: `Register or login a user to the Blog API.
Stores the access token locally for future commands.`,
	}

	usersCmd.AddCommand(
		registerCmd(),
		loginCmd(),
		logoutCmd(),
	)

	rootCmd.AddCommand(usersCmd)
}

// ==========================
// Register User
// ==========================
func registerCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		Long:  "Register a new user with name, email and password.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" || email == "" || password == "" {
				return fmt.Errorf("--name, --email and --password are required")
			}

			payload := map[string]string{
				"name":     name,
				"email":    email,
				"password": password,
			}
			body, _ := json.Marshal(payload)

			resp, err := http.Post(config.APIURL()+"/users/registration", "application/json", bytes.NewBuffer(body))
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusCreated {
				b, _ := io.ReadAll(resp.Body)
				return fmt.Errorf("API error: %s", string(b))
			}

			fmt.Println("User registered successfully! You can now login.")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "username")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")

	return cmd
}

// ==========================
// Login User
// ==========================
func loginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login an existing user",
		Long:  "Login with a username or email and save the access token locally for future CLI commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				return fmt.Errorf("--username and --password are required")
			}

			payload := map[string]string{
				"username": username,
				"password": password,
			}
			body, _ := json.Marshal(payload)

			resp, err := http.Post(config.APIURL()+"/login", "application/json", bytes.NewBuffer(body))
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				b, _ := io.ReadAll(resp.Body)
				return fmt.Errorf("API error: %s", string(b))
			}

			var result struct {
				AccessToken string `json:"access_token"`
				TokenType   string `json:"token_type"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
				return err
			}
			if result.AccessToken == "" {
				return fmt.Errorf("access token not returned by API")
			}

			if err := saveToken(result.AccessToken); err != nil {
				return err
			}

			fmt.Println("Login successful! Access token saved locally.")
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "username or email")
	cmd.Flags().StringVar(&password, "password", "", "password")

	return cmd
}

// ==========================
// Logout User
// ==========================
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout current user",
		Long:  "Remove the locally saved access token.",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := tokenPath()
			if _, err := os.Stat(path); os.IsNotExist(err) {
				fmt.Println("No user logged in.")
				return nil
			}

			if err := os.Remove(path); err != nil {
				return err
			}

			fmt.Println("Logged out successfully.")
			return nil
		},
	}
}

// ==========================
// Token Storage Helpers
// ==========================
func saveToken(token string) error {
	return os.WriteFile(tokenPath(), []byte(token), 0600)
}

func ReadToken() (string, error) {
	data, err := os.ReadFile(tokenPath())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func tokenPath() string {
	dir, _ := os.UserHomeDir()
	return filepath.Join(dir, tokenFileName)
}
