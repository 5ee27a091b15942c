package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"hospital-medicine-api/pkg/client"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd(viper.New()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "hospitalctl",
		Short:        "Command line client for the hospital API",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("server", "http://localhost:8080", "API base URL")
	rootCmd.PersistentFlags().String("token", "", "Bearer token")
	rootCmd.PersistentFlags().String("username", "", "Username used to obtain a token")
	rootCmd.PersistentFlags().String("password", "", "Password used to obtain a token")

	v.SetEnvPrefix("HOSPITALCTL")
	v.AutomaticEnv()
	for _, name := range []string{"server", "token", "username", "password"} {
		_ = v.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}

	rootCmd.AddCommand(loginCmd(v))
	rootCmd.AddCommand(listCmd(v))
	rootCmd.AddCommand(getCmd(v))
	rootCmd.AddCommand(createCmd(v))
	rootCmd.AddCommand(updateCmd(v))
	rootCmd.AddCommand(deleteCmd(v))

	return rootCmd
}

// newClient builds an API client, logging in first when only credentials are configured
func newClient(ctx context.Context, v *viper.Viper) (*client.Client, error) {
	c := client.New(v.GetString("server"), v.GetString("token"))
	if c.AccessToken != "" {
		return c, nil
	}

	username, password := v.GetString("username"), v.GetString("password")
	if username == "" {
		return nil, errors.New("no token configured: set --token or HOSPITALCTL_TOKEN, or provide --username and --password")
	}
	token, err := c.Token(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	c.AccessToken = token
	return c, nil
}
