// Package cli provides the Cobra-based CLI for mealcart.
package cli

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"mealcart/cart"
	"mealcart/catalog"
	"mealcart/domain"
	"mealcart/store"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	rootCmd = &cobra.Command{
		Use:   "mealcart",
		Short: "Browse the menu, build meal-prep bags and check out a cart",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// IMPORTANT: allow tests and the shell to reuse a cart
			if shop != nil {
				return nil
			}

			if cfg := viper.GetString("config"); cfg != "" {
				viper.SetConfigFile(cfg)
				if err := viper.ReadInConfig(); err != nil {
					return err
				}
			}

			slog.SetDefault(slog.New(
				slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(viper.GetString("log-level"))}),
			))

			c, err := catalog.Load(viper.GetString("profile"))
			if err != nil {
				return err
			}

			if cartStore == nil {
				cartStore, err = store.NewStore(cmd.Context(), viper.GetString("store"), storeTarget(),
					store.WithRedisTTL(viper.GetDuration("redis-ttl")))
				if err != nil {
					return err
				}
			}

			s := cart.New(cmd.Context(), c, cartStore, slog.Default())
			mode, err := domain.ParseFulfillment(viper.GetString("fulfillment"))
			if err != nil {
				return err
			}
			if err := s.SetFulfillment(mode, viper.GetString("location")); err != nil {
				return err
			}
			cat, shop = c, s
			return nil
		},
	}

	cartStore domain.CartStore
	cat       *catalog.Catalog
	shop      *cart.Cart
)

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// storeTarget picks the flag that addresses the chosen backend
func storeTarget() string {
	switch viper.GetString("store") {
	case "redis":
		return viper.GetString("redis-url")
	case "sqlite":
		return viper.GetString("sqlite-path")
	}
	return viper.GetString("store-file")
}

// resetFlags puts every subcommand flag back to its default so a command run
// from the shell does not inherit the previous run's flags
func resetFlags(cmd *cobra.Command) {
	cmd.LocalNonPersistentFlags().VisitAll(resetFlag)
	for _, sub := range cmd.Commands() {
		sub.PersistentFlags().VisitAll(resetFlag)
		resetFlags(sub)
	}
}

func resetFlag(f *pflag.Flag) {
	if !f.Changed {
		return
	}
	if sv, ok := f.Value.(pflag.SliceValue); ok {
		_ = sv.Replace(nil)
	} else {
		_ = f.Value.Set(f.DefValue)
	}
	f.Changed = false
}

func init() {
	// shell
	shellCmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive shell mode sharing one cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := bufio.NewReader(os.Stdin)
			for {
				fmt.Print("mealcart> ")
				line, err := r.ReadString('\n')
				if err != nil {
					return nil
				}
				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}
				if line == "exit" || line == "quit" {
					return nil
				}
				resetFlags(rootCmd)
				rootCmd.SetArgs(strings.Fields(line))
				if err := rootCmd.Execute(); err != nil {
					fmt.Fprintln(os.Stderr, err)
				}
				rootCmd.SetArgs(nil)
			}
		},
	}
	rootCmd.AddCommand(shellCmd)

	rootCmd.PersistentFlags().String("profile", "sundevil", "catalog profile: "+strings.Join(catalog.Names(), "|"))
	rootCmd.PersistentFlags().String("store", "file", "store backend: memory|file|redis|sqlite")
	rootCmd.PersistentFlags().String("store-file", "data/cart.json", "file store path")
	rootCmd.PersistentFlags().String("redis-url", "redis://localhost:6379/0", "redis store url")
	rootCmd.PersistentFlags().Duration("redis-ttl", 0, "expire saved carts in redis after this long (0 keeps them)")
	rootCmd.PersistentFlags().String("sqlite-path", "data/cart.db", "sqlite store path")
	rootCmd.PersistentFlags().String("config", "", "config file")
	rootCmd.PersistentFlags().String("log-level", "info", "log level")
	rootCmd.PersistentFlags().String("fulfillment", "delivery", "delivery|pickup")
	rootCmd.PersistentFlags().String("location", "", "pickup/delivery location id (default: profile default)")

	for _, name := range []string{"profile", "store", "store-file", "redis-url", "redis-ttl", "sqlite-path", "config", "log-level", "fulfillment", "location"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
	viper.SetEnvPrefix("MEALCART")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func Execute() error {
	return rootCmd.Execute()
}
