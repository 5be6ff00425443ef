package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pkarpov/linkguard/internal/store"
)

// whitelistCmd and blacklistCmd share the same subcommand shape; only the
// bolt bucket differs.
var whitelistCmd = &cobra.Command{
	Use:   "whitelist",
	Short: "Manage trusted domains",
	Long: `Whitelisted domains short-circuit analysis to a safe verdict after a
re-verification pass. Matching is by substring in either direction, so an
entry covers its subdomains.`,
}

var blacklistCmd = &cobra.Command{
	Use:   "blacklist",
	Short: "Manage blocked domains",
	Long:  `Blacklisted domains always produce a dangerous verdict.`,
}

func init() {
	rootCmd.AddCommand(whitelistCmd)
	rootCmd.AddCommand(blacklistCmd)

	whitelistCmd.AddCommand(
		listAddCmd("whitelist", func(s *store.BoltStore) store.ListStore { return s.Whitelist() }),
		listRemoveCmd("whitelist", func(s *store.BoltStore) store.ListStore { return s.Whitelist() }),
		listShowCmd("whitelist", func(s *store.BoltStore) store.ListStore { return s.Whitelist() }),
	)
	blacklistCmd.AddCommand(
		listAddCmd("blacklist", func(s *store.BoltStore) store.ListStore { return s.Blacklist() }),
		listRemoveCmd("blacklist", func(s *store.BoltStore) store.ListStore { return s.Blacklist() }),
		listShowCmd("blacklist", func(s *store.BoltStore) store.ListStore { return s.Blacklist() }),
	)
}

type listSelector func(*store.BoltStore) store.ListStore

func withListStore(fn func(store.ListStore) error, selector listSelector) error {
	dir, err := defaultDataDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	bolt, err := store.NewBoltStore(filepath.Join(dir, "linkguard.db"))
	if err != nil {
		return fmt.Errorf("open list database: %w", err)
	}
	defer func() { _ = bolt.Close() }()
	return fn(selector(bolt))
}

func listAddCmd(name string, selector listSelector) *cobra.Command {
	return &cobra.Command{
		Use:   "add <domain>...",
		Short: fmt.Sprintf("Add domains to the %s", name),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withListStore(func(list store.ListStore) error {
				for _, domain := range args {
					if err := list.Add(strings.ToLower(domain)); err != nil {
						return fmt.Errorf("add %s: %w", domain, err)
					}
					fmt.Printf("added %s to %s\n", strings.ToLower(domain), name)
				}
				return nil
			}, selector)
		},
	}
}

func listRemoveCmd(name string, selector listSelector) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <domain>...",
		Short: fmt.Sprintf("Remove domains from the %s", name),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withListStore(func(list store.ListStore) error {
				for _, domain := range args {
					if err := list.Remove(strings.ToLower(domain)); err != nil {
						return fmt.Errorf("remove %s: %w", domain, err)
					}
					fmt.Printf("removed %s from %s\n", strings.ToLower(domain), name)
				}
				return nil
			}, selector)
		},
	}
}

func listShowCmd(name string, selector listSelector) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: fmt.Sprintf("Show all %s entries", name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withListStore(func(list store.ListStore) error {
				entries, err := list.Entries()
				if err != nil {
					return fmt.Errorf("read %s: %w", name, err)
				}
				if len(entries) == 0 {
					fmt.Printf("%s is empty\n", name)
					return nil
				}
				sort.Strings(entries)
				for _, e := range entries {
					fmt.Println(e)
				}
				return nil
			}, selector)
		},
	}
}
