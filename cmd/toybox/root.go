package main

import (
	"encoding/json"
	"io"

	"github.com/ancientlore/toybox/site"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("TOYBOX")
	v.AutomaticEnv()
	v.SetDefault("root", ".")

	rootCmd := &cobra.Command{
		Use:   "toybox",
		Short: "Print the listings of a site",
		Long: `toybox reads a site folder and prints one of its listings as JSON:
the blog navigation, the posts collection or the friends list.

The site root and settings file can also be set with TOYBOX_ROOT and TOYBOX_CONFIG.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("root", ".", "root of the site")
	rootCmd.PersistentFlags().String("config", "", "settings file (default is toybox.toml in the root)")
	rootCmd.PersistentFlags().Bool("verbose", false, "log warnings about degraded pages")
	_ = v.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
	_ = v.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = v.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	open := func(cmd *cobra.Command) (*site.Site, error) {
		log := logrus.New()
		log.SetOutput(cmd.ErrOrStderr())
		if !v.GetBool("verbose") {
			log.SetLevel(logrus.ErrorLevel)
		}
		return site.Open(v.GetString("root"), v.GetString("config"), log)
	}

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "nav",
			Short: "List the blog documents, newest first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := open(cmd)
				if err != nil {
					return err
				}
				nav, err := s.Nav()
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), nav)
			},
		},
		&cobra.Command{
			Use:   "posts",
			Short: "List the posts collection, newest first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := open(cmd)
				if err != nil {
					return err
				}
				entries, err := s.Posts(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), entries)
			},
		},
		&cobra.Command{
			Use:   "friends",
			Short: "List the friends of the site",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := open(cmd)
				if err != nil {
					return err
				}
				f, err := s.Friends()
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), f)
			},
		},
	)
	return rootCmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
