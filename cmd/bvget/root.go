package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/famomatic/bvget/client"
	"github.com/famomatic/bvget/internal/cookies"
)

func init() {
	rootCmd.Flags().IntP("log-level", "l", 5, "Log verbosity (2=error, 4=warn, 5=info, 6=debug, 7=trace)")
	lo.Must0(viper.BindPFlag("log-level", rootCmd.Flags().Lookup("log-level")))

	rootCmd.Flags().BoolP("select-quality", "s", false, "Pick the quality tier interactively")
	lo.Must0(viper.BindPFlag("select-quality", rootCmd.Flags().Lookup("select-quality")))

	rootCmd.Flags().StringP("download-dir", "d", "download", "Directory for fetched and merged files")
	lo.Must0(viper.BindPFlag("download-dir", rootCmd.Flags().Lookup("download-dir")))

	rootCmd.Flags().String("ffmpeg-path", "ffmpeg", "Path to the ffmpeg binary")
	lo.Must0(viper.BindPFlag("ffmpeg-path", rootCmd.Flags().Lookup("ffmpeg-path")))

	rootCmd.Flags().String("proxy", "", "Proxy URL for platform requests")
	lo.Must0(viper.BindPFlag("proxy", rootCmd.Flags().Lookup("proxy")))

	rootCmd.Flags().Bool("keep-temp", false, "Keep the fetched stream files after merging")
	lo.Must0(viper.BindPFlag("keep-temp", rootCmd.Flags().Lookup("keep-temp")))

	rootCmd.Flags().String("config", "config.json", "JSON config file holding SESSDATA")
	lo.Must0(viper.BindPFlag("config", rootCmd.Flags().Lookup("config")))

	rootCmd.Flags().String("cookies", "", "Netscape cookies.txt file to read SESSDATA from")
	lo.Must0(viper.BindPFlag("cookies", rootCmd.Flags().Lookup("cookies")))

	viper.SetEnvPrefix("bvget")
	lo.Must0(viper.BindEnv("sessdata"))
}

var rootCmd = &cobra.Command{
	Use:           "bvget [flags] video-id...",
	Short:         "Download bilibili videos as merged MP4 files",
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger(viper.GetInt("log-level"))
		loadConfigFile(log)
		checkFFmpeg(log)

		c := client.New(client.Config{
			SessData:      resolveSessData(log),
			ProxyURL:      viper.GetString("proxy"),
			DownloadDir:   viper.GetString("download-dir"),
			FFmpegPath:    viper.GetString("ffmpeg-path"),
			KeepTempFiles: viper.GetBool("keep-temp"),
			Logger:        log,
		})

		failed := runBatch(cmd.Context(), c, args, viper.GetBool("select-quality"), log)
		if len(failed) > 0 {
			return fmt.Errorf("failed ids: %s", strings.Join(failed, ", "))
		}
		return nil
	},
}

// Execute processes the CLI entry point.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfigFile(log *logrus.Logger) {
	path := viper.GetString("config")
	viper.SetConfigFile(path)
	viper.SetConfigType("json")
	if err := viper.ReadInConfig(); err != nil {
		log.Warnf("read config %s: %v (high quality tiers need a SESSDATA credential)", path, err)
	}
}

// resolveSessData looks for the credential in order: BVGET_SESSDATA env,
// the JSON config file, then a Netscape cookies.txt when one was given.
func resolveSessData(log *logrus.Logger) string {
	if sess := viper.GetString("sessdata"); sess != "" {
		return sess
	}
	path := viper.GetString("cookies")
	if path == "" {
		return ""
	}
	f, err := os.Open(path)
	if err != nil {
		log.Warnf("read cookies %s: %v", path, err)
		return ""
	}
	defer f.Close()
	jar, err := cookies.ParseNetscape(f)
	if err != nil {
		log.Warnf("parse cookies %s: %v", path, err)
		return ""
	}
	token := cookies.FindValue(jar, "SESSDATA")
	if token == "" {
		log.Warnf("no SESSDATA cookie in %s", path)
	}
	return token
}

func checkFFmpeg(log *logrus.Logger) {
	path := viper.GetString("ffmpeg-path")
	if _, err := exec.LookPath(path); err != nil {
		log.Warnf("ffmpeg not found at %q, merging will fail", path)
	}
}
