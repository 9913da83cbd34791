package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"github.com/ytget/media-downloader/internal/config"
	"github.com/ytget/media-downloader/internal/download"
	"github.com/ytget/media-downloader/internal/platform"
	"github.com/ytget/media-downloader/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.media-downloader"
	AppName = "Media Downloader"

	WindowWidth  = 560
	WindowHeight = 320
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:     "media-downloader [ffmpeg-location]",
		Short:   "Download media from a URL as audio or video",
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := config.LoadFile(configPath)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cfg.Engine.FFmpegLocation = args[0]
			}
			return run(cfg)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file path (default ~/"+config.DefaultConfigRelPath+")")

	return cmd
}

func run(cfg *config.File) error {
	fmt.Printf("%s v%s starting...\n", AppName, version)

	if err := platform.CreateDirectoryIfNotExists(cfg.Engine.WorkDir); err != nil {
		return fmt.Errorf("failed to ensure work dir: %w", err)
	}

	myApp := app.NewWithID(AppID)

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	probe := platform.NewPlaylistProbe()
	probe.SetTimeout(cfg.ProbeTimeout())

	runner := download.NewService(download.NewYTDLPEngine(""), download.Options{
		WorkDir:        cfg.Engine.WorkDir,
		OutputTemplate: cfg.Engine.OutputTemplate,
		FFmpegLocation: cfg.Engine.FFmpegLocation,
		Checker:        probe,
	})

	root := ui.NewRootUI(myWindow, myApp, runner, platform.NewSystemClipboard())
	myWindow.SetContent(root.Content())
	myWindow.SetOnClosed(root.Close)

	myWindow.ShowAndRun()
	return nil
}
