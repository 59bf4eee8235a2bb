package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/BrandonKowalski/carbonara/pkg/carbonara"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/catalog"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/constants"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/input"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/launcher"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/render"
)

const sdcard = "/mnt/SDCARD"

func main() {
	configPath := flag.String("config", sdcard+"/.userdata/carbonara.toml", "device configuration file")
	themePath := flag.String("theme", "", "theme file (default: <themes>/<display.theme>.toml)")
	themesDir := flag.String("themes", sdcard+"/System/themes", "directory of theme files")
	menuPath := flag.String("menu", "", "JSON menu description (default: list -roms)")
	romsDir := flag.String("roms", sdcard+"/Roms", "ROM library")
	coresDir := flag.String("cores", sdcard+"/System/cores", "per-system core catalogs")
	langDir := flag.String("lang", sdcard+"/System/lang", "translation files")
	logPath := flag.String("log", sdcard+"/.userdata/logs/carbonara.log", "log file")
	logLevel := flag.String("log-level", "", "debug, info, warn or error")
	rendererName := flag.String("renderer", "sdl", "sdl or term")
	exclude := flag.String("exclude", strings.Join(catalog.DefaultExcluded, ","), "comma separated extensions never listed")
	flag.Parse()

	opts := carbonara.Options{
		WindowTitle:        "carbonara",
		ConfigPath:         *configPath,
		ThemePath:          *themePath,
		ThemesDir:          *themesDir,
		MenuPath:           *menuPath,
		RomsDir:            *romsDir,
		CoresDir:           *coresDir,
		LanguagesDir:       *langDir,
		SelectionsPath:     sdcard + "/.userdata/selections.json",
		ResumePath:         sdcard + "/.userdata/resume.json",
		ExcludedExtensions: strings.Split(*exclude, ","),
		LogPath:            *logPath,
		LogLevel:           *logLevel,
		Platform:           os.Getenv(constants.PlatformEnvVar),
		Launcher:           launcher.NewExec(nil),
	}

	switch *rendererName {
	case "sdl":
		opts.WindowOptions = render.WindowOptions{Borderless: !constants.IsDevMode()}
	case "term":
		opts.Renderer = render.NewTermRenderer(os.Stdout, 640, 480)
		opts.Commands = input.NewLineSource(os.Stdin)
		opts.FrameInterval = 16 * time.Millisecond
	default:
		fmt.Fprintf(os.Stderr, "unknown renderer %q\n", *rendererName)
		os.Exit(2)
	}

	app, err := carbonara.Init(opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	reason, err := app.Run()
	app.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if reason == carbonara.ExitRestart {
		restart()
	}
}

// restart replaces the process with a fresh launcher.
func restart() {
	self, err := os.Executable()
	if err == nil {
		err = syscall.Exec(self, os.Args, os.Environ())
	}
	fmt.Fprintln(os.Stderr, "restart failed:", err)
	os.Exit(1)
}
