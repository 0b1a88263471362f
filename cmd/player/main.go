package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/mkolarik/sayso/internal/audio"
	"github.com/mkolarik/sayso/internal/clipboard"
	"github.com/mkolarik/sayso/internal/language"
	"github.com/mkolarik/sayso/internal/player"
	"github.com/mkolarik/sayso/internal/remote"
	"github.com/mkolarik/sayso/internal/speech"
)

func main() {
	var (
		configPath = flag.String("config", "", "config file path (default: user config dir)")
		shareURL   = flag.String("url", "", "share URL to restore state from")
		text       = flag.String("text", "", "initial text")
		lang       = flag.String("lang", "", "initial language code")
		auto       = flag.Bool("auto", false, "enable auto-play")
		remoteAddr = flag.String("remote", "", "remote-control listen address (overrides config; \"off\" disables)")
	)
	flag.Parse()

	logger := log.New(os.Stderr, "", log.LstdFlags)

	cfg, err := player.LoadConfig(*configPath)
	if err != nil {
		logger.Fatalf("config: %v", err)
	}
	if *remoteAddr != "" {
		cfg.RemoteAddr = *remoteAddr
	}

	synth := speech.NewClient(speech.Config{
		BaseURL: cfg.ServiceURL,
		Token:   cfg.ServiceToken,
	})

	ctrl := player.New(player.Options{
		Synthesizer: synth,
		Audio:       audio.NewCommandPlayer(logger),
		Logger:      logger,
		ShareBase:   cfg.ShareBaseURL,
		Copy:        clipboard.Copy,
		OnChange:    renderState,
	})
	defer ctrl.Close()

	if cfg.Language != "" {
		ctrl.SetLanguage(cfg.Language)
	}
	if *shareURL != "" {
		if err := ctrl.ApplyShareURL(*shareURL); err != nil {
			logger.Fatalf("share URL: %v", err)
		}
	}
	if *lang != "" && !ctrl.SetLanguage(*lang) {
		logger.Fatalf("unknown language %q (supported: %s)", *lang, supportedCodes())
	}
	if *auto {
		ctrl.SetAutoPlay(true)
	}
	if *text != "" {
		ctrl.SetText(*text)
	}

	var remoteSrv *http.Server
	if cfg.RemoteAddr != "" && cfg.RemoteAddr != "off" {
		rs := remote.NewServer(logger)
		ctrl.Attach(rs.Messages())

		mux := http.NewServeMux()
		mux.Handle("GET /control", rs)

		remoteSrv = &http.Server{
			Addr:              cfg.RemoteAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Printf("remote control listening on ws://%s/control", cfg.RemoteAddr)
			if err := remoteSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Printf("remote control: %v", err)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	printHelp()

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case line, ok := <-lines:
			if !ok {
				break loop
			}
			if !handleLine(ctrl, line) {
				break loop
			}
		}
	}

	if remoteSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = remoteSrv.Shutdown(shutdownCtx)
		cancel()
	}
}

// handleLine dispatches one input line. Slash-prefixed lines are commands,
// everything else replaces the text. Returns false to quit.
func handleLine(ctrl *player.Controller, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}
	if !strings.HasPrefix(line, "/") {
		ctrl.SetText(line)
		return true
	}

	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/play":
		if err := ctrl.Play("", ""); err != nil {
			color.Red("%v", err)
		}
	case "/stop":
		ctrl.Stop()
	case "/lang":
		if arg == "" {
			color.Yellow("usage: /lang <code> (supported: %s)", supportedCodes())
		} else if !ctrl.SetLanguage(arg) {
			color.Red("unknown language %q (supported: %s)", arg, supportedCodes())
		}
	case "/auto":
		switch arg {
		case "on":
			ctrl.SetAutoPlay(true)
		case "off":
			ctrl.SetAutoPlay(false)
		default:
			color.Yellow("usage: /auto on|off")
		}
	case "/url":
		fmt.Println(ctrl.ShareURL())
	case "/copy":
		if err := ctrl.CopyShareURL(); err != nil {
			color.Red("copy failed: %v", err)
		}
	case "/help":
		printHelp()
	case "/quit", "/exit":
		return false
	default:
		color.Yellow("unknown command %s (try /help)", cmd)
	}
	return true
}

func renderState(st player.State) {
	var parts []string
	parts = append(parts, color.CyanString("[%s]", st.Language))
	if st.AutoPlay {
		parts = append(parts, color.GreenString("auto"))
	}
	if st.Playing {
		parts = append(parts, color.GreenString("playing"))
	}
	if st.Copied {
		parts = append(parts, color.GreenString("copied!"))
	}
	if st.Err != "" {
		parts = append(parts, color.RedString(st.Err))
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", strings.Join(parts, " "), st.Text)
}

func supportedCodes() string {
	codes := make([]string, len(language.Supported))
	for i, l := range language.Supported {
		codes[i] = l.Code
	}
	return strings.Join(codes, ", ")
}

func printHelp() {
	fmt.Println("type text to set it, or: /play /stop /lang <code> /auto on|off /url /copy /quit")
}
