package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"pitwall/pkg/bridge"
	"pitwall/pkg/config"
	"pitwall/pkg/engine"
	"pitwall/pkg/logger"
	"pitwall/pkg/publish"
	"pitwall/pkg/record"
	"pitwall/pkg/stream"
	"pitwall/pkg/ui"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout io.Writer, stderr io.Writer) int {
	if len(args) == 0 {
		return runWatch([]string{}, stdout, stderr)
	}

	switch args[0] {
	case "watch":
		return runWatch(args[1:], stdout, stderr)
	case "log":
		return runLog(args[1:], stdout, stderr)
	case "replay":
		return runReplay(args[1:], stdout, stderr)
	case "-h", "--help", "help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintln(stderr, "unknown command:", args[0])
		printUsage(stderr)
		return 2
	}
}

func runWatch(args []string, stdout io.Writer, stderr io.Writer) int {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", config.DefaultConfigPath, "TOML config path")
	addr := fs.String("addr", "", "UDP listen address (overrides config)")
	mock := fs.Bool("mock", false, "render a synthetic session instead of listening")
	debugLog := fs.String("debug-log", "", "write diagnostics to this file")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(*configPath, *addr, stderr)
	if err != nil {
		return 1
	}

	// The TUI owns the terminal, so diagnostics go to a file or nowhere.
	log := logrus.New()
	log.SetOutput(io.Discard)
	if *debugLog != "" {
		file, err := os.Create(*debugLog)
		if err != nil {
			fmt.Fprintln(stderr, "failed to open debug log:", err)
			return 1
		}
		defer file.Close()
		log.SetOutput(file)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	hub := engine.NewHub()
	go hub.Run(ctx)

	cleanup, err := startSinks(ctx, cfg, hub, log, stdout, stderr)
	if err != nil {
		return 1
	}
	defer cleanup()

	if *mock {
		go runMockSession(ctx, hub)
	} else {
		reader, err := stream.Listen(cfg.Stream.Addr)
		if err != nil {
			fmt.Fprintln(stderr, "failed to listen:", err)
			return 1
		}
		defer reader.Close()
		go pollLoop(ctx, reader, hub, log)
	}

	program := tea.NewProgram(ui.NewModel(hub.Subscribe(), cfg.UI.RefreshHz), tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		program.Quit()
	}()
	if _, err := program.Run(); err != nil {
		fmt.Fprintln(stderr, "ui error:", err)
		return 1
	}
	return 0
}

func runLog(args []string, stdout io.Writer, stderr io.Writer) int {
	fs := flag.NewFlagSet("log", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", config.DefaultConfigPath, "TOML config path")
	addr := fs.String("addr", "", "UDP listen address (overrides config)")
	out := fs.String("out", "", "JSONL output path (default: stdout)")
	mock := fs.Bool("mock", false, "log a synthetic session instead of listening")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(*configPath, *addr, stderr)
	if err != nil {
		return 1
	}

	log := logrus.New()
	log.SetOutput(stderr)

	var dst io.Writer = stdout
	if *out != "" {
		file, err := os.Create(*out)
		if err != nil {
			fmt.Fprintln(stderr, "failed to open output file:", err)
			return 1
		}
		defer file.Close()
		dst = file
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	hub := engine.NewHub()
	go hub.Run(ctx)

	cleanup, err := startSinks(ctx, cfg, hub, log, stdout, stderr)
	if err != nil {
		return 1
	}
	defer cleanup()

	writer := logger.NewJSONLWriter(dst)
	go writer.Consume(ctx, hub.Subscribe())

	if *mock {
		go runMockSession(ctx, hub)
	} else {
		reader, err := stream.Listen(cfg.Stream.Addr)
		if err != nil {
			fmt.Fprintln(stderr, "failed to listen:", err)
			return 1
		}
		defer reader.Close()
		go pollLoop(ctx, reader, hub, log)
	}

	<-ctx.Done()
	return 0
}

func runReplay(args []string, stdout io.Writer, stderr io.Writer) int {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	fs.SetOutput(stderr)

	file := fs.String("file", "", "session recording to replay")
	pace := fs.Bool("pace", false, "replay at the original capture rate")
	watch := fs.Bool("watch", false, "render the replay in the dashboard")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *file == "" {
		fmt.Fprintln(stderr, "replay requires --file")
		return 2
	}

	src, err := os.Open(*file)
	if err != nil {
		fmt.Fprintln(stderr, "failed to open recording:", err)
		return 1
	}
	defer src.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *watch {
		hub := engine.NewHub()
		go hub.Run(ctx)

		// Subscribe before the first feed is published, or the start of
		// the recording is lost.
		model := ui.NewModel(hub.Subscribe(), config.Default().UI.RefreshHz)
		go func() {
			_ = replayFeeds(ctx, record.NewReader(src), *pace, func(feed engine.Feed) error {
				hub.Publish(feed)
				return nil
			})
		}()

		program := tea.NewProgram(model, tea.WithAltScreen())
		go func() {
			<-ctx.Done()
			program.Quit()
		}()
		if _, err := program.Run(); err != nil {
			fmt.Fprintln(stderr, "ui error:", err)
			return 1
		}
		return 0
	}

	writer := logger.NewJSONLWriter(stdout)
	if err := replayFeeds(ctx, record.NewReader(src), *pace, writer.Write); err != nil {
		fmt.Fprintln(stderr, "replay failed:", err)
		return 1
	}
	return 0
}

// replayFeeds hands every recorded feed to emit in capture order, optionally
// sleeping the original inter-packet gaps.
func replayFeeds(ctx context.Context, r *record.Reader, pace bool, emit func(engine.Feed) error) error {
	var prev time.Time
	for {
		feed, err := r.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if pace && !prev.IsZero() {
			gap := feed.ReceivedAt.Sub(prev)
			if gap > 0 {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(gap):
				}
			}
		}
		prev = feed.ReceivedAt
		if err := emit(feed); err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// pollLoop drains the socket into the hub. Malformed datagrams are logged
// and skipped; socket failures end the loop.
func pollLoop(ctx context.Context, reader *stream.Reader, hub *engine.Hub, log *logrus.Logger) {
	for ctx.Err() == nil {
		pkt, err := reader.Poll()
		if err != nil {
			var nerr net.Error
			if errors.As(err, &nerr) || errors.Is(err, net.ErrClosed) {
				log.WithError(err).Error("udp read failed")
				return
			}
			log.WithError(err).Warn("dropping malformed datagram")
			continue
		}
		if pkt == nil {
			time.Sleep(time.Millisecond)
			continue
		}
		hub.Publish(engine.Feed{Packet: pkt, ReceivedAt: time.Now()})
	}
}

func loadConfig(path, addrOverride string, stderr io.Writer) (config.Config, error) {
	cfg, _, err := config.LoadOrDefault(path)
	if err != nil {
		fmt.Fprintln(stderr, "config error:", err)
		return config.Config{}, err
	}
	if addrOverride != "" {
		cfg.Stream.Addr = addrOverride
	}
	return cfg, nil
}

// startSinks wires the optional consumers the config enables. The returned
// cleanup closes whatever was opened.
func startSinks(ctx context.Context, cfg config.Config, hub *engine.Hub, log *logrus.Logger, stdout, stderr io.Writer) (func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if cfg.Log.Enabled {
		var dst io.Writer = stdout
		if cfg.Log.Path != "" {
			file, err := os.Create(cfg.Log.Path)
			if err != nil {
				fmt.Fprintln(stderr, "failed to open log file:", err)
				cleanup()
				return nil, err
			}
			closers = append(closers, func() { file.Close() })
			dst = file
		}
		go logger.NewJSONLWriter(dst).Consume(ctx, hub.Subscribe())
	}

	if cfg.Record.Enabled {
		file, err := os.Create(cfg.Record.Path)
		if err != nil {
			fmt.Fprintln(stderr, "failed to open recording:", err)
			cleanup()
			return nil, err
		}
		closers = append(closers, func() { file.Close() })
		writer := record.NewWriter(file)
		go func() {
			sub := hub.Subscribe()
			defer hub.Unsubscribe(sub)
			for {
				select {
				case <-ctx.Done():
					return
				case feed, ok := <-sub:
					if !ok {
						return
					}
					if err := writer.Record(feed); err != nil {
						log.WithError(err).Error("recording failed")
						return
					}
				}
			}
		}()
	}

	if cfg.Bridge.Enabled {
		server := bridge.NewServer(bridge.Config{
			WSAddr:  cfg.Bridge.WSAddr,
			Topic:   cfg.Bridge.Topic,
			SendBuf: cfg.Bridge.SendBuf,
		}, hub, log)
		go func() {
			if err := server.Run(ctx); err != nil {
				log.WithError(err).Error("bridge stopped")
			}
		}()
	}

	if cfg.NATS.Enabled {
		pub, err := publish.Connect(cfg.NATS.URL, cfg.NATS.SubjectPrefix, log)
		if err != nil {
			fmt.Fprintln(stderr, "failed to connect to nats:", err)
			cleanup()
			return nil, err
		}
		closers = append(closers, pub.Close)
		go pub.Consume(ctx, hub.Subscribe())
	}

	return cleanup, nil
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  pitwalld watch  [--config pitwall.toml] [--addr host:port] [--mock] [--debug-log file]")
	fmt.Fprintln(w, "  pitwalld log    [--config pitwall.toml] [--addr host:port] [--out file.jsonl] [--mock]")
	fmt.Fprintln(w, "  pitwalld replay --file session.pwr [--pace] [--watch]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  watch    render the live timing dashboard (default)")
	fmt.Fprintln(w, "  log      write every decoded packet as JSONL")
	fmt.Fprintln(w, "  replay   play back a recorded session")
}
