package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/matheus3301/hirechat/internal/app"
	"github.com/matheus3301/hirechat/internal/bus"
	"github.com/matheus3301/hirechat/internal/chat"
	"github.com/matheus3301/hirechat/internal/outbox"
	intsync "github.com/matheus3301/hirechat/internal/sync"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const requestTimeout = 30 * time.Second

var metricsAddr string

var messagesCmd = &cobra.Command{
	Use:   "messages <channel> [key]",
	Short: "Fetch and print a conversation once",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runMessages,
}

var sendCmd = &cobra.Command{
	Use:   "send <channel> [key] <text...>",
	Short: "Post a message to a conversation",
	Long: `Posts a message and prints the transcript the server returns afterwards.
Every attempt is recorded in the send log (see "hirectl outbox").`,
	Args: cobra.MinimumNArgs(2),
	RunE: runSend,
}

var watchCmd = &cobra.Command{
	Use:   "watch <channel> [key]",
	Short: "Poll a conversation and print new messages until interrupted",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve poll metrics on this address, e.g. 127.0.0.1:9464")
	rootCmd.AddCommand(messagesCmd, sendCmd, watchCmd)
}

func runMessages(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	route, _, err := e.route(args)
	if err != nil {
		return err
	}
	client, err := e.api()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
	defer cancel()
	msgs, err := client.FetchMessages(ctx, route.FetchPath)
	if err != nil {
		return err
	}

	if db, err := e.store(); err == nil {
		if err := intsync.NewEngine(db, nil, e.logger).StoreTranscript(route.Surface, route.Conversation, msgs); err != nil {
			e.logger.Warn("failed to cache transcript", zap.Error(err))
		}
	} else {
		e.logger.Warn("cache unavailable", zap.Error(err))
	}

	if jsonFlag {
		return outputJSON(msgs)
	}
	t, _ := chat.NewRenderer(route).Render(msgs)
	printTranscript(os.Stdout, t)
	return nil
}

// session runs a headless chat controller for one conversation, caching
// what it renders and logging sends like the interactive client.
type session struct {
	ctl    *chat.Controller
	engine *intsync.Engine
}

func (e *env) openSession(ctx context.Context, route chat.Route, out io.Writer, reg prometheus.Registerer) (*session, error) {
	client, err := e.api()
	if err != nil {
		return nil, err
	}
	db, err := e.store()
	if err != nil {
		return nil, err
	}
	if header, _ := client.CSRF(); header == "" {
		if _, _, err := client.DiscoverCSRF(ctx, e.settings.Dashboard().Path); err != nil {
			e.logger.Warn("csrf discovery failed", zap.Error(err))
		}
	}

	b := bus.New()
	engine := intsync.NewEngine(db, b, e.logger)
	engine.Start(ctx)

	ctl := chat.NewController(chat.Options{
		Surface:  e.settings.Surface,
		Interval: e.settings.Interval,
		Client:   client,
		Poller:   chat.NewPoller(),
		Pane:     newLinePane(out),
		SendLog:  outbox.NewLog(db, e.logger),
		Bus:      b,
		Metrics:  chat.NewMetrics(reg),
		Logger:   e.logger,
	})
	if err := ctl.Open(ctx, route.Conversation, ""); err != nil {
		engine.Stop()
		return nil, err
	}
	return &session{ctl: ctl, engine: engine}, nil
}

func (s *session) Close() {
	s.ctl.Close()
	s.engine.Stop()
}

func runSend(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	route, rest, err := e.route(args)
	if err != nil {
		return err
	}
	text := joinText(rest)
	if text == "" {
		return chat.ErrEmptyMessage
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
	defer cancel()

	out := io.Discard
	if !jsonFlag {
		out = os.Stdout
	}
	s, err := e.openSession(ctx, route, out, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.ctl.Send(ctx, text); err != nil {
		return err
	}
	if jsonFlag {
		return outputJSON(map[string]any{"sent": true, "conversation": route.Conversation.String()})
	}
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	route, _, err := e.route(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	if metricsAddr != "" {
		srv := app.NewMetricsServer(metricsAddr, reg, e.logger)
		if err := srv.Start(); err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Stop(shutdownCtx)
		}()
		fmt.Fprintf(os.Stderr, "metrics on http://%s/metrics\n", srv.Addr())
	}

	s, err := e.openSession(ctx, route, os.Stdout, reg)
	if err != nil {
		return err
	}
	defer s.Close()

	<-ctx.Done()
	return nil
}
