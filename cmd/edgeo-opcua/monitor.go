// Copyright 2025 Edgeo SCADA
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/edgeo-scada/opcua-monitor/internal/config"
	"github.com/edgeo-scada/opcua-monitor/internal/sink"
	"github.com/edgeo-scada/opcua-monitor/internal/transport"
	"github.com/edgeo-scada/opcua-monitor/subscription"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Monitor node attributes and forward every change",
	Long: `Monitor node attributes through server-side subscriptions and print
data changes and monitoring status events.

Items come from --node flags or from the items section of --config.

Examples:
  edgeo-opcua monitor -e opc.tcp://localhost:4840 -n "ns=2;i=1"
  edgeo-opcua monitor -e opc.tcp://localhost:4840 -n "ns=2;s=Temperature" -i 250 --exclusive
  edgeo-opcua monitor -n "ns=0;i=2258" -a DisplayName --nats nats://localhost:4222
  edgeo-opcua monitor --config monitor.yaml --listen :8080 --journal events.cbor`,
	RunE: runMonitor,
}

var (
	monitorNodeIDs   []string
	monitorAttribute string
	monitorInterval  float64
	monitorExclusive bool
	monitorJSON      bool
	natsURL          string
	natsSubject      string
	journalPath      string
	listenAddr       string
)

func init() {
	monitorCmd.Flags().StringArrayVarP(&monitorNodeIDs, "node", "n", nil, "Node ID(s) to monitor (can specify multiple)")
	monitorCmd.Flags().StringVarP(&monitorAttribute, "attribute", "a", config.DefaultAttribute, "Attribute to monitor: Value, DisplayName, BrowseName, AccessLevel, etc.")
	monitorCmd.Flags().Float64VarP(&monitorInterval, "interval", "i", 1000, "Publishing interval in milliseconds")
	monitorCmd.Flags().BoolVar(&monitorExclusive, "exclusive", false, "Give every item its own subscription")
	monitorCmd.Flags().BoolVar(&monitorJSON, "json", false, "Print events as JSON lines")
	monitorCmd.Flags().StringVar(&natsURL, "nats", "", "Publish events to this NATS server")
	monitorCmd.Flags().StringVar(&natsSubject, "nats-subject", "opcua", "Subject prefix for NATS events")
	monitorCmd.Flags().StringVar(&journalPath, "journal", "", "Append events to this CBOR journal")
	monitorCmd.Flags().StringVar(&listenAddr, "listen", "", "Serve events to websocket clients on this address (path /events)")

	viper.BindPFlag("nats", monitorCmd.Flags().Lookup("nats"))
	viper.BindPFlag("nats-subject", monitorCmd.Flags().Lookup("nats-subject"))
	viper.BindPFlag("journal", monitorCmd.Flags().Lookup("journal"))
	viper.BindPFlag("listen", monitorCmd.Flags().Lookup("listen"))
}

// monitorConfig merges the configuration file with the command line. Flags
// that were set explicitly win over the file.
func monitorConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	if path := viper.GetString("config"); path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = &config.Config{}
	}

	flags := cmd.Flags()
	if flags.Changed("endpoint") || cfg.Endpoint == "" {
		cfg.Endpoint = viper.GetString("endpoint")
	}
	if flags.Changed("timeout") || cfg.Timeout == 0 {
		cfg.Timeout = requestTimeout()
	}
	if u := viper.GetString("username"); u != "" {
		cfg.Username = u
		cfg.Password = viper.GetString("password")
	}
	if flags.Changed("interval") || cfg.PublishingInterval == 0 {
		cfg.PublishingInterval = time.Duration(monitorInterval * float64(time.Millisecond))
	}
	if flags.Changed("exclusive") {
		shared := !monitorExclusive
		cfg.Shared = &shared
	}
	for _, n := range monitorNodeIDs {
		cfg.Items = append(cfg.Items, config.Item{Node: n, Attribute: monitorAttribute})
	}
	if v := viper.GetString("nats"); v != "" {
		cfg.Sinks.NATS.URL = v
	}
	if cfg.Sinks.NATS.Subject == "" || flags.Changed("nats-subject") {
		cfg.Sinks.NATS.Subject = viper.GetString("nats-subject")
	}
	if v := viper.GetString("journal"); v != "" {
		cfg.Sinks.Journal.Path = v
	}
	if v := viper.GetString("listen"); v != "" {
		cfg.Sinks.Websocket.Listen = v
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openSinks builds the writers selected by the configuration. The returned
// function releases them.
func openSinks(cfg *config.Config, logger *slog.Logger) ([]sink.Writer, func(), error) {
	writers := []sink.Writer{sink.NewConsole(os.Stdout, monitorJSON)}
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if url := cfg.Sinks.NATS.URL; url != "" {
		nc, err := sink.ConnectNATS(url, logger)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		closers = append(closers, func() {
			if err := nc.Drain(); err != nil {
				logger.Warn("failed to drain NATS connection", slog.Any("error", err))
			}
		})
		writers = append(writers, sink.NewNATS(nc, cfg.Sinks.NATS.Subject))
		logger.Info("publishing to NATS", slog.String("url", url), slog.String("subject", cfg.Sinks.NATS.Subject))
	}

	if path := cfg.Sinks.Journal.Path; path != "" {
		j, err := sink.OpenJournal(path)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("failed to open journal: %w", err)
		}
		closers = append(closers, func() { j.Close() })
		writers = append(writers, j)
		logger.Info("writing journal", slog.String("path", path))
	}

	if addr := cfg.Sinks.Websocket.Listen; addr != "" {
		hub := sink.NewHub(logger)
		mux := http.NewServeMux()
		mux.Handle("/events", hub)
		srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("websocket server failed", slog.Any("error", err))
			}
		}()
		closers = append(closers, func() {
			hub.Close()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(ctx)
		})
		writers = append(writers, hub)
		logger.Info("serving websocket events", slog.String("listen", addr))
	}

	return writers, closeAll, nil
}

func runMonitor(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt, stopping...")
		cancel()
	}()

	logger := newLogger()
	cfg, err := monitorConfig(cmd)
	if err != nil {
		return err
	}

	conn, err := transport.NewConnection(cfg.Endpoint,
		buildConnectionOptions(cfg.Timeout, cfg.Username, cfg.Password, logger)...)
	if err != nil {
		return fmt.Errorf("failed to create connection: %w", err)
	}
	if err := conn.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer conn.Close(context.Background())

	writers, closeSinks, err := openSinks(cfg, logger)
	if err != nil {
		return err
	}
	defer closeSinks()

	metrics := subscription.NewMetrics()
	worker := subscription.NewWorker(conn, sink.NewAdapter(cfg.Nodes(), logger, writers...),
		subscription.WithLogger(logger),
		subscription.WithMetrics(metrics),
		subscription.WithRequestTimeout(cfg.Timeout),
	)
	// Server requests outlive the interrupt so that Close can still delete
	// the subscriptions.
	if err := worker.Start(context.Background()); err != nil {
		return fmt.Errorf("failed to start worker: %w", err)
	}

	for _, m := range cfg.Monitors() {
		if err := worker.EnableMonitoring(ctx, m.Handle, m.Attribute, m.Node, m.Params); err != nil {
			worker.Close(context.Background())
			return fmt.Errorf("failed to enable monitoring: %w", err)
		}
	}
	fmt.Fprintf(os.Stderr, "Monitoring %d items on %s (Ctrl+C to stop)...\n", len(cfg.Items), cfg.Endpoint)

	<-ctx.Done()

	closeCtx, closeCancel := context.WithTimeout(context.Background(), cfg.Timeout+5*time.Second)
	defer closeCancel()
	if subs, err := worker.Subscriptions(closeCtx); err == nil {
		printSubscriptions(os.Stderr, subs)
	}
	if err := worker.Close(closeCtx); err != nil {
		logger.Warn("failed to close worker", slog.Any("error", err))
	}
	printMetrics(os.Stderr, metrics)
	return nil
}
