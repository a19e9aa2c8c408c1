// Command naming-server runs the naming server: the Service interface for
// clients and the Registration interface for storage servers, on the
// well-known ports in naming.NamingStubs.
package main

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/Brijeshlakkad/Distributed-File-System/internal/logging"
	"github.com/Brijeshlakkad/Distributed-File-System/internal/metrics"
	"github.com/Brijeshlakkad/Distributed-File-System/naming"
)

func main() {
	app := &cli.App{
		Name:  "naming-server",
		Usage: "run the naming server for the distributed filesystem",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "service-port",
				Value: naming.NamingStubs.ServicePort,
				Usage: "port the Service interface listens on",
			},
			&cli.IntFlag{
				Name:  "registration-port",
				Value: naming.NamingStubs.RegistrationPort,
				Usage: "port the Registration interface listens on",
			},
			&cli.StringFlag{
				Name:  "metrics-addr",
				Value: ":9100",
				Usage: "address the Prometheus metrics endpoint listens on",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
				Usage: "zap log level (debug, info, warn, error)",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	logger, err := logging.New("naming-server", c.String("log-level"))
	if err != nil {
		return err
	}
	defer logger.Sync()

	serviceAddr := net.JoinHostPort("", fmt.Sprint(c.Int("service-port")))
	registrationAddr := net.JoinHostPort("", fmt.Sprint(c.Int("registration-port")))

	server := naming.NewServer(serviceAddr, registrationAddr, logger)
	if err := server.Start(); err != nil {
		return err
	}
	defer server.Stop()

	serveMetrics(c.String("metrics-addr"), logger)

	logger.Info("naming server ready")
	waitForShutdown(logger)
	return nil
}

func serveMetrics(addr string, logger *zap.Logger) {
	go func() {
		if err := serveHTTP(addr); err != nil {
			logger.Warn("metrics server exited", zap.Error(err))
		}
	}()
}

func waitForShutdown(logger *zap.Logger) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	s := <-sig
	logger.Info("shutting down", zap.String("signal", s.String()))
}

func serveHTTP(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	return http.ListenAndServe(addr, mux)
}
