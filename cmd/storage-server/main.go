// Command storage-server runs a storage server: it serves Storage and
// Command over system-assigned ports backed by a pluggable storage.Backend,
// and registers with a naming server at startup.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/Brijeshlakkad/Distributed-File-System/internal/logging"
	"github.com/Brijeshlakkad/Distributed-File-System/storage"
	"github.com/Brijeshlakkad/Distributed-File-System/storage/local"
	"github.com/Brijeshlakkad/Distributed-File-System/storage/s3backend"
)

func main() {
	app := &cli.App{
		Name:  "storage-server",
		Usage: "run a storage server for the distributed filesystem",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "hostname", Required: true, Usage: "hostname this server advertises to clients"},
			&cli.StringFlag{Name: "naming-addr", Required: true, Usage: "naming server's Registration address (host:port)"},
			&cli.StringFlag{Name: "backend", Value: "local", Usage: "storage backend: local or s3"},
			&cli.StringFlag{Name: "root", Value: "./data", Usage: "local backend: root directory on the host filesystem"},
			&cli.StringFlag{Name: "s3-endpoint", Usage: "s3 backend: endpoint URL"},
			&cli.StringFlag{Name: "s3-bucket", Usage: "s3 backend: bucket name"},
			&cli.StringFlag{Name: "s3-access-key", Usage: "s3 backend: access key"},
			&cli.StringFlag{Name: "s3-secret-key", Usage: "s3 backend: secret key"},
			&cli.StringFlag{Name: "s3-region", Value: "us-east-1", Usage: "s3 backend: region"},
			&cli.StringFlag{Name: "log-level", Value: "info", Usage: "zap log level (debug, info, warn, error)"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	logger, err := logging.New("storage-server", c.String("log-level"))
	if err != nil {
		return err
	}
	defer logger.Sync()

	backend, err := buildBackend(c)
	if err != nil {
		return err
	}

	server := storage.NewServer(backend, "", "", logger)
	if err := server.Start(c.String("hostname"), c.String("naming-addr")); err != nil {
		return err
	}
	defer server.Stop()

	logger.Info("storage server ready")
	waitForShutdown()
	return nil
}

func buildBackend(c *cli.Context) (storage.Backend, error) {
	switch c.String("backend") {
	case "s3":
		return s3backend.New(context.Background(), s3backend.Config{
			Endpoint:  c.String("s3-endpoint"),
			Bucket:    c.String("s3-bucket"),
			AccessKey: c.String("s3-access-key"),
			SecretKey: c.String("s3-secret-key"),
			Region:    c.String("s3-region"),
		})
	case "local":
		if err := os.MkdirAll(c.String("root"), 0755); err != nil {
			return nil, err
		}
		return local.New(c.String("root"))
	default:
		return nil, fmt.Errorf("unknown backend %q", c.String("backend"))
	}
}

func waitForShutdown() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
}
