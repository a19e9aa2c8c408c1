// Command client is a small interactive driver over the filesystem's
// Service interface, for manual exercising of a running cluster.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"

	dfsclient "github.com/Brijeshlakkad/Distributed-File-System/client"
)

func main() {
	app := &cli.App{
		Name:  "dfs-client",
		Usage: "talk to a running naming server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "naming-addr", Required: true, Usage: "naming server's Service address (host:port)"},
		},
		Commands: []*cli.Command{
			{Name: "mkdir", ArgsUsage: "<path>", Action: withClient(mkdir)},
			{Name: "create", ArgsUsage: "<path>", Action: withClient(create)},
			{Name: "delete", ArgsUsage: "<path>", Action: withClient(del)},
			{Name: "list", ArgsUsage: "<path>", Action: withClient(list)},
			{Name: "cat", ArgsUsage: "<path>", Action: withClient(cat)},
			{
				Name:      "write",
				ArgsUsage: "<path> <offset> <data>",
				Action:    withClient(write),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func withClient(f func(*dfsclient.Client, *cli.Context) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		return f(dfsclient.New(c.String("naming-addr")), c)
	}
}

func mkdir(c *dfsclient.Client, ctx *cli.Context) error {
	_, err := c.Mkdir(ctx.Args().First())
	return err
}

func create(c *dfsclient.Client, ctx *cli.Context) error {
	_, err := c.Create(ctx.Args().First())
	return err
}

func del(c *dfsclient.Client, ctx *cli.Context) error {
	_, err := c.Delete(ctx.Args().First())
	return err
}

func list(c *dfsclient.Client, ctx *cli.Context) error {
	names, err := c.List(ctx.Args().First())
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func cat(c *dfsclient.Client, ctx *cli.Context) error {
	path := ctx.Args().First()
	size, err := c.Size(path)
	if err != nil {
		return err
	}
	data, err := c.Read(path, 0, int(size))
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func write(c *dfsclient.Client, ctx *cli.Context) error {
	path := ctx.Args().Get(0)
	offset, err := strconv.ParseInt(ctx.Args().Get(1), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid offset: %w", err)
	}
	return c.Write(path, offset, []byte(ctx.Args().Get(2)))
}
