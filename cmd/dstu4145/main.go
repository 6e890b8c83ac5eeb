package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/mahdiidarabi/dstu4145/internal/logging"
)

func main() {
	if err := run(os.Args, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

var paramsFlag = &cli.StringFlag{
	Name:    "params",
	Usage:   "hex DER of the DSTU4145Params to work with",
	EnvVars: []string{"DSTU4145_PARAMS"},
}

func run(args []string, stdout io.Writer) error {
	app := cli.App{
		Name:      "dstu4145",
		Usage:     "DSTU 4145-2002 binary curve signatures",
		Writer:    stdout,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log verbosity (debug, info, warn, error)",
				Value:   "warn",
				EnvVars: []string{"DSTU4145_LOG_LEVEL"},
			},
			paramsFlag,
		},
		Before: func(cctx *cli.Context) error {
			configLogger(cctx, os.Stderr)
			return nil
		},
	}
	app.Commands = []*cli.Command{
		cmdParams,
		cmdKeygen,
		cmdSign,
		cmdVerify,
		cmdVerifyBatch,
		cmdPoint,
	}
	return app.Run(args)
}

func configLogger(cctx *cli.Context, writer io.Writer) *slog.Logger {
	level, ok := logging.ParseLevel(cctx.String("log-level"))
	logger := slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	if !ok {
		logger.Warn("unknown log level, using info", "level", cctx.String("log-level"))
	}
	return logger
}
