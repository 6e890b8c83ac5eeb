package main

import (
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/mahdiidarabi/dstu4145/pkg/dstu4145"
)

var cmdKeygen = &cli.Command{
	Name:  "keygen",
	Usage: "generate a key pair on the --params curve",
	Action: func(cctx *cli.Context) error {
		domain, err := loadDomain(cctx)
		if err != nil {
			return err
		}
		priv, err := dstu4145.GenerateKey(domain, nil)
		if err != nil {
			return err
		}
		fmt.Fprintf(cctx.App.Writer, "private: %s\n", hexText(priv.D))
		fmt.Fprintf(cctx.App.Writer, "public: %s\n", hex.EncodeToString(priv.Public().Bytes()))
		return nil
	},
}

var cmdSign = &cli.Command{
	Name:  "sign",
	Usage: "sign a digest and print r and s",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "key",
			Usage:    "private scalar d (hex)",
			Required: true,
			EnvVars:  []string{"DSTU4145_PRIVATE_KEY"},
		},
		&cli.StringFlag{
			Name:     "digest",
			Usage:    "digest to sign (hex)",
			Required: true,
		},
	},
	Action: func(cctx *cli.Context) error {
		domain, err := loadDomain(cctx)
		if err != nil {
			return err
		}
		d, err := intFlag(cctx, "key")
		if err != nil {
			return err
		}
		digest, err := hexFlag(cctx, "digest")
		if err != nil {
			return err
		}
		priv, err := dstu4145.NewPrivateKey(domain, d)
		if err != nil {
			return err
		}

		signer := dstu4145.NewSigner(dstu4145.WithLogger(slog.Default()))
		if err := signer.InitSign(priv, nil); err != nil {
			return err
		}
		sig, err := signer.Sign(digest)
		if err != nil {
			return err
		}
		fmt.Fprintf(cctx.App.Writer, "r: %s\n", hexText(sig.R))
		fmt.Fprintf(cctx.App.Writer, "s: %s\n", hexText(sig.S))
		return nil
	},
}

var pubFlag = &cli.StringFlag{
	Name:     "pub",
	Usage:    "compressed public key (hex)",
	Required: true,
	EnvVars:  []string{"DSTU4145_PUBLIC_KEY"},
}

func loadPublicKey(cctx *cli.Context, domain *dstu4145.Domain) (*dstu4145.PublicKey, error) {
	b, err := hexFlag(cctx, "pub")
	if err != nil {
		return nil, err
	}
	return dstu4145.ParsePublicKey(domain, nil, b)
}

var cmdVerify = &cli.Command{
	Name:  "verify",
	Usage: "verify a signature over a digest",
	Flags: []cli.Flag{
		pubFlag,
		&cli.StringFlag{Name: "digest", Usage: "signed digest (hex)", Required: true},
		&cli.StringFlag{Name: "r", Usage: "signature r (hex)", Required: true},
		&cli.StringFlag{Name: "s", Usage: "signature s (hex)", Required: true},
	},
	Action: func(cctx *cli.Context) error {
		domain, err := loadDomain(cctx)
		if err != nil {
			return err
		}
		pub, err := loadPublicKey(cctx, domain)
		if err != nil {
			return err
		}
		digest, err := hexFlag(cctx, "digest")
		if err != nil {
			return err
		}
		r, err := intFlag(cctx, "r")
		if err != nil {
			return err
		}
		s, err := intFlag(cctx, "s")
		if err != nil {
			return err
		}

		if err := dstu4145.Verify(pub, digest, &dstu4145.Signature{R: r, S: s}); err != nil {
			return err
		}
		fmt.Fprintln(cctx.App.Writer, "valid")
		return nil
	},
}

var cmdVerifyBatch = &cli.Command{
	Name:      "verify-batch",
	Usage:     "verify a JSON or CSV file of digest, r, s records",
	ArgsUsage: `<file>`,
	Flags: []cli.Flag{
		pubFlag,
		&cli.StringFlag{
			Name:  "format",
			Usage: "signature file format (json or csv)",
			Value: "json",
		},
		&cli.IntFlag{
			Name:    "workers",
			Usage:   "parallel workers (0 = number of CPUs, 1 = sequential)",
			EnvVars: []string{"DSTU4145_WORKERS"},
		},
		&cli.IntFlag{
			Name:  "max-records",
			Usage: "check at most this many records (0 = all)",
		},
	},
	Action: func(cctx *cli.Context) error {
		source := cctx.Args().First()
		if source == "" {
			return fmt.Errorf("need to provide a signature file as an argument")
		}
		domain, err := loadDomain(cctx)
		if err != nil {
			return err
		}
		pub, err := loadPublicKey(cctx, domain)
		if err != nil {
			return err
		}

		var parser dstu4145.SignatureParser
		switch cctx.String("format") {
		case "json":
			parser = &dstu4145.JSONParser{}
		case "csv":
			parser = &dstu4145.CSVParser{}
		default:
			return fmt.Errorf("unknown format: %s", cctx.String("format"))
		}

		config := dstu4145.WorkerConfig{
			NumWorkers: cctx.Int("workers"),
			MaxRecords: cctx.Int("max-records"),
		}
		var strategy dstu4145.BatchStrategy
		if config.NumWorkers == 1 {
			strategy = dstu4145.NewSequentialStrategy().WithWorkerConfig(config).WithLogger(slog.Default())
		} else {
			strategy = dstu4145.NewParallelStrategy().WithWorkerConfig(config).WithLogger(slog.Default())
		}

		client := dstu4145.NewClient().
			WithParser(parser).
			WithStrategy(strategy).
			WithLogger(slog.Default())
		report, err := client.VerifyFile(cctx.Context, source, pub)
		if err != nil {
			return err
		}

		w := cctx.App.Writer
		for _, res := range report.Results {
			if !res.Valid() {
				fmt.Fprintf(w, "record %d: %v\n", res.Index, res.Err)
			}
		}
		fmt.Fprintf(w, "valid: %d, failed: %d, malformed: %d, skipped: %d\n",
			report.Valid, report.Failed, report.Malformed, report.Skipped)
		if report.Valid != len(report.Results) {
			return fmt.Errorf("%d of %d records did not verify", len(report.Results)-report.Valid, len(report.Results))
		}
		return nil
	},
}
