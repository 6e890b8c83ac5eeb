package main

import (
	"encoding/hex"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/mahdiidarabi/dstu4145/pkg/dstu4145"
)

var cmdPoint = &cli.Command{
	Name:  "point",
	Usage: "sub-commands for compressed points",
	Subcommands: []*cli.Command{
		{
			Name:      "decode",
			Usage:     "decompress a point on the --params curve",
			ArgsUsage: `<hex>`,
			Action:    runPointDecode,
		},
		{
			Name:  "encode",
			Usage: "compress a point on the --params curve",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "x", Usage: "affine x (hex)", Required: true},
				&cli.StringFlag{Name: "y", Usage: "affine y (hex)", Required: true},
			},
			Action: runPointEncode,
		},
	},
}

func runPointDecode(cctx *cli.Context) error {
	s := cctx.Args().First()
	if s == "" {
		return fmt.Errorf("need to provide an encoded point as an argument")
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	domain, err := loadDomain(cctx)
	if err != nil {
		return err
	}
	p, err := dstu4145.DecodePoint(nil, domain.Curve, b)
	if err != nil {
		return err
	}
	fmt.Fprintf(cctx.App.Writer, "x: %s\n", p.X())
	fmt.Fprintf(cctx.App.Writer, "y: %s\n", p.Y())
	return nil
}

func runPointEncode(cctx *cli.Context) error {
	domain, err := loadDomain(cctx)
	if err != nil {
		return err
	}
	x, err := intFlag(cctx, "x")
	if err != nil {
		return err
	}
	y, err := intFlag(cctx, "y")
	if err != nil {
		return err
	}
	p, err := domain.Curve.ValidatePoint(x, y)
	if err != nil {
		return err
	}
	b, err := dstu4145.EncodePoint(p)
	if err != nil {
		return err
	}
	fmt.Fprintln(cctx.App.Writer, hex.EncodeToString(b))
	return nil
}
