package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/urfave/cli/v2"

	"github.com/mahdiidarabi/dstu4145/internal/parser"
	"github.com/mahdiidarabi/dstu4145/pkg/dstu4145"
	"github.com/mahdiidarabi/dstu4145/pkg/ec2m"
	"github.com/mahdiidarabi/dstu4145/pkg/gf2m"
)

var cmdParams = &cli.Command{
	Name:  "params",
	Usage: "sub-commands for domain parameters",
	Subcommands: []*cli.Command{
		{
			Name:  "encode",
			Usage: "build DSTU4145Params from explicit curve values and print the DER",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:     "m",
					Usage:    "field degree",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "exponents",
					Usage:    "middle exponents of the reduction polynomial, e.g. 3,6,7",
					Required: true,
				},
				&cli.IntFlag{
					Name:  "a",
					Usage: "curve coefficient a (0 or 1)",
				},
				&cli.StringFlag{Name: "b", Usage: "curve coefficient b (hex)", Required: true},
				&cli.StringFlag{Name: "n", Usage: "base point order (hex)", Required: true},
				&cli.StringFlag{Name: "gx", Usage: "base point x (hex)", Required: true},
				&cli.StringFlag{Name: "gy", Usage: "base point y (hex)", Required: true},
				&cli.StringFlag{Name: "dke", Usage: "64-byte S-box table (hex), default if omitted"},
			},
			Action: runParamsEncode,
		},
		{
			Name:   "inspect",
			Usage:  "decode --params, validate the curve and print its values",
			Action: runParamsInspect,
		},
	},
}

func runParamsEncode(cctx *cli.Context) error {
	ks, err := parser.ParseIntList(cctx.String("exponents"))
	if err != nil {
		return fmt.Errorf("exponents: %w", err)
	}
	field, err := gf2m.NewField(cctx.Int("m"), ks...)
	if err != nil {
		return err
	}

	var vals [4]*big.Int
	for i, name := range []string{"b", "n", "gx", "gy"} {
		if vals[i], err = intFlag(cctx, name); err != nil {
			return err
		}
	}
	b, n, gx, gy := vals[0], vals[1], vals[2], vals[3]

	curve, err := ec2m.NewCurve(field, big.NewInt(int64(cctx.Int("a"))), b)
	if err != nil {
		return err
	}
	g, err := curve.ValidatePoint(gx, gy)
	if err != nil {
		return fmt.Errorf("base point: %w", err)
	}
	domain, err := dstu4145.NewDomain(curve, g, n)
	if err != nil {
		return err
	}
	ec, err := dstu4145.NewECBinary(domain)
	if err != nil {
		return err
	}

	var dke []byte
	if cctx.IsSet("dke") {
		if dke, err = hexFlag(cctx, "dke"); err != nil {
			return err
		}
	}
	p, err := dstu4145.NewECBinaryParams(ec, dke)
	if err != nil {
		return err
	}
	der, err := p.MarshalDER()
	if err != nil {
		return err
	}
	fmt.Fprintln(cctx.App.Writer, hex.EncodeToString(der))
	return nil
}

func runParamsInspect(cctx *cli.Context) error {
	der, err := hexFlag(cctx, "params")
	if err != nil {
		return err
	}
	p, err := dstu4145.ParseParams(der)
	if err != nil {
		return err
	}

	w := cctx.App.Writer
	if p.IsNamedCurve() {
		fmt.Fprintf(w, "named curve: %s\n", p.NamedCurve())
	} else {
		ec := p.ECBinary()
		fmt.Fprintf(w, "version: %d\n", ec.Version())
		fmt.Fprintf(w, "field: %s\n", ec.Field())
		fmt.Fprintf(w, "a: %d\n", ec.A())
		fmt.Fprintf(w, "b: %s\n", hex.EncodeToString(ec.B()))
		fmt.Fprintf(w, "n: %s\n", hexText(ec.N()))
		fmt.Fprintf(w, "bp: %s\n", hex.EncodeToString(ec.G()))
	}
	if dke := p.DKE(); bytes.Equal(dke, dstu4145.DefaultDKE()) {
		fmt.Fprintln(w, "dke: default")
	} else {
		fmt.Fprintf(w, "dke: %s\n", hex.EncodeToString(dke))
	}

	domain, err := p.Domain(nil)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "polynomial: %s\n", domain.Curve.Field())
	fmt.Fprintf(w, "gx: %s\n", domain.G.X())
	fmt.Fprintf(w, "gy: %s\n", domain.G.Y())
	return nil
}
