package main

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/mahdiidarabi/dstu4145/internal/parser"
	"github.com/mahdiidarabi/dstu4145/pkg/dstu4145"
)

// loadDomain decodes --params and builds the curve it describes.
func loadDomain(cctx *cli.Context) (*dstu4145.Domain, error) {
	s := cctx.String("params")
	if s == "" {
		return nil, fmt.Errorf("need --params (or DSTU4145_PARAMS)")
	}
	der, err := parser.DecodeHex(s)
	if err != nil {
		return nil, fmt.Errorf("params: %w", err)
	}
	p, err := dstu4145.ParseParams(der)
	if err != nil {
		return nil, err
	}
	return p.Domain(nil)
}

// hexFlag reads a required hex string flag as bytes.
func hexFlag(cctx *cli.Context, name string) ([]byte, error) {
	s := cctx.String(name)
	if s == "" {
		return nil, fmt.Errorf("need --%s", name)
	}
	b, err := parser.DecodeHex(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return b, nil
}

// intFlag reads a required hex integer flag. Odd digit counts are fine.
func intFlag(cctx *cli.Context, name string) (*big.Int, error) {
	s := strings.TrimPrefix(strings.TrimSpace(cctx.String(name)), "0x")
	if s == "" {
		return nil, fmt.Errorf("need --%s", name)
	}
	v, err := parser.ParseBigInt("0x" + s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}

// hexText pads odd-length hex so the output always decodes byte-wise.
func hexText(x *big.Int) string {
	s := x.Text(16)
	if len(s)%2 == 1 {
		s = "0" + s
	}
	return s
}
