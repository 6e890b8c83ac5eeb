package main

import (
	"encoding/hex"
	"math/big"

	"github.com/mahdiidarabi/dstu4145/pkg/dstu4145"
	"github.com/mahdiidarabi/dstu4145/pkg/ec2m"
	"github.com/mahdiidarabi/dstu4145/pkg/gf2m"
)

func init() {
	d, err := standardDomain163()
	if err != nil {
		panic(err)
	}
	dstu4145.RegisterNamedCurve(dstu4145.CurveOID(0), d)
}

// standardDomain163 is named curve 0 of DSTU 4145: the 163-bit curve with
// the generator published alongside it.
func standardDomain163() (*dstu4145.Domain, error) {
	b, _ := new(big.Int).SetString("5FF6108462A2DC8210AB403925E638A19C1455D21", 16)
	n, _ := new(big.Int).SetString("400000000000000000002BEC12BE2262D39BCF14D", 16)
	g, _ := hex.DecodeString("02E2F85F5DD74CE983A5C4237229DAF8A3F35823BE")

	f, err := gf2m.NewField(163, 3, 6, 7)
	if err != nil {
		return nil, err
	}
	c, err := ec2m.NewCurve(f, big.NewInt(1), b)
	if err != nil {
		return nil, err
	}
	bp, err := dstu4145.DecodePoint(nil, c, g)
	if err != nil {
		return nil, err
	}
	return dstu4145.NewDomain(c, bp, n)
}
