package dstu4145

import (
	"encoding/asn1"
	"fmt"
	"sync"
)

var (
	// OIDUA is the root of the Ukrainian cryptography arc.
	OIDUA = asn1.ObjectIdentifier{1, 2, 804, 2, 1, 1, 1}

	// OIDDSTU4145LE identifies DSTU 4145 with little-endian key encoding.
	OIDDSTU4145LE = asn1.ObjectIdentifier{1, 2, 804, 2, 1, 1, 1, 1, 3, 1, 1}

	// OIDDSTU4145BE identifies DSTU 4145 with big-endian key encoding.
	OIDDSTU4145BE = asn1.ObjectIdentifier{1, 2, 804, 2, 1, 1, 1, 1, 3, 1, 1, 1, 1}
)

// CurveOID returns the identifier of the i-th standard named curve,
// OIDDSTU4145LE.2.i.
func CurveOID(i int) asn1.ObjectIdentifier {
	oid := append(asn1.ObjectIdentifier(nil), OIDDSTU4145LE...)
	return append(oid, 2, i)
}

var namedCurves = struct {
	sync.RWMutex
	m map[string]*Domain
}{m: make(map[string]*Domain)}

// RegisterNamedCurve makes d available to parameter sets that name oid. A
// later registration for the same oid replaces the earlier one.
func RegisterNamedCurve(oid asn1.ObjectIdentifier, d *Domain) {
	namedCurves.Lock()
	defer namedCurves.Unlock()
	namedCurves.m[oid.String()] = d
}

// LookupNamedCurve returns the domain registered for oid.
func LookupNamedCurve(oid asn1.ObjectIdentifier) (*Domain, error) {
	namedCurves.RLock()
	defer namedCurves.RUnlock()
	d, ok := namedCurves.m[oid.String()]
	if !ok {
		return nil, makeError(ErrUnknownCurve, fmt.Sprintf("no curve registered for %s", oid))
	}
	return d, nil
}
