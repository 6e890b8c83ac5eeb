// Package dstu4145 implements the DSTU 4145-2002 digital signature scheme, the
// Ukrainian standard for elliptic curve signatures over binary fields GF(2^m).
//
// The package covers the parts of the standard that are specific to it: the
// compressed point format, the ASN.1 schema of domain parameters
// (BinaryField, ECBinary and DSTU4145Params), and the signing and
// verification procedures with their truncation and retry rules. Field and
// curve arithmetic live in the gf2m and ec2m packages.
//
// # Quick Start
//
//	params, err := dstu4145.ParseParams(der)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	domain, err := params.Domain(nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	priv, err := dstu4145.GenerateKey(domain, rand.Reader)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	sig, err := dstu4145.Sign(rand.Reader, priv, digest)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := dstu4145.Verify(priv.Public(), digest, sig); err != nil {
//	    log.Fatal(err)
//	}
//
// Digests come from an external hash function and are read in little-endian
// byte order, as the standard prescribes. Public keys are Q = -(d·G).
//
// # Errors
//
// Errors returned by this package can be matched against an ErrorKind with
// errors.Is. Verify distinguishes malformed input (ErrSigOutOfRange,
// ErrSigInfinityPoint) from a signature that does not match
// (ErrSigVerificationFailed).
//
// # Batch Verification
//
// A Client reads signature files and checks them with a BatchStrategy:
//
//	client := dstu4145.NewClient().
//	    WithParser(&dstu4145.CSVParser{}).
//	    WithStrategy(dstu4145.NewParallelStrategy().WithWorkerConfig(dstu4145.WorkerConfig{NumWorkers: 8}))
//
//	report, err := client.VerifyFile(ctx, "signatures.csv", pub)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d valid, %d failed, %d malformed\n", report.Valid, report.Failed, report.Malformed)
package dstu4145
