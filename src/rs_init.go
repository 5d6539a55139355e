package aausat

// SPDX-FileCopyrightText: 2002 Phil Karn, KA9Q
// SPDX-FileCopyrightText: 2007 Jim McGuire KB3MPL
// SPDX-FileCopyrightText: The Samoyed Authors

// The Reed Solomon routines are based on work performed by Phil Karn,
// released under the GPL.

import (
	"errors"
)

// Parameters of the block code used on the downlink.
// This is the CCSDS RS(255,223) code in conventional (not dual) basis.

const RS_SYMSIZE = 8
const RS_GFPOLY = 0x187 // x^8 + x^7 + x^2 + x + 1
const RS_FCR = 112
const RS_PRIM = 11

// RS codec control block.
type rsCodec struct {
	mm      int    // Bits per symbol.
	nn      int    // Symbols per block, (1<<mm)-1.
	alphaTo []byte // log lookup table.
	indexOf []byte // Antilog lookup table.
	genpoly []byte // Generator polynomial, index form.
	nroots  int    // Number of generator roots = number of parity symbols.
	fcr     int    // First consecutive root, index form.
	prim    int    // Primitive element, index form.
	iprim   int    // prim-th root of 1, index form.
}

var errBadRSParams = errors.New("invalid reed-solomon parameters")

// The code is fixed so build it once.  Read only after this.
var ccsdsRS = mustInitRS(RS_SYMSIZE, RS_GFPOLY, RS_FCR, RS_PRIM, RS_LENGTH)

func mustInitRS(symsize, gfpoly, fcr, prim, nroots int) *rsCodec {
	var rs, err = initRS(symsize, gfpoly, fcr, prim, nroots)
	if err != nil {
		panic(err)
	}
	return rs
}

/* Initialize a Reed-Solomon codec
 *   symsize = symbol size, bits (1-8)
 *   gfpoly = Field generator polynomial coefficients
 *   fcr = first root of RS code generator polynomial, index form
 *   prim = primitive element to generate polynomial roots
 *   nroots = RS code generator polynomial degree (number of roots)
 */

func initRS(symsize, gfpoly, fcr, prim, nroots int) (*rsCodec, error) {
	if symsize < 1 || symsize > 8 {
		return nil, errBadRSParams
	}
	if fcr < 0 || fcr >= (1<<symsize) {
		return nil, errBadRSParams
	}
	if prim <= 0 || prim >= (1<<symsize) {
		return nil, errBadRSParams
	}
	if nroots < 0 || nroots >= (1<<symsize) {
		return nil, errBadRSParams // Can't have more roots than symbol values!
	}

	var rs = &rsCodec{
		mm:     symsize,
		nn:     (1 << symsize) - 1,
		fcr:    fcr,
		prim:   prim,
		nroots: nroots,
	}

	rs.alphaTo = make([]byte, rs.nn+1)
	rs.indexOf = make([]byte, rs.nn+1)

	// Generate Galois field lookup tables
	rs.indexOf[0] = byte(rs.nn) // log(zero) = -inf (A0)
	rs.alphaTo[rs.nn] = 0       // alpha**-inf = 0
	var sr = 1
	for i := 0; i < rs.nn; i++ {
		rs.indexOf[sr] = byte(i)
		rs.alphaTo[i] = byte(sr)
		sr <<= 1
		if sr&(1<<symsize) != 0 {
			sr ^= gfpoly
		}
		sr &= rs.nn
	}
	if sr != 1 {
		// field generator polynomial is not primitive!
		return nil, errBadRSParams
	}

	// Find prim-th root of 1, used in decoding
	var iprim = 1
	for iprim%prim != 0 {
		iprim += rs.nn
	}
	rs.iprim = iprim / prim

	// Form RS code generator polynomial from its roots
	rs.genpoly = make([]byte, nroots+1)
	rs.genpoly[0] = 1
	for i, root := 0, fcr*prim; i < nroots; i, root = i+1, root+prim {
		rs.genpoly[i+1] = 1

		// Multiply genpoly[] by  @**(root + x)
		for j := i; j > 0; j-- {
			if rs.genpoly[j] != 0 {
				rs.genpoly[j] = rs.genpoly[j-1] ^ rs.alphaTo[rs.modnn(int(rs.indexOf[rs.genpoly[j]])+root)]
			} else {
				rs.genpoly[j] = rs.genpoly[j-1]
			}
		}
		// genpoly[0] can never be zero
		rs.genpoly[0] = rs.alphaTo[rs.modnn(int(rs.indexOf[rs.genpoly[0]])+root)]
	}
	// convert genpoly[] to index form for quicker encoding
	for i := range rs.genpoly {
		rs.genpoly[i] = rs.indexOf[rs.genpoly[i]]
	}

	return rs, nil
}

// Reduce x modulo nn without a division.

func (rs *rsCodec) modnn(x int) int {
	for x >= rs.nn {
		x -= rs.nn
		x = (x >> rs.mm) + (x & rs.nn)
	}
	return x
}

// A0 is log(0) in index form.

func (rs *rsCodec) a0() byte {
	return byte(rs.nn)
}
