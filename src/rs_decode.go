package aausat

// SPDX-FileCopyrightText: 2002 Phil Karn, KA9Q
// SPDX-FileCopyrightText: 2007 Jim McGuire KB3MPL
// SPDX-FileCopyrightText: The Samoyed Authors

/*--------------------------------------------------------------------------------
 *
 * Name:	decode
 *
 * Purpose:	Correct errors in a shortened RS block, in place.
 *
 * Inputs:	data	- nn-pad symbols: data followed by nroots parity.
 *		pad	- Number of virtual zero symbols in front of data.
 *
 * Returns:	Number of symbols corrected, or -1 if the block is uncorrectable.
 *		data is only modified when the block could be corrected.
 *
 * Description:	Syndromes, Berlekamp-Massey for the error locator, Chien
 *		search for its roots, Forney for the error values.  No erasures.
 *
 *		With too many errors the algorithm can sometimes "fix" one of
 *		the pad positions, which we know are zero.  That is treated as
 *		uncorrectable too.
 *
 *--------------------------------------------------------------------------------*/

func (rs *rsCodec) decode(data []byte, pad int) int {
	var nn = rs.nn
	var nroots = rs.nroots
	var A0 = rs.a0()

	var lambda [RS_LENGTH + 1]byte // Err Locator poly
	var s [RS_LENGTH]byte          // syndrome poly
	var b [RS_LENGTH + 1]byte
	var t [RS_LENGTH + 1]byte
	var omega [RS_LENGTH + 1]byte
	var root [RS_LENGTH]int
	var reg [RS_LENGTH + 1]byte
	var loc [RS_LENGTH]int

	// form the syndromes; i.e., evaluate data(x) at roots of g(x)
	for i := 0; i < nroots; i++ {
		s[i] = data[0]
	}

	for j := 1; j < nn-pad; j++ {
		for i := 0; i < nroots; i++ {
			if s[i] == 0 {
				s[i] = data[j]
			} else {
				s[i] = data[j] ^ rs.alphaTo[rs.modnn(int(rs.indexOf[s[i]])+(rs.fcr+i)*rs.prim)]
			}
		}
	}

	// Convert syndromes to index form, checking for nonzero condition
	var synError byte
	for i := 0; i < nroots; i++ {
		synError |= s[i]
		s[i] = rs.indexOf[s[i]]
	}

	if synError == 0 {
		// data[] is a codeword, nothing to correct.
		return 0
	}

	lambda[0] = 1

	for i := 0; i <= nroots; i++ {
		b[i] = rs.indexOf[lambda[i]]
	}

	// Berlekamp-Massey to find the error locator polynomial.
	var el = 0
	for r := 1; r <= nroots; r++ {
		// Compute discrepancy at the r-th step in poly-form
		var discr byte
		for i := 0; i < r; i++ {
			if lambda[i] != 0 && s[r-i-1] != A0 {
				discr ^= rs.alphaTo[rs.modnn(int(rs.indexOf[lambda[i]])+int(s[r-i-1]))]
			}
		}
		discr = rs.indexOf[discr] // Index form

		if discr == A0 {
			// B(x) <-- x*B(x)
			copy(b[1:nroots+1], b[:nroots])
			b[0] = A0
			continue
		}

		// T(x) <-- lambda(x) - discr*x*b(x)
		t[0] = lambda[0]
		for i := 0; i < nroots; i++ {
			if b[i] != A0 {
				t[i+1] = lambda[i+1] ^ rs.alphaTo[rs.modnn(int(discr)+int(b[i]))]
			} else {
				t[i+1] = lambda[i+1]
			}
		}

		if 2*el <= r-1 {
			el = r - el
			// B(x) <-- inv(discr) * lambda(x)
			for i := 0; i <= nroots; i++ {
				if lambda[i] == 0 {
					b[i] = A0
				} else {
					b[i] = byte(rs.modnn(int(rs.indexOf[lambda[i]]) - int(discr) + nn))
				}
			}
		} else {
			// B(x) <-- x*B(x)
			copy(b[1:nroots+1], b[:nroots])
			b[0] = A0
		}
		lambda = t
	}

	// Convert lambda to index form and compute deg(lambda(x))
	var degLambda = 0
	for i := 0; i <= nroots; i++ {
		lambda[i] = rs.indexOf[lambda[i]]
		if lambda[i] != A0 {
			degLambda = i
		}
	}
	if degLambda == 0 {
		return -1
	}

	// Find roots of the error locator polynomial by Chien search
	copy(reg[1:], lambda[1:nroots+1])
	var count = 0
	for i, k := 1, rs.iprim-1; i <= nn; i, k = i+1, rs.modnn(k+rs.iprim) {
		var q byte = 1 // lambda[0] is always 0
		for j := degLambda; j > 0; j-- {
			if reg[j] != A0 {
				reg[j] = byte(rs.modnn(int(reg[j]) + j))
				q ^= rs.alphaTo[reg[j]]
			}
		}
		if q != 0 {
			continue // Not a root
		}
		// store root (index-form) and error location number
		root[count] = i
		loc[count] = k
		count++
		// If we've already found max possible roots, stop looking.
		if count == degLambda {
			break
		}
	}

	if degLambda != count {
		// deg(lambda) unequal to number of roots => uncorrectable error detected
		return -1
	}

	for j := 0; j < count; j++ {
		if loc[j] < pad {
			return -1
		}
	}

	// Compute err evaluator poly omega(x) = s(x)*lambda(x) (modulo x**nroots)
	// in index form. Also find deg(omega).
	var degOmega = 0
	for i := 0; i < nroots; i++ {
		var tmp byte
		for j := min(degLambda, i); j >= 0; j-- {
			if s[i-j] != A0 && lambda[j] != A0 {
				tmp ^= rs.alphaTo[rs.modnn(int(s[i-j])+int(lambda[j]))]
			}
		}
		if tmp != 0 {
			degOmega = i
		}
		omega[i] = rs.indexOf[tmp]
	}
	omega[nroots] = A0

	// Compute error values in poly-form. num1 = omega(inv(X(l))), num2 =
	// inv(X(l))**(fcr-1) and den = lambda_pr(inv(X(l))) all in poly-form.
	// Work out every value before touching data so a late failure leaves it alone.
	var fix [RS_LENGTH]byte
	for j := count - 1; j >= 0; j-- {
		var num1 byte
		for i := degOmega; i >= 0; i-- {
			if omega[i] != A0 {
				num1 ^= rs.alphaTo[rs.modnn(int(omega[i])+i*root[j])]
			}
		}
		var num2 = rs.alphaTo[rs.modnn(root[j]*(rs.fcr-1)+nn)]

		// lambda[i+1] for i even is the formal derivative lambda_pr of lambda[i]
		var den byte
		for i := min(degLambda, nroots-1) &^ 1; i >= 0; i -= 2 {
			if lambda[i+1] != A0 {
				den ^= rs.alphaTo[rs.modnn(int(lambda[i+1])+i*root[j])]
			}
		}
		if den == 0 {
			return -1
		}

		if num1 != 0 {
			fix[j] = rs.alphaTo[rs.modnn(int(rs.indexOf[num1])+int(rs.indexOf[num2])+nn-int(rs.indexOf[den]))]
		}
	}

	for j := 0; j < count; j++ {
		data[loc[j]-pad] ^= fix[j]
	}

	return count
}
