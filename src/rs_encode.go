package aausat

// SPDX-FileCopyrightText: 2002 Phil Karn, KA9Q
// SPDX-FileCopyrightText: 2007 Jim McGuire KB3MPL
// SPDX-FileCopyrightText: The Samoyed Authors

// Compute parity for data, a shortened block of nn-nroots-pad symbols.
// The pad symbols are virtual zeros in front of data and are never sent.

func (rs *rsCodec) encode(data []byte, bb []byte, pad int) {
	var nroots = rs.nroots
	var dataLen = rs.nn - nroots - pad

	// Clear out the FEC data area
	clear(bb[:nroots])

	for i := 0; i < dataLen; i++ {
		var feedback = rs.indexOf[data[i]^bb[0]]

		if feedback != rs.a0() { // feedback term is non-zero
			for j := 1; j < nroots; j++ {
				bb[j] ^= rs.alphaTo[rs.modnn(int(feedback)+int(rs.genpoly[nroots-j]))]
			}
		}

		// Shift
		copy(bb, bb[1:nroots])

		if feedback != rs.a0() {
			bb[nroots-1] = rs.alphaTo[rs.modnn(int(feedback)+int(rs.genpoly[0]))]
		} else {
			bb[nroots-1] = 0
		}
	}
}
