package aausat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_HexDump(t *testing.T) {
	assert.Empty(t, HexDump(nil))

	assert.Equal(t, "  000:  00 01 4e 90 00 3e d6                             ..N..>.\n",
		HexDump([]byte{0x00, 0x01, 0x4e, 0x90, 0x00, 0x3e, 0xd6}))

	var two = HexDump([]byte("AAUSAT4 downlink frame"))
	assert.Equal(t, "  000:  41 41 55 53 41 54 34 20 64 6f 77 6e 6c 69 6e 6b  AAUSAT4 downlink\n"+
		"  010:  20 66 72 61 6d 65                                 frame\n", two)
}
