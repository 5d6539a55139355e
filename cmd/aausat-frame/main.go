package main

import (
	aausat "github.com/doismellburning/aausat/src"
)

/*------------------------------------------------------------------
 *
 * Name:        main
 *
 * Purpose:     Build AAUSAT4 downlink frames, optionally with noise.
 *
 *----------------------------------------------------------------*/

func main() {
	aausat.FrameMain()
}
