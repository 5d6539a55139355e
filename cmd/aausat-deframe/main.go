package main

import (
	aausat "github.com/doismellburning/aausat/src"
)

/*------------------------------------------------------------------
 *
 * Name:        main
 *
 * Purpose:     Recover AAUSAT4 packets from candidate frame windows.
 *
 *----------------------------------------------------------------*/

func main() {
	aausat.DeframeMain()
}
