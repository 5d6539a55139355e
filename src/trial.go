package aausat

/*------------------------------------------------------------------
 *
 * Purpose:	Decode a window when we don't know which frame size it holds.
 *
 * Description:	The receiver gets a window of bytes after each sync word
 *		but nothing on the air says how long the frame is.  Try each
 *		candidate geometry in turn and take the first one the block
 *		code accepts.
 *
 *		Long first because long frames are more common.  This is only
 *		a heuristic: a short frame could, with very small probability,
 *		pass as a long one.  The size field check in Decode catches
 *		most such cases.
 *
 *------------------------------------------------------------------*/

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Result of a trial decode.  Attempts lists every candidate tried,
// the successful one last.
type Result struct {
	Packet
	Geometry Geometry
	Attempts []Attempt
}

// TryDecode recovers a packet, tag not checked.
func (c *Codec) TryDecode(window []byte) (Result, error) {
	return c.try(window, false)
}

// TryDeframe recovers a packet and checks its tag if a key is configured.
func (c *Codec) TryDeframe(window []byte) (Result, error) {
	return c.try(window, true)
}

func (c *Codec) try(window []byte, authenticate bool) (Result, error) {
	var res Result

	for _, g := range candidateGeometries {
		var a = Attempt{Geometry: g}

		var n = c.FrameLength(g)
		if len(window) < n {
			a.Err = fmt.Errorf("%w: have %d bytes, %s frame needs %d", ErrGeometryMismatch, len(window), g, n)
			res.Attempts = append(res.Attempts, a)
			continue
		}

		var pkt, err = c.Decode(window[:n])
		a.BitCorrections = pkt.BitCorrections
		a.ByteCorrections = pkt.ByteCorrections

		if err != nil {
			a.Err = err
			res.Attempts = append(res.Attempts, a)
			continue
		}

		if authenticate && c.auth != nil {
			pkt.Data, err = c.auth.Verify(pkt.Data)
			if err != nil {
				// The block code was happy so the geometry is right.
				// Don't go looking for another interpretation.
				a.Err = err
				res.Attempts = append(res.Attempts, a)
				return Result{Attempts: res.Attempts}, &DecodeFailure{Attempts: res.Attempts}
			}
		}

		res.Attempts = append(res.Attempts, a)
		res.Packet = pkt
		res.Geometry = g
		return res, nil
	}

	return res, &DecodeFailure{Attempts: res.Attempts}
}

// WindowResult pairs the outcome of one window in DecodeWindows.
type WindowResult struct {
	Result
	Err error
}

/*------------------------------------------------------------------
 *
 * Function:	DecodeWindows
 *
 * Purpose:	Trial decode many windows at once.
 *
 * Inputs:	windows		- Candidate windows, e.g. overlapping ones
 *				  from adjacent sync tags.
 *		workers		- Maximum number decoded at the same time.
 *		authenticate	- Check tags, as TryDeframe.
 *
 * Returns:	One WindowResult per window, in input order.
 *		Decode failures are reported there, not as the error.
 *		The error is only set if ctx was cancelled, in which case
 *		windows not yet started are left empty.
 *
 *------------------------------------------------------------------*/

func (c *Codec) DecodeWindows(ctx context.Context, windows [][]byte, workers int, authenticate bool) ([]WindowResult, error) {
	var results = make([]WindowResult, len(windows))

	var g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))

	for i, w := range windows {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i].Result, results[i].Err = c.try(w, authenticate)
			return nil
		})
	}

	var err = g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	return results, err
}
