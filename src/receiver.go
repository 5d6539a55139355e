package aausat

/*------------------------------------------------------------------
 *
 * Purpose:	Turn candidate windows from the demodulator into packets.
 *
 * Description:	Everything around the trial decoder that a running
 *		receiver wants: diagnostics, metrics, the packet log, and
 *		dropping the tag when we have no key to check it with.
 *
 *		A window that yields nothing is normal (noise, false sync)
 *		and is only mentioned at debug level.
 *
 *------------------------------------------------------------------*/

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

type Receiver struct {
	Codec   *Codec
	Logger  *log.Logger
	Metrics *Metrics   // Optional.
	Log     *PacketLog // Optional.

	// With no key the tag is still on the end of every packet.
	// Set this to cut it off without checking it.
	StripTag bool

	// For tests.
	now func() time.Time
}

func NewReceiver(codec *Codec, logger *log.Logger) *Receiver {
	return &Receiver{
		Codec:  codec,
		Logger: logger,
		now:    time.Now,
	}
}

/*------------------------------------------------------------------
 *
 * Function:	Process
 *
 * Purpose:	Trial decode one window.
 *
 * Returns:	The packet, and true if there was one.
 *
 *------------------------------------------------------------------*/

func (r *Receiver) Process(window []byte) (Packet, bool) {
	var res, err = r.Codec.TryDeframe(window)
	return r.handle(res, err)
}

// ProcessAll decodes windows in parallel and handles the results in order.
func (r *Receiver) ProcessAll(ctx context.Context, windows [][]byte, workers int) ([]Packet, error) {
	var results, err = r.Codec.DecodeWindows(ctx, windows, workers, true)

	var packets []Packet
	for _, wr := range results {
		if wr.Attempts == nil && wr.Err == nil {
			continue // Never started.
		}
		if pkt, ok := r.handle(wr.Result, wr.Err); ok {
			packets = append(packets, pkt)
		}
	}

	return packets, err
}

func (r *Receiver) handle(res Result, err error) (Packet, bool) {
	r.Metrics.Observe(res, err)

	for _, a := range res.Attempts {
		r.Logger.Debug("Trying to decode", "geometry", a.Geometry.Name, "fec_bytes", r.Codec.FrameLength(a.Geometry), "data_bytes", a.Geometry.DataBytes)
		if a.Err != nil {
			r.Logger.Debug("Decode attempt failed", "geometry", a.Geometry.Name, "err", a.Err)
		}
	}

	if err != nil {
		return Packet{}, false
	}

	var pkt = res.Packet
	if r.StripTag && !r.Codec.Authenticated() && len(pkt.Data) >= CSP_OVERHEAD+HMAC_LENGTH {
		pkt.Data = pkt.Data[:len(pkt.Data)-HMAC_LENGTH]
	}

	r.Logger.Info("FEC decoded OK", "geometry", res.Geometry.Name, "bit_errors", pkt.BitCorrections, "byte_errors", pkt.ByteCorrections, "length", len(pkt.Data))
	if r.Logger.GetLevel() <= log.DebugLevel {
		r.Logger.Debug("Packet\n" + HexDump(pkt.Data))
	}

	if r.Log != nil {
		var now = time.Now
		if r.now != nil {
			now = r.now
		}
		if logErr := r.Log.Write(now(), res, pkt.Data); logErr != nil {
			r.Logger.Error("Packet log write failed", "err", logErr)
		}
	}

	return pkt, true
}
