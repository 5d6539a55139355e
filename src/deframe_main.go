package aausat

/*------------------------------------------------------------------
 *
 * Purpose:	Command line front end for the receive side.
 *
 * Description:	Each input line is one candidate window in hex, as cut
 *		from the bit stream after a sync word.  Blank lines and
 *		lines starting with # are ignored.
 *
 *		Files named on the command line are decoded in parallel.
 *		Standard input is decoded a line at a time as it arrives so
 *		this can sit at the end of a demodulator pipeline.
 *
 *------------------------------------------------------------------*/

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
)

func DeframeMain() {
	var configFile = pflag.StringP("config", "c", "", "Configuration file.  Default aausat.yaml if present.")
	var key = pflag.StringP("key", "k", "", "HMAC passphrase.  Omit to skip authentication.")
	var noViterbi = pflag.Bool("no-viterbi", false, "Frames are not convolutionally coded.")
	var noReedSolomon = pflag.Bool("no-reed-solomon", false, "Frames carry no Reed-Solomon parity.")
	var noRandomizer = pflag.Bool("no-randomizer", false, "Frames are not randomized.")
	var stripTag = pflag.BoolP("strip-tag", "s", false, "Remove the unchecked tag when there is no key.")
	var workers = pflag.IntP("workers", "w", DEFAULT_WORKERS, "Windows decoded in parallel.")
	var logDir = pflag.StringP("log-dir", "l", "", "Write daily packet log files in this directory.")
	var logFile = pflag.StringP("log-file", "L", "", "Write packet log to this file.")
	var metricsAddr = pflag.StringP("metrics-addr", "m", "", "Serve Prometheus metrics here, e.g. :9120.")
	var testVector = pflag.BoolP("test-vector", "t", false, "Decode the built-in AAUSAT4 test vector and exit.")
	var debug = pflag.BoolP("debug", "d", false, "Show every decode attempt.")
	var quiet = pflag.BoolP("quiet", "q", false, "Only show errors.")
	var help = pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - Recover AAUSAT4 packets from candidate frame windows.\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [file ...]\n", os.Args[0])
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Each line of input is one window in hex.  With no file, or -, read stdin.\n")
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Example:  %s --test-vector\n", os.Args[0])
	}

	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(1)
	}

	var logger = newLogger("aausat-deframe", *debug, *quiet)

	var cfg, cfgErr = LoadConfig(*configFile)
	if cfgErr != nil {
		logger.Fatal("Bad configuration", "err", cfgErr)
	}

	var changed = pflag.CommandLine.Changed
	if changed("key") {
		cfg.Key = *key
	}
	if changed("no-viterbi") {
		cfg.Viterbi = !*noViterbi
	}
	if changed("no-reed-solomon") {
		cfg.ReedSolomon = !*noReedSolomon
	}
	if changed("no-randomizer") {
		cfg.Randomizer = !*noRandomizer
	}
	if changed("strip-tag") {
		cfg.StripTag = *stripTag
	}
	if changed("workers") {
		cfg.Workers = *workers
	}
	if changed("log-dir") {
		cfg.LogDir = *logDir
	}
	if changed("log-file") {
		cfg.LogFile = *logFile
	}
	if changed("metrics-addr") {
		cfg.MetricsAddr = *metricsAddr
	}

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Bad options", "err", err)
	}

	var ctx, stop = signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var inputs = pflag.Args()
	if *testVector {
		inputs = nil
	}

	var err = runDeframe(ctx, cfg, inputs, *testVector, os.Stdin, os.Stdout, logger)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("Failed", "err", err)
	}
}

func newLogger(prefix string, debug, quiet bool) *log.Logger {
	var logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          prefix,
	})
	switch {
	case debug:
		logger.SetLevel(log.DebugLevel)
	case quiet:
		logger.SetLevel(log.ErrorLevel)
	}
	return logger
}

func runDeframe(ctx context.Context, cfg Config, inputs []string, testVector bool, stdin io.Reader, stdout io.Writer, logger *log.Logger) error {
	var receiver = NewReceiver(NewCodec(cfg.CodecConfig), logger)
	receiver.StripTag = cfg.StripTag

	if cfg.MetricsAddr != "" {
		var reg = prometheus.NewRegistry()
		receiver.Metrics = NewMetrics(reg)

		var mux = http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		var srv = &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Metrics server stopped", "err", err)
			}
		}()
		defer srv.Close() //nolint:errcheck
		logger.Info("Serving metrics", "addr", cfg.MetricsAddr)
	}

	if cfg.LogDir != "" || cfg.LogFile != "" {
		var plog, err = NewPacketLog(cfg.LogDir != "", cfg.LogDir+cfg.LogFile, logger)
		if err != nil {
			return err
		}
		defer plog.Close() //nolint:errcheck
		receiver.Log = plog
	}

	if testVector {
		printPacket(stdout, "Original data", TestVector(), -1, -1)
		var pkt, ok = receiver.Process(TestVector())
		if !ok {
			return errors.New("test vector did not decode")
		}
		printPacket(stdout, "Decoded data", pkt.Data, int(pkt.BitCorrections), pkt.ByteCorrections)
		return nil
	}

	if len(inputs) == 0 || (len(inputs) == 1 && inputs[0] == "-") {
		return deframeStream(ctx, receiver, stdin, stdout)
	}

	var windows [][]byte
	for _, name := range inputs {
		var f, err = os.Open(name) //nolint:gosec
		if err != nil {
			return err
		}
		var w, readErr = readWindows(f, logger)
		f.Close() //nolint:errcheck,gosec
		if readErr != nil {
			return fmt.Errorf("%s: %w", name, readErr)
		}
		windows = append(windows, w...)
	}

	var packets, err = receiver.ProcessAll(ctx, windows, cfg.Workers)
	for _, pkt := range packets {
		printPacket(stdout, "Decoded data", pkt.Data, int(pkt.BitCorrections), pkt.ByteCorrections)
	}
	logger.Info("Done", "windows", len(windows), "packets", len(packets))

	return err
}

func deframeStream(ctx context.Context, receiver *Receiver, stdin io.Reader, stdout io.Writer) error {
	var scanner = bufio.NewScanner(stdin)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		var window, ok = parseWindowLine(scanner.Text(), receiver.Logger)
		if !ok {
			continue
		}
		if pkt, decoded := receiver.Process(window); decoded {
			printPacket(stdout, "Decoded data", pkt.Data, int(pkt.BitCorrections), pkt.ByteCorrections)
		}
	}
	return scanner.Err()
}

func readWindows(r io.Reader, logger *log.Logger) ([][]byte, error) {
	var windows [][]byte
	var scanner = bufio.NewScanner(r)
	for scanner.Scan() {
		if w, ok := parseWindowLine(scanner.Text(), logger); ok {
			windows = append(windows, w)
		}
	}
	return windows, scanner.Err()
}

func parseWindowLine(line string, logger *log.Logger) ([]byte, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil, false
	}

	var window, err = ParseHex(line)
	if err != nil {
		logger.Warn("Ignoring line that is not hex", "err", err)
		return nil, false
	}
	if len(window) > 2*MAX_FEC_LENGTH {
		logger.Warn("Ignoring window that is too long", "length", len(window))
		return nil, false
	}
	return window, true
}

// Correction counts below zero are left out.

func printPacket(w io.Writer, title string, data []byte, bitCorr, byteCorr int) {
	if bitCorr >= 0 && byteCorr >= 0 {
		fmt.Fprintf(w, "%s: (%d,%d)\n", title, bitCorr, byteCorr)
	} else {
		fmt.Fprintf(w, "%s:\n", title)
	}
	fmt.Fprintf(w, "%s\n", HexDump(data))
}
