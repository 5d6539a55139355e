package aausat

/*------------------------------------------------------------------
 *
 * Purpose:	Save received packets to a log file.
 *
 * Description: One CSV line per recovered packet, with the correction
 *		counts, for later processing.
 *
 *		There are two alternatives here.
 *
 *		--log-file file		Specify full file path.
 *
 *		--log-dir dir		Daily names will be created here.
 *
 *		Use one or the other but not both.
 *
 *------------------------------------------------------------------*/

import (
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lestrrat-go/strftime"
)

// Daily file name, UTC.
const DAILY_LOG_PATTERN = "%Y-%m-%d.log"

var packetLogHeader = []string{"utime", "isotime", "geometry", "bit_corrections", "byte_corrections", "length", "data"}

type PacketLog struct {
	dailyNames bool
	path       string // Directory for daily names, otherwise the file.
	pattern    *strftime.Strftime
	logger     *log.Logger

	fp        *os.File
	w         *csv.Writer
	openFname string
}

/*------------------------------------------------------------------
 *
 * Function:	NewPacketLog
 *
 * Inputs:	dailyNames	- True if daily names should be generated.
 *				  In this case path is a directory.
 *				  When false, path would be the file name.
 *
 *		path		- Log file name or just directory.
 *				  Use "." for current directory.
 *
 * Description:	A missing directory is created, one level only, like mkdir.
 *		A path that exists but is not a directory falls back to ".".
 *
 *------------------------------------------------------------------*/

func NewPacketLog(dailyNames bool, path string, logger *log.Logger) (*PacketLog, error) {
	var pattern, patternErr = strftime.New(DAILY_LOG_PATTERN)
	if patternErr != nil {
		return nil, patternErr
	}

	var l = &PacketLog{
		dailyNames: dailyNames,
		pattern:    pattern,
		logger:     logger,
	}

	if !dailyNames {
		logger.Info("Packet log", "file", path)
		l.path = path
		return l, nil
	}

	var stat, statErr = os.Stat(path)

	if statErr == nil {
		// Exists, but is it a directory?
		if stat.IsDir() {
			l.path = path
		} else {
			logger.Error("Log file location is not a directory, using \".\" instead.", "path", path)
			l.path = "."
		}
		return l, nil
	}

	// Doesn't exist.  Try to create it.  Parent directory must exist.
	var mkdirErr = os.Mkdir(path, 0755) //nolint:gosec
	if mkdirErr != nil {
		logger.Error("Failed to create log file location, using \".\" instead.", "path", path, "err", mkdirErr)
		l.path = "."
		return l, nil
	}

	logger.Info("Log file location has been created.", "path", path)
	l.path = path
	return l, nil
}

// Make sure the right file is open for the time given.

func (l *PacketLog) open(now time.Time) error {
	var fullPath = l.path
	var fname = ""

	if l.dailyNames {
		fname = l.pattern.FormatString(now)

		// Close current file if name has changed
		if l.fp != nil && fname != l.openFname {
			if err := l.Close(); err != nil {
				return err
			}
		}
		fullPath = filepath.Join(l.path, fname)
	}

	if l.fp != nil {
		return nil
	}

	// See if file already exists.
	// Write a header only if this will be the first line.
	var _, statErr = os.Stat(fullPath)
	var alreadyThere = statErr == nil

	l.logger.Info("Opening log file", "path", fullPath)

	var f, openErr = os.OpenFile(fullPath, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0644) //nolint:gosec
	if openErr != nil {
		return fmt.Errorf("can't open log file %q for write: %w", fullPath, openErr)
	}

	l.fp = f
	l.w = csv.NewWriter(f)
	l.openFname = fname

	if !alreadyThere {
		return l.w.Write(packetLogHeader)
	}
	return nil
}

// Write adds one line for a recovered packet.
func (l *PacketLog) Write(now time.Time, res Result, data []byte) error {
	now = now.UTC()

	if err := l.open(now); err != nil {
		return err
	}

	var record = []string{
		strconv.FormatInt(now.Unix(), 10),
		now.Format("2006-01-02T15:04:05Z"),
		res.Geometry.Name,
		strconv.FormatUint(uint64(res.BitCorrections), 10),
		strconv.Itoa(res.ByteCorrections),
		strconv.Itoa(len(data)),
		hex.EncodeToString(data),
	}

	if err := l.w.Write(record); err != nil {
		return err
	}
	l.w.Flush()
	return l.w.Error()
}

func (l *PacketLog) Close() error {
	if l.fp == nil {
		return nil
	}

	l.w.Flush()
	var err = l.fp.Close()
	l.fp = nil
	l.w = nil
	l.openFname = ""
	return err
}
