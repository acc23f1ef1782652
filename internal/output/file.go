package output

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/usgs/neic-glass3-sub002/internal/logx"
)

// File extensions per message type. StationInfoRequest/StationList are
// not written to disk by FileSink; they're routed by Stage but have no
// file representation.
const (
	extDetection  = "jsondetect"
	extRetraction = "jsonrtct"
)

// FileSink writes Detection and Retraction messages to
// <dir>/[<epoch>_]<id>.<ext>. Other routed types are silently ignored.
type FileSink struct {
	OutputDir string
	// TimestampFileName prepends the current epoch second to the file
	// name. glass-app turns it on when the output config omits
	// TimeStampFileName.
	TimestampFileName bool

	log *logx.Logger
}

// NewFileSink constructs a FileSink writing into dir.
func NewFileSink(dir string, timestampFileName bool, log *logx.Logger) *FileSink {
	return &FileSink{OutputDir: dir, TimestampFileName: timestampFileName, log: log}
}

// Send implements Sink.
func (f *FileSink) Send(msgType, id, body string) {
	var ext string
	switch msgType {
	case TypeDetection:
		ext = extDetection
	case TypeRetraction:
		ext = extRetraction
	default:
		// StationInfoRequest/StationList and anything else have no
		// file representation; ignore.
		return
	}

	name := id + "." + ext
	if f.TimestampFileName {
		name = strconv.FormatInt(time.Now().Unix(), 10) + "_" + name
	}
	path := filepath.Join(f.OutputDir, name)

	if f.log != nil {
		f.log.Info().Str("type", msgType).Str("id", id).Log("output: writing output file")
	}

	if err := f.writeFile(path, body); err != nil {
		// sleep a little while and try again, once.
		time.Sleep(100 * time.Millisecond)
		if err := f.writeFile(path, body); err != nil {
			if f.log != nil {
				f.log.Error().Str("file", path).Err(err).Log("output: failed to create file; second try")
			}
			return
		}
		if f.log != nil {
			f.log.Debug().Str("file", path).Log("output: created file; second try")
		}
	}
}

func (f *FileSink) writeFile(path, body string) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()
	if _, err := file.WriteString(body); err != nil {
		if f.log != nil {
			f.log.Error().Str("file", path).Err(err).Log("output: problem writing data to disk")
		}
		return nil
	}
	return nil
}
