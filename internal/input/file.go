package input

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/usgs/neic-glass3-sub002/internal/logx"
)

// Control lets a Source reach back into its owning Stage's worker
// without depending on package worker directly: Heartbeat extends the
// liveness deadline during a long blocking wait, RequestStop signals a
// graceful shutdown from inside FetchRaw.
type Control interface {
	Heartbeat()
	RequestStop()
}

// FileSource scans a directory for files of a configured extension,
// processes them line by line, and archives (moves) or deletes each
// file once fully consumed. If ShutdownWhenNoData is set, the source
// waits ShutdownWait once the directory and pending queue are both
// empty, then requests the owning Stage to stop.
type FileSource struct {
	InputDir           string
	ArchiveDir         string
	Format             string
	ShutdownWhenNoData bool
	// ShutdownWaitSeconds is the countdown, heartbeating once per
	// second, before the source requests a stop once both the
	// directory and the downstream queue are empty.
	ShutdownWaitSeconds int

	// PendingCount reports the number of records still queued
	// downstream; used only to decide whether it's safe to shut down
	// when no more files remain.
	PendingCount func() int

	ctrl Control
	log  *logx.Logger

	file          *os.File
	scanner       *bufio.Scanner
	fileName      string
	fileStartTime time.Time
	dataCount     int
}

// NewFileSource constructs a FileSource. ctrl is used to heartbeat
// during the shutdown-wait countdown and to request the stage stop
// once it elapses.
func NewFileSource(inputDir, archiveDir, format string, shutdownWhenNoData bool, shutdownWaitSeconds int, pendingCount func() int, ctrl Control, log *logx.Logger) *FileSource {
	return &FileSource{
		InputDir:            inputDir,
		ArchiveDir:          archiveDir,
		Format:              format,
		ShutdownWhenNoData:  shutdownWhenNoData,
		ShutdownWaitSeconds: shutdownWaitSeconds,
		PendingCount:        pendingCount,
		ctrl:                ctrl,
		log:                 log,
	}
}

// FetchRaw implements Source. Each call returns the next data line of
// the open file; once that file is exhausted it is archived or deleted
// and the next matching file is opened (returning ""); with no file
// left, the shutdown countdown runs if ShutdownWhenNoData is set.
func (f *FileSource) FetchRaw() (string, string) {
	if f.scanner != nil {
		for f.scanner.Scan() {
			line := f.scanner.Text()
			if len(line) == 0 {
				continue
			}
			// a line this short is a bare gpick-format timestamp
			// marker (e.g. "1425340828"), not a data line.
			if len(line) <= 11 {
				continue
			}
			f.dataCount++
			return line, f.Format
		}
		f.closeCurrentFile()
	}

	if name, ok := firstFileWithExtension(f.InputDir, f.Format); ok {
		file, err := os.Open(name)
		if err != nil {
			if f.log != nil {
				f.log.Warn().Str("file", name).Err(err).Log("input: failed to open file")
			}
			return "", f.Format
		}
		f.file = file
		f.scanner = bufio.NewScanner(file)
		f.scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
		f.fileName = name
		f.fileStartTime = time.Now()
		f.dataCount = 0
		if f.log != nil {
			f.log.Info().Str("file", name).Log("input: opened file")
		}
		return "", f.Format
	}

	if f.ShutdownWhenNoData && f.PendingCount() <= 0 {
		if f.log != nil {
			f.log.Warn().Log("input: no more input files or pending data, shutting down after wait")
		}
		for i := 0; i < f.ShutdownWaitSeconds; i++ {
			f.ctrl.Heartbeat()
			time.Sleep(time.Second)
		}
		if f.log != nil {
			f.log.Warn().Log("input: shutting down")
		}
		f.ctrl.RequestStop()
	}

	return "", f.Format
}

func (f *FileSource) closeCurrentFile() {
	if f.file == nil {
		return
	}
	elapsed := time.Since(f.fileStartTime)
	count := f.dataCount
	if count < 1 {
		count = 1
	}
	avg := elapsed.Seconds() / float64(count)
	if f.log != nil {
		f.log.Info().Str("file", f.fileName).Int("count", f.dataCount).
			Log("input: processed file in " + elapsed.String() + " (average " + time.Duration(avg*float64(time.Second)).String() + " per record)")
	}

	f.file.Close()

	move := f.ArchiveDir != ""
	if move {
		moveFileTo(f.fileName, f.ArchiveDir, f.log)
	} else {
		deleteFileFrom(f.fileName, f.log)
	}

	f.file = nil
	f.scanner = nil
	f.fileName = ""
}

func firstFileWithExtension(dir, ext string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	var names []string
	suffix := "." + ext
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), suffix) {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", false
	}
	sort.Strings(names)
	return filepath.Join(dir, names[0]), true
}

func moveFileTo(filename, destDir string, log *logx.Logger) {
	dest := filepath.Join(destDir, filepath.Base(filename))
	if err := os.Rename(filename, dest); err != nil {
		if log != nil {
			log.Error().Str("file", filename).Err(err).Log("input: unable to archive file")
		}
	}
}

func deleteFileFrom(filename string, log *logx.Logger) {
	if err := os.Remove(filename); err != nil {
		if log != nil {
			log.Error().Str("file", filename).Err(err).Log("input: unable to delete file")
		}
	}
}
