package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileWriter is an io.Writer that appends to a local file and rotates it
// by size, keeping a fixed number of numbered backups. It is the log
// sink used when the session is configured with a log file.
type FileWriter struct {
	mu       sync.Mutex
	file     *os.File
	path     string
	maxSize  int64
	maxFiles int
	written  int64
}

// FileConfig configures a FileWriter.
type FileConfig struct {
	Path     string // log file path
	MaxSize  int64  // max file size in bytes (default: 1MB)
	MaxFiles int    // number of rotated files to keep (default: 3)
}

// NewFileWriter opens (or creates) the log file for appending.
func NewFileWriter(cfg FileConfig) (*FileWriter, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("log file path not set")
	}
	maxSize := cfg.MaxSize
	if maxSize <= 0 {
		maxSize = 1 << 20
	}
	maxFiles := cfg.MaxFiles
	if maxFiles <= 0 {
		maxFiles = 3
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	fw := &FileWriter{
		file:     f,
		path:     cfg.Path,
		maxSize:  maxSize,
		maxFiles: maxFiles,
	}
	if info, err := f.Stat(); err == nil {
		fw.written = info.Size()
	}
	return fw, nil
}

// Write implements io.Writer.
func (fw *FileWriter) Write(p []byte) (int, error) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.file == nil {
		return 0, fmt.Errorf("log file closed")
	}

	n, err := fw.file.Write(p)
	if err != nil {
		return n, err
	}
	fw.written += int64(n)

	if fw.written >= fw.maxSize {
		if err := fw.rotate(); err != nil {
			return n, err
		}
	}
	return n, nil
}

// Close closes the log file. Further writes fail.
func (fw *FileWriter) Close() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.file == nil {
		return nil
	}
	err := fw.file.Close()
	fw.file = nil
	return err
}

func (fw *FileWriter) rotate() error {
	fw.file.Close()
	fw.file = nil

	for i := fw.maxFiles - 1; i > 0; i-- {
		old := fmt.Sprintf("%s.%d", fw.path, i)
		next := fmt.Sprintf("%s.%d", fw.path, i+1)
		os.Rename(old, next)
	}
	os.Rename(fw.path, fw.path+".1")
	os.Remove(fmt.Sprintf("%s.%d", fw.path, fw.maxFiles+1))

	f, err := os.OpenFile(fw.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("reopen rotated log file: %w", err)
	}
	fw.file = f
	fw.written = 0
	return nil
}
