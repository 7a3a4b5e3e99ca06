package slogutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
	}{
		{"", 0},
		{"invalid", 0},
		{"100", 100},
		{"100B", 100},
		{"100b", 100},
		{"1KB", 1024},
		{"1kb", 1024},
		{"10KB", 10240},
		{"1MB", 1024 * 1024},
		{"10MB", 10 * 1024 * 1024},
		{"1GB", 1024 * 1024 * 1024},
		{"1.5MB", int64(1.5 * 1024 * 1024)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseSize(tt.input)
			if result != tt.expected {
				t.Errorf("ParseSize(%q) = %d, want %d", tt.input, result, tt.expected)
			}
		})
	}
}

func TestRotatingFile_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	rf, err := OpenRotatingFile(path, 100, 2)
	if err != nil {
		t.Fatalf("OpenRotatingFile failed: %v", err)
	}
	defer rf.Close()

	data := []byte("hello world\n")
	for i := 0; i < 5; i++ {
		if _, err := rf.Write(data); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("Log file should exist")
	}
	if _, err := os.Stat(path + ".1"); !os.IsNotExist(err) {
		t.Error("Backup .1 should not exist below the size limit")
	}
}

func TestRotatingFile_Rotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")

	// 50 byte max size and 2 backups
	rf, err := OpenRotatingFile(path, 50, 2)
	if err != nil {
		t.Fatalf("OpenRotatingFile failed: %v", err)
	}

	data := []byte(strings.Repeat("a", 29) + "\n")

	for i := 0; i < 5; i++ {
		if _, err := rf.Write(data); err != nil {
			t.Fatalf("Write %d failed: %v", i, err)
		}
	}

	_ = rf.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("Main log file should exist")
	}
	if _, err := os.Stat(path + ".1"); os.IsNotExist(err) {
		t.Error("Backup .1 should exist")
	}
	if _, err := os.Stat(path + ".2"); os.IsNotExist(err) {
		t.Error("Backup .2 should exist")
	}
	if _, err := os.Stat(path + ".3"); !os.IsNotExist(err) {
		t.Error("Backup .3 should have been dropped")
	}
}

func TestNewFileLoggerWithRotation(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		maxSize string
	}{
		{"with rotation", "1MB"},
		{"without rotation", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".log")

			logger, closer, err := NewFileLoggerWithRotation(path, slog.LevelDebug, FormatHuman, tt.maxSize, 3)
			if err != nil {
				t.Fatalf("NewFileLoggerWithRotation failed: %v", err)
			}

			logger.Info("written", "to", "file")
			_ = closer.Close()

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			if !strings.Contains(string(data), "written | to=file") {
				t.Errorf("log file = %q", data)
			}
		})
	}
}
