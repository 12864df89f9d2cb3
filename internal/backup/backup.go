// Package backup dumps the transcript database and ships
// the compressed dump to the R2 backup bucket.
package backup

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"time"

	"github.com/vlatan/transcript-store/internal/config"
	"github.com/vlatan/transcript-store/internal/integrations/r2"
)

type Service struct {
	config *config.Config
	r2     r2.Service
}

// New creates a backup service
func New(cfg *config.Config, r2 r2.Service) *Service {
	return &Service{
		config: cfg,
		r2:     r2,
	}
}

// Run dumps the database to a file, compresses it
// and uploads the archive to the backup bucket
func (s *Service) Run(ctx context.Context) error {

	dbDump := fmt.Sprintf("%s-backup-%v", s.config.AppName, time.Now().Format("2006-01-02T15-04"))
	if err := s.DumpDatabase(dbDump); err != nil {
		return err
	}
	defer removeFile(dbDump)

	cDump := fmt.Sprintf("%s.gz", dbDump)
	if err := s.CompressFile(dbDump, cDump); err != nil {
		return err
	}
	defer removeFile(cDump)

	return s.UploadFile(ctx, cDump)
}

// DumpDatabase dumps the database to a file
func (s *Service) DumpDatabase(dest string) error {

	// Database URL
	dbUrl := fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		s.config.DBUsername,
		s.config.DBPassword,
		s.config.DBHost,
		s.config.DBPort,
		s.config.DBDatabase,
	)

	cmd := exec.Command("pg_dump", dbUrl, "-f", dest)

	// Capture both stdout and stderr
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pg_dump failed: %v\nstderr: %s\nstdout: %s",
			err, stderr.String(), stdout.String())
	}

	return nil
}

// CompressFile compresses a file
func (s *Service) CompressFile(src, dest string) error {

	// Open the original file for reading
	file, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open the file: %w", err)
	}
	defer file.Close()

	// Create the destination gzip file
	gzipFile, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create gzip file: %w", err)
	}
	defer gzipFile.Close()

	// Create a gzip writer that writes to the destination file
	gzipWriter, err := gzip.NewWriterLevel(gzipFile, gzip.BestCompression)
	if err != nil {
		return fmt.Errorf("failed to create gzip writer: %w", err)
	}
	defer gzipWriter.Close()

	// Copy the content from the source file to the gzip writer
	if _, err = io.Copy(gzipWriter, file); err != nil {
		return fmt.Errorf("failed to copy data to gzip writer: %w", err)
	}

	return nil
}

// UploadFile uploads the archive to the backup bucket
func (s *Service) UploadFile(ctx context.Context, path string) error {

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open the archive: %w", err)
	}
	defer file.Close()

	return s.r2.PutObject(
		ctx,
		s.config.R2BackupBucketName,
		path,
		file,
		"application/gzip",
		nil,
	)
}

func removeFile(path string) {
	if err := os.Remove(path); err != nil {
		log.Printf("Failed to remove %s: %v", path, err)
	}
}
