package pycforge

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ArtifactName returns the output artifact file name for an input file and
// a short version: the input's base name with a trailing ".py" stripped if
// present, then ".<short>.pyc" appended.
//
//	ArtifactName("src/hello.py", "3.8") == "hello.3.8.pyc"
//	ArtifactName("hello", "1.2")        == "hello.1.2.pyc"
func ArtifactName(inputPath, short string) string {
	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, ".py")
	return base + "." + short + ".pyc"
}

// fileExists reports whether path names an existing regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// dirExists reports whether path names an existing directory.
func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// copyFile copies a regular file, truncating any existing destination and
// preserving the source mode bits.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// wrapOutput attaches a command's combined output to its exit error, so
// short-lived tools like tar and patch surface their complaint directly.
func wrapOutput(err error, output []byte) error {
	trimmed := strings.TrimSpace(string(output))
	if trimmed == "" {
		return err
	}
	return fmt.Errorf("%w\n%s", err, trimmed)
}

// runLogged runs a command with its combined output appended to a log
// file. The log is kept on success as well as failure; on failure it is
// the operator's primary diagnostic.
func runLogged(ctx context.Context, dir, logPath, name string, args ...string) error {
	logFile, err := os.OpenFile(logPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("cannot open log file %s: %w", logPath, err)
	}
	defer logFile.Close()

	fmt.Fprintf(logFile, "+ %s %s\n", name, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = logFile
	cmd.Stderr = logFile

	return cmd.Run()
}
