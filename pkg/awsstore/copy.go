// Bulk recursive copy via the AWS CLI. The SDK is fine for single-object and
// bucket-level calls, but multi-terabyte reference trees are copied with
// "aws s3 cp --recursive", which parallelizes server-side copies internally.

package awsstore

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/daylilybio/refbucket/pkg/refdata"
	"github.com/pkg/errors"
)

const accelerateEndpoint = "https://s3-accelerate.amazonaws.com"

// A CommandRunner executes an external command with the given environment and
// returns its stdout and stderr. Injectable for tests.
type CommandRunner func(env []string, exe string, args ...string) (stdout []byte, stderr []byte, err error)

func runCommand(env []string, exe string, args ...string) ([]byte, []byte, error) {
	cmd := exec.Command(exe, args...)
	cmd.Env = env

	// Buffers rather than pipes: the CLI writes progress to stderr while
	// stdout is still open, and draining one pipe to EOF first can deadlock
	// once the other fills.
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// SetRunner replaces the command runner. Test hook.
func (s *AwsStore) SetRunner(r CommandRunner) {
	s.runner = r
}

func (s *AwsStore) CopyTree(id refdata.BucketIdentity, sourceURI string, destPrefix string) (refdata.CopyResult, error) {
	destURI := fmt.Sprintf("s3://%s/%s", id.Name, destPrefix)
	args := buildCopyArgs(sourceURI, destURI, s.useAcceleration)

	env := os.Environ()
	if s.profile != "" {
		env = append(env, "AWS_PROFILE="+s.profile)
	}

	commandLine := "aws " + strings.Join(args, " ")
	s.log.Debugf("running: %s", commandLine)
	if err := s.appendLog("$ " + commandLine + "\n"); err != nil {
		// The copy log is a convenience; never fail the copy over it.
		s.log.Warnf("copy log append failed: %v", err)
	}

	stdout, stderr, err := s.runner(env, "aws", args...)
	if logErr := s.appendLog(string(stdout) + string(stderr)); logErr != nil {
		s.log.Warnf("copy log append failed: %v", logErr)
	}

	result := refdata.CopyResult{FilesCopied: countCopied(stdout)}
	if err != nil {
		return result, &refdata.StorageError{
			Kind: refdata.StorageTransient,
			Err:  errors.Wrapf(err, "aws s3 cp for %s failed: %s", sourceURI, strings.TrimSpace(string(stderr))),
		}
	}
	return result, nil
}

// buildCopyArgs assembles the AWS CLI argument list for one recursive copy.
// The source bucket is requester-pays and metadata is rewritten so copied
// objects are owned outright by the destination.
func buildCopyArgs(sourceURI, destURI string, accelerate bool) []string {
	args := []string{
		"s3", "cp", sourceURI, destURI,
		"--recursive",
		"--request-payer", "requester",
		"--metadata-directive", "REPLACE",
	}
	if accelerate {
		args = append(args, "--endpoint-url", accelerateEndpoint)
	}
	return args
}

// countCopied counts per-file completion lines in aws s3 cp output.
func countCopied(stdout []byte) int {
	count := 0
	for _, line := range strings.Split(string(stdout), "\n") {
		if strings.HasPrefix(line, "copy:") {
			count++
		}
	}
	return count
}

func (s *AwsStore) appendLog(text string) error {
	if s.logFile == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.logFile), 0775); err != nil {
		return errors.Wrap(err, "Failed to create copy log directory")
	}
	f, err := os.OpenFile(s.logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrap(err, "Failed to open copy log "+s.logFile)
	}
	defer f.Close()
	if _, err := f.WriteString(text); err != nil {
		return errors.Wrap(err, "Failed to write copy log")
	}
	return nil
}
