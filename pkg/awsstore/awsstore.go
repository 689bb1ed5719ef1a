// AWS S3 specific functions. Implements the refdata.ObjectStore interface.

package awsstore

import (
	"bytes"
	"io/ioutil"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/daylilybio/refbucket/pkg/refdata"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type AwsStore struct {
	client  *s3.S3
	profile string
	// Route bulk copies through the accelerate endpoint.
	useAcceleration bool
	// Optional path capturing AWS CLI commands and their output.
	logFile string
	runner  CommandRunner
	log     logrus.FieldLogger
}

// NewStore builds an S3-backed store from a configuration subtree, see
// configs/refbucket.yaml for an example. Credentials come from the ambient
// environment or the named shared-config profile.
func NewStore(log logrus.FieldLogger, cfg *viper.Viper) (*AwsStore, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	profile := cfg.GetString("profile")
	region := cfg.GetString("region")

	sess, err := session.NewSessionWithOptions(session.Options{
		Config:            aws.Config{Region: aws.String(region)},
		Profile:           profile,
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, errors.Wrap(err, "Failed to create AWS session")
	}

	return &AwsStore{
		client:          s3.New(sess),
		profile:         profile,
		useAcceleration: cfg.GetBool("use-acceleration"),
		logFile:         cfg.GetString("log-file"),
		runner:          runCommand,
		log:             log,
	}, nil
}

func (s *AwsStore) BucketExists(id refdata.BucketIdentity) (bool, error) {
	_, err := s.client.HeadBucket(&s3.HeadBucketInput{Bucket: aws.String(id.Name)})
	if err == nil {
		return true, nil
	}
	if aerr, ok := err.(awserr.Error); ok {
		switch aerr.Code() {
		case s3.ErrCodeNoSuchBucket, "NotFound":
			return false, nil
		}
	}
	return false, classify(err)
}

func (s *AwsStore) ListTopLevel(id refdata.BucketIdentity) ([]string, error) {
	var folders []string
	input := &s3.ListObjectsV2Input{
		Bucket:    aws.String(id.Name),
		Delimiter: aws.String("/"),
	}
	err := s.client.ListObjectsV2Pages(input, func(page *s3.ListObjectsV2Output, last bool) bool {
		for _, cp := range page.CommonPrefixes {
			folders = append(folders, strings.TrimSuffix(aws.StringValue(cp.Prefix), "/"))
		}
		return true
	})
	if err != nil {
		return nil, classify(err)
	}
	return folders, nil
}

func (s *AwsStore) ReadObject(id refdata.BucketIdentity, key string) (*string, error) {
	out, err := s.client.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(id.Name),
		Key:    aws.String(key),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == s3.ErrCodeNoSuchKey {
			return nil, nil
		}
		return nil, classify(err)
	}
	defer out.Body.Close()

	data, err := ioutil.ReadAll(out.Body)
	if err != nil {
		return nil, &refdata.StorageError{Kind: refdata.StorageTransient, Err: err}
	}
	content := strings.TrimSpace(string(data))
	return &content, nil
}

func (s *AwsStore) WriteObject(id refdata.BucketIdentity, key string, content string) error {
	_, err := s.client.PutObject(&s3.PutObjectInput{
		Bucket: aws.String(id.Name),
		Key:    aws.String(key),
		Body:   bytes.NewReader([]byte(content)),
	})
	if err != nil {
		return classify(err)
	}
	return nil
}

func (s *AwsStore) CreateBucket(id refdata.BucketIdentity) error {
	input := &s3.CreateBucketInput{Bucket: aws.String(id.Name)}
	// us-east-1 is the API default and rejects an explicit constraint.
	if id.Region != "us-east-1" {
		input.CreateBucketConfiguration = &s3.CreateBucketConfiguration{
			LocationConstraint: aws.String(id.Region),
		}
	}

	s.log.Infof("creating bucket %s in %s", id.Name, id.Region)
	_, err := s.client.CreateBucket(input)
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == s3.ErrCodeBucketAlreadyOwnedByYou {
			// Retried clone runs hit this; the bucket is ours already.
			s.log.Debugf("bucket %s already owned, continuing", id.Name)
			return nil
		}
		return classify(err)
	}
	return nil
}

func (s *AwsStore) SetTransferAcceleration(id refdata.BucketIdentity, enabled bool) error {
	status := s3.BucketAccelerateStatusEnabled
	if !enabled {
		status = s3.BucketAccelerateStatusSuspended
	}
	s.log.Debugf("setting transfer acceleration on %s to %s", id.Name, status)
	_, err := s.client.PutBucketAccelerateConfiguration(&s3.PutBucketAccelerateConfigurationInput{
		Bucket: aws.String(id.Name),
		AccelerateConfiguration: &s3.AccelerateConfiguration{
			Status: aws.String(status),
		},
	})
	if err != nil {
		return classify(err)
	}
	return nil
}

// classify maps AWS error codes onto the core's storage error kinds so the
// planner never has to understand SDK errors.
func classify(err error) error {
	if aerr, ok := err.(awserr.Error); ok {
		switch aerr.Code() {
		case "AccessDenied", "Forbidden":
			return &refdata.StorageError{Kind: refdata.StorageAccessDenied, Err: aerr}
		case s3.ErrCodeNoSuchBucket, s3.ErrCodeNoSuchKey, "NotFound":
			return &refdata.StorageError{Kind: refdata.StorageNotFound, Err: aerr}
		}
	}
	return &refdata.StorageError{Kind: refdata.StorageTransient, Err: err}
}
