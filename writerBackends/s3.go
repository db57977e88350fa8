package writerbackends

import (
	"context"
	"fmt"

	"pixurl/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// UploadToS3WithCreds uploads obj to an S3 bucket with its own client.
// accessInfo keys: accessKey, secretKey, region, bucket (required), prefix
// and endpoint (optional; endpoint selects path-style addressing for
// S3-compatible stores).
func UploadToS3WithCreds(ctx context.Context, accessInfo map[string]string, obj Object) error {
	bucket := accessInfo["bucket"]
	region := accessInfo["region"]
	if bucket == "" || region == "" {
		return fmt.Errorf("missing required accessInfo keys: bucket, region")
	}
	key := joinKey(accessInfo["prefix"], obj.Name)

	opts := s3.Options{
		Region:      region,
		Credentials: credentials.NewStaticCredentialsProvider(accessInfo["accessKey"], accessInfo["secretKey"], ""),
	}
	if endpoint := accessInfo["endpoint"]; endpoint != "" {
		opts.BaseEndpoint = aws.String(endpoint)
		opts.UsePathStyle = true
	}

	uploader := manager.NewUploader(s3.New(opts))

	input := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   obj.Body,
	}
	if obj.ContentType != "" {
		input.ContentType = aws.String(obj.ContentType)
	}

	if _, err := uploader.Upload(ctx, input); err != nil {
		return fmt.Errorf("failed to upload object %s to bucket %s: %w", key, bucket, err)
	}

	logger.Infof("Successfully uploaded object '%s' to bucket '%s'", key, bucket)
	return nil
}
