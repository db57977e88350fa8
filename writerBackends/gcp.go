package writerbackends

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"

	"pixurl/logger"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// UploadToGCSWithJSON uploads obj to a Google Cloud Storage bucket using a
// service account key. accessInfo keys: bucket, credentialsJSON (base64 or
// raw JSON) and prefix, endpoint (optional).
func UploadToGCSWithJSON(ctx context.Context, accessInfo map[string]string, obj Object) error {
	bucketName := accessInfo["bucket"]
	rawCreds := accessInfo["credentialsJSON"]
	if bucketName == "" || rawCreds == "" {
		return fmt.Errorf("missing required accessInfo keys: bucket, credentialsJSON")
	}
	objectName := joinKey(accessInfo["prefix"], obj.Name)

	credentialsJSON, err := base64.StdEncoding.DecodeString(rawCreds)
	if err != nil {
		credentialsJSON = []byte(rawCreds)
	}

	opts := []option.ClientOption{option.WithCredentialsJSON(credentialsJSON)}
	if endpoint := accessInfo["endpoint"]; endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return fmt.Errorf("storage.NewClient: %w", err)
	}
	defer client.Close()

	wc := client.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	wc.ContentType = obj.ContentType

	if _, err = io.Copy(wc, obj.Body); err != nil {
		wc.Close()
		return fmt.Errorf("io.Copy: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("Writer.Close: %w", err)
	}

	logger.Infof("Successfully uploaded object '%s' to bucket '%s'", objectName, bucketName)
	return nil
}
