package job

import (
	"bytes"
	"context"
	"fmt"

	"pixurl/config"
	"pixurl/credentials"
	"pixurl/failures"
	"pixurl/images"
	"pixurl/logger"
	"pixurl/manifest"
	"pixurl/models"
	"pixurl/presets"
	writerbackends "pixurl/writerBackends"
)

// ProcessJob builds the manifest for req and writes it to the target. It
// returns the object name written. Failures are recorded in the failure store.
func ProcessJob(ctx context.Context, client *images.Client, id string, req models.PublishRequest) (string, error) {
	object, err := publish(ctx, client, req)
	if err != nil {
		if storeErr := failures.StoreFailure(id, err, req); storeErr != nil {
			logger.Errorf("Failed to store failure for job %s: %v", id, storeErr)
		}
		return "", err
	}
	return object, nil
}

func publish(ctx context.Context, client *images.Client, req models.PublishRequest) (string, error) {
	opts, err := presets.Resolve(req.Preset, req.Options)
	if err != nil {
		return "", fmt.Errorf("failed to resolve preset: %w", err)
	}

	m := manifest.Build(client, req.Source, opts)
	data, err := m.Bytes()
	if err != nil {
		return "", err
	}

	accessInfo, err := accessInfoFor(req.Target)
	if err != nil {
		return "", err
	}

	object := manifest.ObjectName(req.Name, req.Source)
	err = writerbackends.WriteObject(ctx, accessInfo, writerbackends.Object{
		Name:        object,
		ContentType: manifest.ContentType,
		Body:        bytes.NewReader(data),
	}, req.Target.Type)
	if err != nil {
		return "", err
	}
	return object, nil
}

// accessInfoFor resolves the backend credentials for target. Stored
// credentials win over inline ones.
func accessInfoFor(target models.PublishTarget) (map[string]string, error) {
	info := map[string]string{}
	for k, v := range target.Credentials {
		info[k] = v
	}
	if target.StorageKey != "" {
		stored, err := credentials.GetCredentials(target.StorageKey)
		if err != nil {
			return nil, fmt.Errorf("failed to load credentials: %w", err)
		}
		for k, v := range stored {
			info[k] = v
		}
	}

	// direct serving always writes under the configured serve dir
	if target.Type == "directServe" {
		info["baseDir"] = config.GetDirectServeBaseDir()
	}
	return info, nil
}
