// Package storage reads rendered asset metadata from Azure Blob Storage.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	"github.com/JaimeStill/palette/pkg/lifecycle"
)

// Properties describes a stored blob without downloading it.
type Properties struct {
	Key          string    `json:"key"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// System provides read access to the rendered asset container.
type System interface {
	// Start registers a startup check that the container is reachable.
	Start(lc *lifecycle.Coordinator) error
	// Properties returns blob metadata. Returns ErrNotFound if the blob does not exist.
	Properties(ctx context.Context, key string) (*Properties, error)
}

type azure struct {
	client    *azblob.Client
	container string
	logger    *slog.Logger
}

// New creates the Azure client from the configured connection string.
// No request is made until Start runs.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	client, err := azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &azure{
		client:    client,
		container: cfg.ContainerName,
		logger:    logger.With("system", "storage"),
	}, nil
}

func (a *azure) Start(lc *lifecycle.Coordinator) error {
	lc.OnStartup("storage", func(ctx context.Context) error {
		_, err := a.client.
			ServiceClient().
			NewContainerClient(a.container).
			GetProperties(ctx, nil)
		if err != nil {
			if bloberror.HasCode(err, bloberror.ContainerNotFound) {
				return fmt.Errorf("%w: %s", ErrContainerNotFound, a.container)
			}
			return fmt.Errorf("check container %s: %w", a.container, err)
		}

		a.logger.Debug("storage container ready", "container", a.container)
		return nil
	})

	return nil
}

func (a *azure) Properties(ctx context.Context, key string) (*Properties, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	resp, err := a.client.
		ServiceClient().
		NewContainerClient(a.container).
		NewBlobClient(key).
		GetProperties(ctx, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get blob properties %s: %w", key, err)
	}

	props := &Properties{Key: key}
	if resp.ContentType != nil {
		props.ContentType = *resp.ContentType
	}
	if resp.ContentLength != nil {
		props.Size = *resp.ContentLength
	}
	if resp.LastModified != nil {
		props.LastModified = *resp.LastModified
	}

	return props, nil
}

func validateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if strings.Contains(key, "..") {
		return ErrInvalidKey
	}
	return nil
}
