package blobstore

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/sas"
	"github.com/google/uuid"
)

// Store is the image asset service: an opaque object store keyed by
// generated blob names.
type Store interface {
	// Upload stores data under a freshly generated key. The extension of
	// filename is kept so the stored object stays recognizable.
	Upload(ctx context.Context, data []byte, filename string) (string, error)
	// Delete removes the object. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error
	// SignedURL returns a time-limited read URL for the object.
	SignedURL(key string, ttl time.Duration) (string, error)
}

type AzureStore struct {
	client    *azblob.Client
	cred      *azblob.SharedKeyCredential
	account   string
	container string
}

func NewAzureStore(account, key, container string) (*AzureStore, error) {
	cred, err := azblob.NewSharedKeyCredential(account, key)
	if err != nil {
		return nil, fmt.Errorf("invalid storage credentials: %w", err)
	}
	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net", account)
	client, err := azblob.NewClientWithSharedKeyCredential(serviceURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client: %w", err)
	}
	return &AzureStore{
		client:    client,
		cred:      cred,
		account:   account,
		container: container,
	}, nil
}

func (s *AzureStore) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	_, err := s.client.CreateContainer(ctx, s.container, nil)
	if err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
		return "", fmt.Errorf("failed to ensure container: %w", err)
	}

	key := uuid.New().String() + filepath.Ext(filename)
	if _, err := s.client.UploadBuffer(ctx, s.container, key, data, nil); err != nil {
		return "", fmt.Errorf("failed to upload blob: %w", err)
	}
	return key, nil
}

func (s *AzureStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteBlob(ctx, s.container, key, nil)
	if bloberror.HasCode(err, bloberror.BlobNotFound) {
		return nil
	}
	return err
}

func (s *AzureStore) SignedURL(key string, ttl time.Duration) (string, error) {
	perms := sas.BlobPermissions{Read: true}
	values := sas.BlobSignatureValues{
		Protocol:      sas.ProtocolHTTPS,
		ExpiryTime:    time.Now().UTC().Add(ttl),
		ContainerName: s.container,
		BlobName:      key,
		Permissions:   perms.String(),
	}
	params, err := values.SignWithSharedKey(s.cred)
	if err != nil {
		return "", fmt.Errorf("failed to sign blob URL: %w", err)
	}
	return fmt.Sprintf("https://%s.blob.core.windows.net/%s/%s?%s",
		s.account, s.container, key, params.Encode()), nil
}
