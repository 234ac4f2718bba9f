package storage

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"image"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// BaselineUploader publishes reference page captures to blob storage together
// with a manifest describing every file.
type BaselineUploader interface {
	UploadBaseline(ctx context.Context, docID, pagesDir string) (*BaselineManifest, error)
}

// BaselineFile describes one uploaded page capture.
type BaselineFile struct {
	Path      string `json:"path"`
	SizeBytes int64  `json:"size_bytes"`
	SHA256    string `json:"sha256"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// BaselineManifest is stored as manifest.json alongside the page captures.
type BaselineManifest struct {
	DocID        string         `json:"doc_id"`
	DocRev       string         `json:"doc_rev"`
	Generator    string         `json:"generator"`
	BaselineType string         `json:"baseline_type"`
	Files        []BaselineFile `json:"files"`
}

type azureBaselineUploader struct {
	client    *azblob.Client
	container string
}

// NewAzureBaselineUploader creates an uploader backed by an Azure storage
// account using shared key credentials.
func NewAzureBaselineUploader(accountName, accountKey, container string) (BaselineUploader, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, err
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s.blob.core.windows.net", accountName),
		credential,
		nil,
	)
	if err != nil {
		return nil, err
	}

	return &azureBaselineUploader{client: client, container: container}, nil
}

var (
	docIDInvalidChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
	docIDRepeatedDash = regexp.MustCompile(`-{2,}`)
)

// NormalizeDocID converts an arbitrary document name into a storage-safe,
// lowercase identifier.
func NormalizeDocID(value string) (string, error) {
	normalized := docIDInvalidChars.ReplaceAllString(value, "-")
	normalized = strings.Trim(normalized, "-_.")
	normalized = docIDRepeatedDash.ReplaceAllString(normalized, "-")
	if normalized == "" {
		return "", fmt.Errorf("could not derive a valid doc_id from %q", value)
	}
	return strings.ToLower(normalized), nil
}

// SHA256File returns the digest of a file in "sha256:<hex>" form.
func SHA256File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	digest := sha256.New()
	if _, err := io.Copy(digest, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("sha256:%x", digest.Sum(nil)), nil
}

func imageDimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}

func (u *azureBaselineUploader) UploadBaseline(ctx context.Context, docID, pagesDir string) (*BaselineManifest, error) {
	docID, err := NormalizeDocID(docID)
	if err != nil {
		return nil, err
	}

	matches, err := filepath.Glob(filepath.Join(pagesDir, "page_*.png"))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no page captures found in %s", pagesDir)
	}
	sort.Strings(matches)

	manifest := &BaselineManifest{
		DocID:        docID,
		Generator:    "msword",
		BaselineType: "visual",
	}

	// The revision digest covers every page so any changed render produces a
	// new baseline folder.
	revDigest := sha256.New()

	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		digest, err := SHA256File(path)
		if err != nil {
			return nil, err
		}
		width, height, err := imageDimensions(path)
		if err != nil {
			return nil, err
		}
		revDigest.Write([]byte(digest))

		manifest.Files = append(manifest.Files, BaselineFile{
			Path:      filepath.Base(path),
			SizeBytes: info.Size(),
			SHA256:    digest,
			Width:     width,
			Height:    height,
		})
	}
	manifest.DocRev = fmt.Sprintf("sha256:%x", revDigest.Sum(nil))

	prefix := docID + "/" + strings.TrimPrefix(manifest.DocRev, "sha256:")[:16]
	for _, entry := range manifest.Files {
		f, err := os.Open(filepath.Join(pagesDir, entry.Path))
		if err != nil {
			return nil, err
		}
		_, err = u.client.UploadStream(ctx, u.container, prefix+"/"+entry.Path, f, nil)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", entry.Path, err)
		}
	}

	payload, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, err
	}
	if _, err := u.client.UploadBuffer(ctx, u.container, prefix+"/manifest.json", payload, nil); err != nil {
		return nil, fmt.Errorf("upload manifest: %w", err)
	}

	return manifest, nil
}
