package services

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/matchday-predictor/models"
	"github.com/Dosada05/matchday-predictor/repositories"
	"github.com/Dosada05/matchday-predictor/storage"
)

const cidPrefix = "sha256-"

// SnapshotService stores JSON documents under their content id and keeps a
// name -> latest cid index, so documents can be loaded by either.
type SnapshotService interface {
	Save(ctx context.Context, name, kind string, v interface{}) (string, error)
	Load(ctx context.Context, ref string, v interface{}) (*models.SnapshotRef, error)
	Latest(ctx context.Context, name string) (*models.SnapshotRef, error)
	URL(cid string) string
}

type snapshotService struct {
	store  storage.BlobStore
	refs   repositories.SnapshotRefRepository
	logger *slog.Logger
}

func NewSnapshotService(store storage.BlobStore, refs repositories.SnapshotRefRepository, logger *slog.Logger) SnapshotService {
	return &snapshotService{store: store, refs: refs, logger: logger}
}

// ContentID returns the content id of an encoded document.
func ContentID(data []byte) string {
	sum := sha256.Sum256(data)
	return cidPrefix + hex.EncodeToString(sum[:])
}

// IsContentID reports whether ref looks like a content id rather than a name.
func IsContentID(ref string) bool {
	if !strings.HasPrefix(ref, cidPrefix) {
		return false
	}
	_, err := hex.DecodeString(strings.TrimPrefix(ref, cidPrefix))
	return err == nil && len(ref) == len(cidPrefix)+2*sha256.Size
}

func objectKey(cid string) string {
	return "snapshots/" + cid + ".json"
}

func (s *snapshotService) Save(ctx context.Context, name, kind string, v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: encode %s: %w", ErrSnapshotFailed, name, err)
	}
	cid := ContentID(data)
	key := objectKey(cid)

	exists, err := s.store.Exists(ctx, key)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrSnapshotFailed, name, err)
	}
	if !exists {
		if _, err := s.store.Upload(ctx, key, "application/json", bytes.NewReader(data)); err != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrSnapshotFailed, name, err)
		}
	}

	if name != "" {
		ref := &models.SnapshotRef{Name: name, CID: cid, Kind: kind}
		if err := s.refs.Upsert(ctx, nil, ref); err != nil {
			return "", fmt.Errorf("%w: index %s: %w", ErrSnapshotFailed, name, err)
		}
	}
	s.logger.Info("snapshot saved", slog.String("name", name), slog.String("cid", cid), slog.Bool("deduplicated", exists))
	return cid, nil
}

func (s *snapshotService) Load(ctx context.Context, ref string, v interface{}) (*models.SnapshotRef, error) {
	var meta *models.SnapshotRef
	if IsContentID(ref) {
		meta = &models.SnapshotRef{CID: ref}
	} else {
		var err error
		meta, err = s.Latest(ctx, ref)
		if err != nil {
			return nil, err
		}
	}

	body, err := s.store.Download(ctx, objectKey(meta.CID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: snapshot %s", ErrNotFound, ref)
		}
		return nil, fmt.Errorf("failed to load snapshot %s: %w", ref, err)
	}
	defer body.Close()

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", ref, err)
	}
	return meta, nil
}

func (s *snapshotService) Latest(ctx context.Context, name string) (*models.SnapshotRef, error) {
	ref, err := s.refs.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repositories.ErrSnapshotRefNotFound) {
			return nil, fmt.Errorf("%w: snapshot %s", ErrNotFound, name)
		}
		return nil, err
	}
	return ref, nil
}

func (s *snapshotService) URL(cid string) string {
	if cid == "" {
		return ""
	}
	return s.store.GetPublicURL(objectKey(cid))
}
