package minio

import (
	"bytes"
	"context"
	"io"

	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"

	"github.com/DRSN-tech/match-engine/internal/cfg"
	"github.com/DRSN-tech/match-engine/pkg/e"
)

// KeypointRepo хранит блобы ключевых точек и артефакты доказательств в MinIO.
type KeypointRepo struct {
	mc  *minio.Client
	cfg *cfg.MinIOCfg
}

func NewKeypointRepo(mc *minio.Client, cfg *cfg.MinIOCfg) *KeypointRepo {
	return &KeypointRepo{
		mc:  mc,
		cfg: cfg,
	}
}

// Put загружает блоб и возвращает ключ объекта.
func (k *KeypointRepo) Put(ctx context.Context, key string, blob []byte) (string, error) {
	reader := bytes.NewReader(blob)

	info, err := k.mc.PutObject(ctx, k.cfg.BucketName, key, reader, int64(len(blob)), minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return info.Key, nil
}

// Get читает блоб по ключу целиком.
func (k *KeypointRepo) Get(ctx context.Context, key string) ([]byte, error) {
	object, err := k.mc.GetObject(ctx, k.cfg.BucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer object.Close()

	blob, err := io.ReadAll(object)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return blob, nil
}

// Delete удаляет объект по указанному ключу.
func (k *KeypointRepo) Delete(ctx context.Context, key string) error {
	if err := k.mc.RemoveObject(ctx, k.cfg.BucketName, key, minio.RemoveObjectOptions{}); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
